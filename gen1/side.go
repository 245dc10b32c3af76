package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
)

// Side is a view over one player's half of the Battle.
type Side struct {
	battle *Battle
	player pkmn.Player
	off    int
}

// Player returns the player this side belongs to.
func (s *Side) Player() pkmn.Player {
	return s.player
}

// Name returns the player's name from the options the Battle was bound with.
func (s *Side) Name() string {
	return s.battle.opts.Side(s.player).Name
}

// Active returns the Pokémon in battle. It is nil before the first switch in. A fainted
// Pokémon that has not been replaced is still returned.
func (s *Side) Active() *Pokemon {
	o := s.order(0)
	if o == 0 || s.battle.buf[s.off+layout.Side.Active.Offset+layout.ActivePokemon.Species.Offset] == 0 {
		return nil
	}
	return &Pokemon{side: s, index: int(o) - 1}
}

// Get returns the Pokémon at position slot (1-6). The position is resolved through the side's
// order when Get is called. Get returns nil for an empty or out of range slot.
func (s *Side) Get(slot int) *Pokemon {
	if slot < 1 || slot > pkmn.MaxTeamSize {
		return nil
	}
	o := s.order(slot - 1)
	if o == 0 || int(o) > pkmn.MaxTeamSize {
		return nil
	}
	return &Pokemon{side: s, index: int(o) - 1}
}

// Pokemon returns the side's Pokémon in position order.
func (s *Side) Pokemon() []*Pokemon {
	var out []*Pokemon
	for slot := 1; slot <= pkmn.MaxTeamSize; slot++ {
		if p := s.Get(slot); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// stored returns the side's Pokémon in storage order, up to the first empty slot.
func (s *Side) stored() []*Pokemon {
	var out []*Pokemon
	for i := 0; i < pkmn.MaxTeamSize; i++ {
		p := &Pokemon{side: s, index: i}
		if s.battle.buf[p.storedOff()+layout.Pokemon.Species.Offset] == 0 {
			break
		}
		out = append(out, p)
	}
	return out
}

// LastUsedMove is the last move the side's active Pokémon used.
func (s *Side) LastUsedMove() data.ID {
	return s.battle.lookup.MoveByNum(s.battle.buf[s.off+layout.Side.LastUsedMove.Offset])
}

// LastSelectedMove is the last move the side selected.
func (s *Side) LastSelectedMove() data.ID {
	return s.battle.lookup.MoveByNum(s.battle.buf[s.off+layout.Side.LastSelectedMove.Offset])
}

// LastSelectedIndex is the move slot of LastSelectedMove.
func (s *Side) LastSelectedIndex() uint8 {
	return s.battle.lastSelectedIndex(s.player)
}

func (s *Side) order(i int) uint8 {
	return s.battle.buf[s.off+layout.Side.Order.Offset+i]
}
