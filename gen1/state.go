package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
)

// State is the decoded form of a Battle. It is what Serialize writes and what Create and
// Restore encode.
type State struct {
	Turn       uint16    `json:"turn"`
	LastDamage uint16    `json:"lastDamage"`
	PRNG       []uint16  `json:"prng"`
	P1         SideState `json:"p1"`
	P2         SideState `json:"p2"`
}

// Side returns the state of player p's side.
func (s *State) Side(p pkmn.Player) *SideState {
	if p == pkmn.P2 {
		return &s.P2
	}
	return &s.P1
}

// SideState is the decoded form of a Side.
type SideState struct {
	Name string `json:"name,omitzero"`
	// Active is the current state of the Pokémon in position 1, nil before the first switch in.
	Active *ActiveState `json:"active,omitzero"`
	// Team is in storage order.
	Team []PokemonState `json:"team"`
	// Order holds the 1 based storage slot of the Pokémon in each position, 0 for an empty
	// position. An empty Order is the storage order.
	Order             []int   `json:"order,omitzero"`
	LastUsedMove      data.ID `json:"lastUsedMove,omitzero"`
	LastSelectedMove  data.ID `json:"lastSelectedMove,omitzero"`
	LastSelectedIndex uint8   `json:"lastSelectedIndex,omitzero"`
}

// PokemonState is the decoded form of a stored Pokémon. StatusData carries the Toxic counter
// of the active Pokémon.
type PokemonState struct {
	Name       string     `json:"name,omitzero"`
	Species    data.ID    `json:"species"`
	Types      [2]string  `json:"types"`
	Level      uint8      `json:"level"`
	HP         uint16     `json:"hp"`
	Status     Status     `json:"status,omitzero"`
	StatusData StatusData `json:"statusData,omitzero"`
	Stats      Stats      `json:"stats"`
	Moves      []MoveSlot `json:"moves"`
}

// ActiveState is the decoded form of the active Pokémon's battle state.
type ActiveState struct {
	Species   data.ID    `json:"species"`
	Types     [2]string  `json:"types"`
	Stats     Stats      `json:"stats"`
	Boosts    Boosts     `json:"boosts,omitzero"`
	Volatiles Volatiles  `json:"volatiles,omitzero"`
	Moves     []MoveSlot `json:"moves"`
}

// State reads every field of the Battle.
func (b *Battle) State() *State {
	st := &State{
		Turn:       b.Turn(),
		LastDamage: b.LastDamage(),
		PRNG:       b.PRNG(),
	}
	for _, side := range b.Sides() {
		*st.Side(side.player) = side.state()
	}
	return st
}

func (s *Side) state() SideState {
	ss := SideState{
		Name:              s.Name(),
		LastUsedMove:      s.LastUsedMove(),
		LastSelectedMove:  s.LastSelectedMove(),
		LastSelectedIndex: s.LastSelectedIndex(),
	}
	for i := 0; i < pkmn.MaxTeamSize; i++ {
		ss.Order = append(ss.Order, int(s.order(i)))
	}
	for _, p := range s.stored() {
		stored := p.Stored()
		ss.Team = append(ss.Team, PokemonState{
			Name:       p.nickname(),
			Species:    stored.Species(),
			Types:      stored.Types(),
			Level:      p.Level(),
			HP:         p.HP(),
			Status:     p.Status(),
			StatusData: p.StatusData(),
			Stats:      stored.Stats(),
			Moves:      stored.Moves(),
		})
	}
	if a := s.Active(); a != nil {
		ss.Active = &ActiveState{
			Species:   a.Species(),
			Types:     a.Types(),
			Stats:     a.Stats(),
			Boosts:    a.Boosts(),
			Volatiles: a.Volatiles(),
			Moves:     a.Moves(),
		}
	}
	return ss
}

// nickname is the name given in the options for the Pokémon's storage slot, if any.
func (p *Pokemon) nickname() string {
	team := p.side.battle.opts.Side(p.side.player).Team
	if p.index < len(team) {
		return team[p.index].Name
	}
	return ""
}
