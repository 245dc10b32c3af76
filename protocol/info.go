package protocol

import (
	"fmt"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/gen1"
)

// Info supplies the names the binary log leaves out.
type Info struct {
	P1 SideInfo
	P2 SideInfo
}

// Side returns the SideInfo of player p.
func (i Info) Side(p pkmn.Player) SideInfo {
	if p == pkmn.P2 {
		return i.P2
	}
	return i.P1
}

// SideInfo names a player and their Pokémon. Team is in storage order, which is the order the
// team was created in.
type SideInfo struct {
	Name string
	Team []PokemonInfo
}

// PokemonInfo names one Pokémon. Name is the nickname, the species display name is used
// when it is empty.
type PokemonInfo struct {
	Name    string
	Species data.ID
}

// InfoFromOptions builds an Info from the options a battle was created with.
func InfoFromOptions(opts pkmn.Options) Info {
	var info Info
	for _, p := range pkmn.Players {
		so := opts.Side(p)
		si := SideInfo{Name: so.Name}
		for _, set := range so.Team {
			si.Team = append(si.Team, PokemonInfo{Name: set.Name, Species: data.ToID(set.Species)})
		}
		*info.side(p) = si
	}
	return info
}

// InfoFromBattle builds an Info from the stored species of b. Players without a name are
// called "Player 1" and "Player 2".
func InfoFromBattle(b *gen1.Battle) Info {
	var info Info
	for _, side := range b.Sides() {
		si := SideInfo{Name: side.Name()}
		if si.Name == "" {
			si.Name = fmt.Sprintf("Player %d", side.Player()+1)
		}
		for _, p := range side.Pokemon() {
			for len(si.Team) <= p.Index() {
				si.Team = append(si.Team, PokemonInfo{})
			}
			si.Team[p.Index()] = PokemonInfo{Name: p.Name(), Species: p.Stored().Species()}
		}
		*info.side(side.Player()) = si
	}
	return info
}

func (i *Info) side(p pkmn.Player) *SideInfo {
	if p == pkmn.P2 {
		return &i.P2
	}
	return &i.P1
}
