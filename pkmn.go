/*
Package pkmn holds the types shared by every generation of the battle engine bindings: the
one byte Choice and Result codec exchanged with the engine, players, generations and the
symbolic options used to create a battle.

The engine itself is an external collaborator. Battles are plain []byte buffers with a
fixed layout per generation, see packages data, gen1 and battle for reading and writing
them, protocol for decoding the binary logs the engine emits and engine for driving an
engine Binding.

Choices are created and formatted like so:

	c, err := pkmn.ParseChoice("move 2")
	if err != nil {
		// Do something
	}
	b := c.Encode() // 0b0000_1001
	fmt.Println(pkmn.DecodeChoice(b)) // move 2
*/
package pkmn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Gen is a Pokémon generation number.
type Gen uint8

func (g Gen) String() string {
	return fmt.Sprintf("Gen %d", uint8(g))
}

// Player is one of the two sides of a battle.
type Player uint8

const (
	// P1 is the first player. Results are reported from its perspective.
	P1 Player = 0
	// P2 is the second player.
	P2 Player = 1
)

// Players lists both players in order.
var Players = [2]Player{P1, P2}

func (p Player) String() string {
	switch p {
	case P1:
		return "p1"
	case P2:
		return "p2"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

// Foe returns the opposing player.
func (p Player) Foe() Player {
	if p == P1 {
		return P2
	}
	return P1
}

// ParsePlayer converts "p1" or "p2" to a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "p1":
		return P1, nil
	case "p2":
		return P2, nil
	}
	return 0, errors.Errorf("unknown player %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Player) MarshalText() ([]byte, error) {
	if p > P2 {
		return nil, errors.Errorf("unknown player %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Player) UnmarshalText(b []byte) error {
	v, err := ParsePlayer(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
