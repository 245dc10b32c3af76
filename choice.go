package pkmn

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/bearlytools/pkmn/internal/bits"
	"github.com/pkg/errors"
)

// ErrInvalidChoice is returned by ParseChoice for text that is not a valid choice.
var ErrInvalidChoice = errors.New("invalid choice")

// ChoiceType is the kind of decision a player makes. It occupies the low 2 bits of a choice byte.
type ChoiceType uint8

const (
	ChoicePass   ChoiceType = 0
	ChoiceMove   ChoiceType = 1
	ChoiceSwitch ChoiceType = 2
)

func (t ChoiceType) String() string {
	switch t {
	case ChoicePass:
		return "pass"
	case ChoiceMove:
		return "move"
	case ChoiceSwitch:
		return "switch"
	}
	return fmt.Sprintf("ChoiceType(%d)", uint8(t))
}

// Choice is a player's decision for a turn. Data is the move slot (0-4, where 0 lets the
// engine pick) for ChoiceMove and the party slot (2-6) for ChoiceSwitch. Data is 0 for ChoicePass.
type Choice struct {
	Type ChoiceType
	Data uint8
}

// Pass returns the pass choice.
func Pass() Choice {
	return Choice{Type: ChoicePass}
}

// Move returns a choice to use the move in slot n.
func Move(n uint8) Choice {
	return Choice{Type: ChoiceMove, Data: n}
}

// Switch returns a choice to switch to the Pokémon in slot n.
func Switch(n uint8) Choice {
	return Choice{Type: ChoiceSwitch, Data: n}
}

// EncodeChoice encodes c to its byte form. A nil Choice encodes the same as Pass().
func EncodeChoice(c *Choice) byte {
	if c == nil {
		return 0
	}
	return c.Encode()
}

// Encode encodes the choice as (Data << 2) | Type.
func (c Choice) Encode() byte {
	b := bits.SetValue(uint8(c.Type), byte(0), 0, 2)
	return bits.SetValue(c.Data, b, 2, 8)
}

// DecodeChoice decodes a choice byte. Every byte decodes, a type tag of 3 yields
// a ChoiceType that String() reports as unknown.
func DecodeChoice(b byte) Choice {
	return Choice{
		Type: bits.GetValue[uint8, ChoiceType](b, 0, 2),
		Data: bits.GetValue[uint8, uint8](b, 2, 8),
	}
}

// String formats the choice the way ParseChoice reads it.
func (c Choice) String() string {
	if c.Type == ChoicePass {
		return "pass"
	}
	return c.Type.String() + " " + strconv.Itoa(int(c.Data))
}

var choiceRE = regexp.MustCompile(`^(?:pass|move ([0-4])|switch ([2-6]))$`)

// ParseChoice parses "pass", "move N" (N in 0-4) or "switch N" (N in 2-6). Anything else,
// including extra whitespace, returns an error wrapping ErrInvalidChoice.
func ParseChoice(s string) (Choice, error) {
	m := choiceRE.FindStringSubmatch(s)
	switch {
	case m == nil:
		return Choice{}, errors.Wrapf(ErrInvalidChoice, "'%s'", s)
	case m[1] != "":
		return Move(m[1][0] - '0'), nil
	case m[2] != "":
		return Switch(m[2][0] - '0'), nil
	}
	return Pass(), nil
}
