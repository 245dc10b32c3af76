package pkmn

import (
	"fmt"

	"github.com/bearlytools/pkmn/internal/bits"
)

// ResultType is the outcome of a battle update from P1's perspective.
type ResultType uint8

const (
	// ResultNone means the battle continues.
	ResultNone ResultType = 0
	ResultWin  ResultType = 1
	ResultLose ResultType = 2
	ResultTie  ResultType = 3
	// ResultError is only produced by an engine not running in Showdown compatibility mode.
	ResultError ResultType = 4
)

func (r ResultType) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultTie:
		return "tie"
	case ResultError:
		return "error"
	}
	return fmt.Sprintf("ResultType(%d)", uint8(r))
}

// Valid reports if r is one of the known outcomes.
func (r ResultType) Valid() bool {
	return r <= ResultError
}

// Result is the outcome of an update plus the kind of choice each player must make next.
type Result struct {
	Type ResultType
	P1   ChoiceType
	P2   ChoiceType
}

// Choice returns the choice type expected from player p.
func (r Result) Choice(p Player) ChoiceType {
	if p == P2 {
		return r.P2
	}
	return r.P1
}

// Done reports if the battle has ended.
func (r Result) Done() bool {
	return r.Type != ResultNone
}

func (r Result) String() string {
	return fmt.Sprintf("{%s p1:%s p2:%s}", r.Type, r.P1, r.P2)
}

// Encode is EncodeResult(r).
func (r Result) Encode() byte {
	return EncodeResult(r)
}

// EncodeResult packs r as outcome in bits 0-3, P1 in bits 4-5 and P2 in bits 6-7.
func EncodeResult(r Result) byte {
	b := bits.SetValue(uint8(r.Type), byte(0), 0, 4)
	b = bits.SetValue(uint8(r.P1), b, 4, 6)
	return bits.SetValue(uint8(r.P2), b, 6, 8)
}

// DecodeResult unpacks a result byte. Bytes the engine would never produce still decode
// using the same masks.
func DecodeResult(b byte) Result {
	return Result{
		Type: bits.GetValue[uint8, ResultType](b, 0, 4),
		P1:   bits.GetValue[uint8, ChoiceType](b, 4, 6),
		P2:   bits.GetValue[uint8, ChoiceType](b, 6, 8),
	}
}
