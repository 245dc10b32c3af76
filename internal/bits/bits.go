// Package bits provides the bit-field helpers used to read and write packed engine
// structures (status bytes, boosts, volatiles). This is not a replacement for math/bits.
package bits

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Mask creates a mask for setting, getting and clearing a set of bits.
// start is the bit location you wish to start at and end is the bit you wish to end at (exclusive).
// Index starts at 0.  So Mask(1, 4) will create a mask that includes bits at location 1 to 3.
// If start >= end or end is larger than U, this will panic.
func Mask[U constraints.Unsigned](start, end uint64) U {
	if start >= end {
		panic("start cannot be >= end")
	}
	size := width[U]()
	if end > size {
		panic(fmt.Sprintf("end cannot be %d, as that is the largest amount of bits in an %d bit number", end, size))
	}

	var r U
	for x := start; x < end; x++ {
		r |= U(1) << x
	}
	return r
}

// GetValue retrieves the value stored in "store" between bit "start" (inclusive) and "end" (exclusive).
func GetValue[U, U1 constraints.Unsigned](store U, start, end uint64) U1 {
	return U1((store & Mask[U](start, end)) >> start)
}

// SetValue stores "val" in unsigned number "store" starting at bit "start" and
// ending at bit "end" (exclusive). The existing bits in the range are cleared first
// and any bits of val that do not fit in the range are dropped. If start >= end, this panics.
func SetValue[I, U constraints.Unsigned](val I, store U, start, end uint64) U {
	m := Mask[U](start, end)
	return (store &^ m) | ((U(val) << start) & m)
}

// GetSigned retrieves a two's complement signed value stored between bit "start" (inclusive)
// and "end" (exclusive). This is how boosts are stored, as signed nibbles.
func GetSigned[U constraints.Unsigned](store U, start, end uint64) int {
	v := GetValue[U, uint64](store, start, end)
	n := end - start
	if v&(1<<(n-1)) != 0 {
		return int(v) - (1 << n)
	}
	return int(v)
}

// SetSigned stores the two's complement value of "val" between bit "start" (inclusive)
// and "end" (exclusive).
func SetSigned[U constraints.Unsigned](val int, store U, start, end uint64) U {
	n := end - start
	u := uint64(val) & ((1 << n) - 1)
	return SetValue(u, store, start, end)
}

// GetBit gets a single bit value from "store" in position "pos". true if set, false if not.
func GetBit[U constraints.Unsigned](store U, pos uint8) bool {
	if uint64(pos) >= width[U]() {
		panic(fmt.Sprintf("can't GetBit() a %T position %d", store, pos))
	}
	return store&(1<<pos) != 0
}

// SetBit sets a single bit in "store" at position "pos" to value "val". If val is true,
// the bit is set to 1, if false, it is set to 0.
func SetBit[U constraints.Unsigned](store U, pos uint8, val bool) U {
	if uint64(pos) >= width[U]() {
		panic(fmt.Sprintf("can't SetBit() a %T position %d", store, pos))
	}
	if val {
		return store | (1 << pos)
	}
	return store &^ (1 << pos)
}

// Nibbles splits a byte into its low and high 4 bits.
func Nibbles(b byte) (lo, hi uint8) {
	return b & 0x0F, b >> 4
}

// JoinNibbles is the inverse of Nibbles. Bits above the low 4 of each argument are dropped.
func JoinNibbles(lo, hi uint8) byte {
	return (lo & 0x0F) | (hi&0x0F)<<4
}

func width[U constraints.Unsigned]() uint64 {
	var u U
	switch any(u).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	}
	// uint and uintptr.
	return 64
}
