// Package binary replaces the encoding/binary package in the standard library for the
// little endian encoding the engine uses, with generics. Every multi-byte engine field is
// little endian regardless of the host.
package binary

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Enc is the little-endian binary encoder. Do not change this.
var Enc = binary.LittleEndian

// Get gets any integer size from the start of a []byte slice.
func Get[T constraints.Integer](b []byte) T {
	var r T // This is only used for type detection.
	switch any(r).(type) {
	case int8:
		return T(int8(b[0]))
	case uint8:
		return T(b[0])
	case int16:
		return T(int16(Enc.Uint16(b)))
	case uint16:
		return T(Enc.Uint16(b))
	case int32:
		return T(int32(Enc.Uint32(b)))
	case uint32:
		return T(Enc.Uint32(b))
	case int64:
		return T(int64(Enc.Uint64(b)))
	case uint64:
		return T(Enc.Uint64(b))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put puts any integer size into the start of a []byte slice.
func Put[T constraints.Integer](b []byte, v T) {
	switch any(v).(type) {
	case int8, uint8:
		b[0] = byte(v)
	case int16, uint16:
		Enc.PutUint16(b, uint16(v))
	case int32, uint32:
		Enc.PutUint32(b, uint32(v))
	case int64, uint64:
		Enc.PutUint64(b, uint64(v))
	default:
		panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
	}
}

// Append appends the little endian encoding of v to b.
func Append[T constraints.Integer](b []byte, v T) []byte {
	switch any(v).(type) {
	case int8, uint8:
		return append(b, byte(v))
	case int16, uint16:
		return Enc.AppendUint16(b, uint16(v))
	case int32, uint32:
		return Enc.AppendUint32(b, uint32(v))
	}
	return Enc.AppendUint64(b, uint64(v))
}
