package binary

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestGetPut(t *testing.T) {
	b := make([]byte, 8)

	Put(b, uint16(609))
	if diff := pretty.Compare([]byte{0x61, 0x02, 0, 0, 0, 0, 0, 0}, b); diff != "" {
		t.Fatalf("TestGetPut(uint16): -want/+got:\n%s", diff)
	}
	if got := Get[uint16](b); got != 609 {
		t.Fatalf("TestGetPut(uint16): got %d, want 609", got)
	}

	Put(b, int16(-2))
	if got := Get[int16](b); got != -2 {
		t.Fatalf("TestGetPut(int16): got %d, want -2", got)
	}

	Put(b, uint64(0x0102030405060708))
	if got := Get[uint64](b); got != 0x0102030405060708 {
		t.Fatalf("TestGetPut(uint64): got %#x", got)
	}
	if b[0] != 0x08 {
		t.Fatalf("TestGetPut(uint64): not little endian, b[0] == %#x", b[0])
	}
}

func TestAppend(t *testing.T) {
	var b []byte
	b = Append(b, uint8(1))
	b = Append(b, int16(-1))
	b = Append(b, int32(2))

	want := []byte{0x01, 0xff, 0xff, 0x02, 0x00, 0x00, 0x00}
	if diff := pretty.Compare(want, b); diff != "" {
		t.Fatalf("TestAppend: -want/+got:\n%s", diff)
	}
}
