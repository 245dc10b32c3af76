package bits

import (
	"math"
	"testing"
)

func TestSetValue(t *testing.T) {
	storeStart := uint8(1)
	// We start at using bit 1 (we index at 0), so that we can set bit 0 to 1
	// (meaning our storage number starts at value 1). That way we can make sure
	// we are only retrieving the values we think we are.
	for start := uint64(1); start < 8; start++ {
		for end := start + 1; end <= 8; end++ {
			maxBits := end - start
			maxValue := uint16(math.Pow(2, float64(maxBits)))
			for val := uint16(0); val < maxValue; val++ {
				store := SetValue(uint8(val), storeStart, start, end)
				got := GetValue[uint8, uint8](store, start, end)

				if uint16(got) != val {
					t.Fatalf("TestSetValue(start: %d, end: %d, val: %d): got %d, want %d", start, end, val, got, val)
				}
				if store&1 != 1 {
					t.Fatalf("TestSetValue(start: %d, end: %d, val: %d): clobbered bit 0", start, end, val)
				}
			}
		}
	}
}

func TestSetValueClears(t *testing.T) {
	store := SetValue(uint8(7), uint16(0xFFFF), 4, 8)
	if store != 0xFF7F {
		t.Fatalf("TestSetValueClears: got %#x, want %#x", store, 0xFF7F)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		start, end uint64
		want       uint8
	}{
		{0, 1, 0b0000_0001},
		{1, 4, 0b0000_1110},
		{4, 8, 0b1111_0000},
		{0, 8, 0b1111_1111},
	}

	for _, test := range tests {
		got := Mask[uint8](test.start, test.end)
		if got != test.want {
			t.Errorf("TestMask(%d, %d): got %08b, want %08b", test.start, test.end, got, test.want)
		}
	}
}

func TestSigned(t *testing.T) {
	for val := -8; val < 8; val++ {
		for _, start := range []uint64{0, 4, 8, 20} {
			store := SetSigned(val, uint32(0), start, start+4)
			got := GetSigned(store, start, start+4)
			if got != val {
				t.Fatalf("TestSigned(val: %d, start: %d): got %d", val, start, got)
			}
		}
	}

	// 0xe0 holds -2 in its high nibble.
	if got := GetSigned(uint8(0xe0), 4, 8); got != -2 {
		t.Fatalf("TestSigned(0xe0): got %d, want -2", got)
	}
}

func TestGetSetBit(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		var store uint8

		store = SetBit(store, i, true)
		if !GetBit(store, i) {
			t.Fatalf("TestGetSetBit(set bit %d): got false, want true", i)
		}
		if store != 1<<i {
			t.Fatalf("TestGetSetBit(set bit %d): store value was %d, expected %d", i, store, 1<<i)
		}
	}

	for i := uint8(0); i < 8; i++ {
		var store uint8 = 255

		store = SetBit(store, i, false)
		if GetBit(store, i) {
			t.Fatalf("TestGetSetBit(set bit %d): got true, want false", i)
		}
	}
}

func TestNibbles(t *testing.T) {
	lo, hi := Nibbles(0x26)
	if lo != 6 || hi != 2 {
		t.Fatalf("TestNibbles(0x26): got (%d, %d), want (6, 2)", lo, hi)
	}
	if got := JoinNibbles(lo, hi); got != 0x26 {
		t.Fatalf("TestNibbles: JoinNibbles got %#x, want 0x26", got)
	}
}
