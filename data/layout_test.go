package data

import (
	"errors"
	"testing"
)

func TestLayoutFor(t *testing.T) {
	l, err := LayoutFor(1)
	if err != nil {
		t.Fatalf("TestLayoutFor(1): got err == %s, want err == nil", err)
	}
	if l != MustLayoutFor(1) {
		t.Errorf("TestLayoutFor(1): did not return the same Layout")
	}

	// The structures must tile exactly.
	if got := l.Side.Pokemon.Size; got != 6*l.Sizes.Pokemon {
		t.Errorf("TestLayoutFor(1): Side.Pokemon.Size == %d, want %d", got, 6*l.Sizes.Pokemon)
	}
	if got := l.Side.Active.Size; got != l.Sizes.ActivePokemon {
		t.Errorf("TestLayoutFor(1): Side.Active.Size == %d, want %d", got, l.Sizes.ActivePokemon)
	}
	if got := l.Side.LastUsedMove.End(); got != l.Sizes.Side {
		t.Errorf("TestLayoutFor(1): Side ends at %d, want %d", got, l.Sizes.Side)
	}
	if got := l.Battle.Sides[1] + l.Sizes.Side; got != l.Battle.Turn.Offset {
		t.Errorf("TestLayoutFor(1): p2 ends at %d, want %d", got, l.Battle.Turn.Offset)
	}
	if got := l.Battle.RNGIndex.End(); got != l.Sizes.Battle {
		t.Errorf("TestLayoutFor(1): RNG ends at %d, want %d", got, l.Sizes.Battle)
	}
	if got := l.Battle.ShowdownRNG.End(); got != l.Sizes.Battle {
		t.Errorf("TestLayoutFor(1): Showdown RNG ends at %d, want %d", got, l.Sizes.Battle)
	}
	if got := l.Pokemon.Level.End(); got != l.Sizes.Pokemon {
		t.Errorf("TestLayoutFor(1): Pokemon ends at %d, want %d", got, l.Sizes.Pokemon)
	}
	if got := l.ActivePokemon.Moves.End(); got != l.Sizes.ActivePokemon {
		t.Errorf("TestLayoutFor(1): ActivePokemon ends at %d, want %d", got, l.Sizes.ActivePokemon)
	}
	v := l.Volatiles
	if got := len(v.Flags); uint64(got) != v.Transform.Start {
		t.Errorf("TestLayoutFor(1): %d volatile flags, but transform starts at bit %d", got, v.Transform.Start)
	}
	if uint64(v.Reflect) != v.Attacks.End || uint64(v.Reflect)+1 != v.State.Start {
		t.Errorf("TestLayoutFor(1): reflect at bit %d is not between attacks and state", v.Reflect)
	}
	if v.Transform.End != v.Attacks.Start {
		t.Errorf("TestLayoutFor(1): transform ends at %d, attacks starts at %d", v.Transform.End, v.Attacks.Start)
	}
	tiled := []Bits{v.State, v.Substitute, v.Confusion, v.DisableDuration, v.DisableMove, v.Toxic}
	for i := 1; i < len(tiled); i++ {
		if tiled[i-1].End != tiled[i].Start {
			t.Errorf("TestLayoutFor(1): volatile field %d ends at %d, next starts at %d", i-1, tiled[i-1].End, tiled[i].Start)
		}
	}
	if v.Toxic.End != 64 {
		t.Errorf("TestLayoutFor(1): volatiles end at bit %d, want 64", v.Toxic.End)
	}
}

func TestLayoutForUnsupported(t *testing.T) {
	for _, gen := range []uint8{0, 2, 9} {
		_, err := LayoutFor(pkmnGen(gen))
		if !errors.Is(err, ErrUnsupportedGen) {
			t.Errorf("TestLayoutForUnsupported(%d): got err == %v, want ErrUnsupportedGen", gen, err)
		}
	}

	defer func() {
		if recover() == nil {
			t.Errorf("TestLayoutForUnsupported: MustLayoutFor(2) did not panic")
		}
	}()
	MustLayoutFor(2)
}
