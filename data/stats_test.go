package data

import (
	"testing"

	"github.com/bearlytools/pkmn"
	"github.com/kylelemons/godebug/pretty"
)

func TestCalcStats(t *testing.T) {
	l := MustGet(1)

	tests := []struct {
		desc    string
		species uint8
		dvs     pkmn.Stats
		evs     pkmn.Stats
		level   uint8
		want    pkmn.Stats
	}{
		{
			desc:    "Mewtwo maxed",
			species: 150,
			dvs:     pkmn.MaxDVs,
			evs:     pkmn.MaxEVs,
			level:   100,
			want:    pkmn.Stats{HP: 415, Atk: 318, Def: 278, Spe: 358, Spc: 406},
		},
		{
			desc:    "Chansey no investment",
			species: 113,
			level:   100,
			want:    pkmn.Stats{HP: 610, Atk: 15, Def: 15, Spe: 105, Spc: 215},
		},
		{
			desc:    "Pikachu level 50",
			species: 25,
			dvs:     pkmn.Stats{Atk: 14, Def: 15, Spe: 15, Spc: 15},
			evs:     pkmn.MaxEVs,
			level:   50,
			want:    pkmn.Stats{HP: 133, Atk: 105, Def: 81, Spe: 141, Spc: 101},
		},
	}

	for _, test := range tests {
		got := CalcStats(l.Species(test.species).Base, test.dvs, test.evs, test.level)
		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestCalcStats(%s): -want/+got:\n%s", test.desc, diff)
		}
	}
}

func TestHPDV(t *testing.T) {
	if got := HPDV(pkmn.MaxDVs); got != 15 {
		t.Errorf("TestHPDV(max): got %d, want 15", got)
	}
	if got := HPDV(pkmn.Stats{Atk: 14, Def: 15, Spe: 14, Spc: 15}); got != 0b0101 {
		t.Errorf("TestHPDV: got %d, want 5", got)
	}
}

func TestCalcPP(t *testing.T) {
	tests := []struct{ base, want uint8 }{
		{5, 8},
		{10, 16},
		{15, 24},
		{20, 32},
		{35, 56},
		{40, 61},
	}
	for _, test := range tests {
		if got := CalcPP(test.base); got != test.want {
			t.Errorf("TestCalcPP(%d): got %d, want %d", test.base, got, test.want)
		}
	}
}
