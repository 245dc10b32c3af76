package pkmn

import (
	"context"
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func u16(v uint16) *uint16 { return &v }

func TestParseTeam(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Set
		wantErr bool
	}{
		{
			name: "Success: exported team",
			content: `Fishy (Starmie)
Level: 50
DVs: 14 Atk / 12 Spe
EVs: 252 HP / 252 Spc
- Psychic
- Thunderbolt

Snorlax
- Body Slam
- Rest

Mr. Mime (M)
IVs: 30 Atk
- Psychic
`,
			want: []Set{
				{
					Name:    "Fishy",
					Species: "Starmie",
					Level:   50,
					Moves:   []string{"Psychic", "Thunderbolt"},
					DVs:     &Stats{HP: 15, Atk: 14, Def: 15, Spe: 12, Spc: 15},
					EVs:     &Stats{HP: 252, Atk: 255, Def: 255, Spe: 255, Spc: 252},
				},
				{
					Species: "Snorlax",
					Moves:   []string{"Body Slam", "Rest"},
				},
				{
					Species: "Mr. Mime",
					Moves:   []string{"Psychic"},
					DVs:     &Stats{HP: 15, Atk: 15, Def: 15, Spe: 15, Spc: 15},
				},
			},
		},
		{
			name: "Success: comments and ignored fields",
			content: `// Lead
Tauros
Ability: No Ability
- Body Slam`,
			want: []Set{
				{Species: "Tauros", Moves: []string{"Body Slam"}},
			},
		},
		{
			name:    "Error: empty",
			content: ``,
			wantErr: true,
		},
		{
			name: "Error: item",
			content: `Snorlax @ Leftovers
- Rest
`,
			wantErr: true,
		},
		{
			name: "Error: move before species",
			content: `- Rest
Snorlax
`,
			wantErr: true,
		},
		{
			name: "Error: no moves",
			content: `Snorlax
Level: 100
`,
			wantErr: true,
		},
		{
			name: "Error: bad level",
			content: `Snorlax
Level: 101
- Rest
`,
			wantErr: true,
		},
		{
			name: "Error: too many moves",
			content: `Snorlax
- Rest
- Body Slam
- Amnesia
- Earthquake
- Hyper Beam
`,
			wantErr: true,
		},
		{
			name: "Error: unknown stat",
			content: `Snorlax
EVs: 252 Foo
- Rest
`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		got, err := ParseTeam(context.Background(), test.content)
		switch {
		case err == nil && test.wantErr:
			t.Errorf("TestParseTeam(%s): got err == nil, want err != nil", test.name)
			continue
		case err != nil && !test.wantErr:
			t.Errorf("TestParseTeam(%s): got err == %s, want err == nil", test.name, err)
			continue
		case err != nil:
			if !errors.Is(err, ErrInvalidTeam) {
				t.Errorf("TestParseTeam(%s): got err == %s, want ErrInvalidTeam", test.name, err)
			}
			continue
		}

		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestParseTeam(%s): -want/+got:\n%s", test.name, diff)
		}
	}
}

func TestPlayer(t *testing.T) {
	if P1.Foe() != P2 || P2.Foe() != P1 {
		t.Errorf("TestPlayer: Foe() is not symmetric")
	}
	for _, p := range Players {
		got, err := ParsePlayer(p.String())
		if err != nil || got != p {
			t.Errorf("TestPlayer(%s): ParsePlayer got (%s, %v)", p, got, err)
		}
	}
	if _, err := ParsePlayer("p3"); err == nil {
		t.Errorf("TestPlayer(p3): got err == nil, want err != nil")
	}
	if got := (Options{P2: SideOptions{Name: "Bot 2", Team: []Set{{Species: "Mew", HP: u16(1)}}}}).Side(P2).Name; got != "Bot 2" {
		t.Errorf("TestPlayer: Options.Side(P2).Name got %q, want %q", got, "Bot 2")
	}
}
