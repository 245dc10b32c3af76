package data

import (
	_ "embed"

	"github.com/bearlytools/pkmn"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed gen1.yaml
var gen1YAML []byte

// Type is a type's index in the engine's type enumeration. Unlike species and moves,
// types start at 0.
type Type uint8

// BaseStats are a species' Gen 1 base stats.
type BaseStats struct {
	HP  uint16 `yaml:"hp"`
	Atk uint16 `yaml:"atk"`
	Def uint16 `yaml:"def"`
	Spe uint16 `yaml:"spe"`
	Spc uint16 `yaml:"spc"`
}

// Species is a dex entry for a species.
type Species struct {
	Num   uint8
	ID    ID
	Name  string
	Types [2]Type
	Base  BaseStats
}

// Move is a dex entry for a move.
type Move struct {
	Num  uint8
	ID   ID
	Name string
	Type Type
	// PP is the base PP, without PP Ups.
	PP uint8
}

// Item is a dex entry for an item.
type Item struct {
	Num  uint8
	ID   ID
	Name string
}

// Dex is the data set of a generation, in engine enumeration order.
type Dex struct {
	Gen     pkmn.Gen
	Types   []string
	Species []Species
	Moves   []Move
	Items   []Item
}

type dexFile struct {
	Gen     uint8    `yaml:"gen"`
	Types   []string `yaml:"types"`
	Species []struct {
		Name  string    `yaml:"name"`
		Types []string  `yaml:"types"`
		Base  BaseStats `yaml:"base"`
	} `yaml:"species"`
	Moves []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
		PP   uint8  `yaml:"pp"`
	} `yaml:"moves"`
	Items []struct {
		Name string `yaml:"name"`
	} `yaml:"items"`
}

// decodeDex decodes a YAML dex. Indices are assigned from the order of each list.
func decodeDex(b []byte) (*Dex, error) {
	var f dexFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "could not decode dex")
	}
	if len(f.Species) > 255 || len(f.Moves) > 255 || len(f.Items) > 255 || len(f.Types) > 16 {
		return nil, errors.New("dex has more entries than the engine can index")
	}

	d := &Dex{Gen: pkmn.Gen(f.Gen), Types: f.Types}
	types := make(map[string]Type, len(f.Types))
	for i, t := range f.Types {
		types[t] = Type(i)
	}
	typeOf := func(name string) (Type, error) {
		t, ok := types[name]
		if !ok {
			return 0, errors.Errorf("unknown type %q", name)
		}
		return t, nil
	}

	for i, s := range f.Species {
		sp := Species{Num: uint8(i + 1), ID: ToID(s.Name), Name: s.Name, Base: s.Base}
		switch len(s.Types) {
		case 1, 2:
		default:
			return nil, errors.Errorf("species %q must have 1 or 2 types", s.Name)
		}
		for j := range sp.Types {
			t, err := typeOf(s.Types[min(j, len(s.Types)-1)])
			if err != nil {
				return nil, errors.Wrapf(err, "species %q", s.Name)
			}
			sp.Types[j] = t
		}
		d.Species = append(d.Species, sp)
	}

	for i, m := range f.Moves {
		t, err := typeOf(m.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "move %q", m.Name)
		}
		d.Moves = append(d.Moves, Move{Num: uint8(i + 1), ID: ToID(m.Name), Name: m.Name, Type: t, PP: m.PP})
	}

	for i, it := range f.Items {
		d.Items = append(d.Items, Item{Num: uint8(i + 1), ID: ToID(it.Name), Name: it.Name})
	}
	return d, nil
}

func dexFor(gen pkmn.Gen) (*Dex, error) {
	switch gen {
	case 1:
		return decodeDex(gen1YAML)
	}
	return nil, unsupported(gen)
}
