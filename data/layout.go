package data

import (
	"fmt"

	"github.com/bearlytools/pkmn"
	"github.com/pkg/errors"
)

// Field is the byte offset and size of a field within its parent structure.
type Field struct {
	Offset int
	Size   int
}

// End returns the offset one past the last byte of the field.
func (f Field) End() int {
	return f.Offset + f.Size
}

// Bits is a bit range [Start, End) within a packed integer.
type Bits struct {
	Start uint64
	End   uint64
}

// Sizes are the sizes in bytes of the engine structures.
type Sizes struct {
	Battle        int
	Side          int
	Pokemon       int
	ActivePokemon int
	MoveSlot      int
}

// BattleLayout holds the Battle offsets.
type BattleLayout struct {
	// Sides holds the offset of p1 and p2.
	Sides               [2]int
	Turn                Field
	LastDamage          Field
	LastSelectedIndexes Field
	// RNG is the cartridge RNG: a seed followed by the index of the next seed byte.
	RNG      Field
	RNGIndex Field
	// ShowdownRNG replaces RNG when the engine runs in Showdown compatibility mode.
	ShowdownRNG Field
}

// SideLayout holds the Side offsets.
type SideLayout struct {
	Pokemon          Field
	Active           Field
	Order            Field
	LastSelectedMove Field
	LastUsedMove     Field
}

// PokemonLayout holds the stored Pokemon offsets.
type PokemonLayout struct {
	Stats   Field
	Moves   Field
	HP      Field
	Status  Field
	Species Field
	Types   Field
	Level   Field
}

// ActiveLayout holds the ActivePokemon offsets. Stats, species, types and moves shadow the
// stored Pokemon and diverge from it after a transformation.
type ActiveLayout struct {
	Stats     Field
	Species   Field
	Types     Field
	Boosts    Field
	Volatiles Field
	Moves     Field
}

// BoostLayout holds the signed nibble positions inside the boosts integer.
type BoostLayout struct {
	Atk      Bits
	Def      Bits
	Spe      Bits
	Spc      Bits
	Accuracy Bits
	Evasion  Bits
}

// VolatileLayout holds the bit positions inside the volatiles integer. Flags lists the
// single bit volatiles from bit 0, Reflect is the one flag stored after them. A Pokémon is
// transformed when Transform is not 0.
type VolatileLayout struct {
	Flags           []string
	Reflect         uint8
	Transform       Bits
	Attacks         Bits
	State           Bits
	Substitute      Bits
	Confusion       Bits
	DisableDuration Bits
	DisableMove     Bits
	Toxic           Bits
}

// StatusLayout holds the bit positions inside the status byte. Self marks a sleep the Pokémon
// put itself into.
type StatusLayout struct {
	Sleep     Bits
	Poison    uint8
	Burn      uint8
	Freeze    uint8
	Paralysis uint8
	Self      uint8
}

// Layout describes the binary structures a generation of the engine reads and writes.
// It must match the engine byte for byte.
type Layout struct {
	Gen           pkmn.Gen
	Sizes         Sizes
	Battle        BattleLayout
	Side          SideLayout
	Pokemon       PokemonLayout
	ActivePokemon ActiveLayout
	Boosts        BoostLayout
	Volatiles     VolatileLayout
	Status        StatusLayout
	// StatCount is the number of u16 stats stored per Pokemon.
	StatCount int
}

var gen1Layout = Layout{
	Gen: 1,
	Sizes: Sizes{
		Battle:        384,
		Side:          184,
		Pokemon:       24,
		ActivePokemon: 32,
		MoveSlot:      2,
	},
	Battle: BattleLayout{
		Sides:               [2]int{0, 184},
		Turn:                Field{368, 2},
		LastDamage:          Field{370, 2},
		LastSelectedIndexes: Field{372, 1},
		RNG:                 Field{373, 10},
		RNGIndex:            Field{383, 1},
		ShowdownRNG:         Field{376, 8},
	},
	Side: SideLayout{
		Pokemon:          Field{0, 144},
		Active:           Field{144, 32},
		Order:            Field{176, 6},
		LastSelectedMove: Field{182, 1},
		LastUsedMove:     Field{183, 1},
	},
	Pokemon: PokemonLayout{
		Stats:   Field{0, 10},
		Moves:   Field{10, 8},
		HP:      Field{18, 2},
		Status:  Field{20, 1},
		Species: Field{21, 1},
		Types:   Field{22, 1},
		Level:   Field{23, 1},
	},
	ActivePokemon: ActiveLayout{
		Stats:     Field{0, 10},
		Species:   Field{10, 1},
		Types:     Field{11, 1},
		Boosts:    Field{12, 4},
		Volatiles: Field{16, 8},
		Moves:     Field{24, 8},
	},
	Boosts: BoostLayout{
		Atk:      Bits{0, 4},
		Def:      Bits{4, 8},
		Spe:      Bits{8, 12},
		Spc:      Bits{12, 16},
		Accuracy: Bits{16, 20},
		Evasion:  Bits{20, 24},
	},
	Volatiles: VolatileLayout{
		Flags: []string{
			"bide", "thrashing", "multihit", "flinch", "charging", "trapping",
			"invulnerable", "confusion", "mist", "focusenergy", "substitute",
			"recharging", "rage", "leechseed", "toxic", "lightscreen",
		},
		Transform:       Bits{16, 20},
		Attacks:         Bits{20, 23},
		Reflect:         23,
		State:           Bits{24, 40},
		Substitute:      Bits{40, 48},
		Confusion:       Bits{48, 52},
		DisableDuration: Bits{52, 56},
		DisableMove:     Bits{56, 60},
		Toxic:           Bits{60, 64},
	},
	Status: StatusLayout{
		Sleep:     Bits{0, 3},
		Poison:    3,
		Burn:      4,
		Freeze:    5,
		Paralysis: 6,
		Self:      7,
	},
	StatCount: 5,
}

// Supported lists the generations these bindings can lay out.
var Supported = []pkmn.Gen{1}

// ErrUnsupportedGen is returned for a generation without a Layout or Lookup.
var ErrUnsupportedGen = errors.New("unsupported gen")

func unsupported(gen pkmn.Gen) error {
	return errors.Wrapf(ErrUnsupportedGen, "%s requested, supported gens are %v", gen, Supported)
}

// LayoutFor returns the Layout for gen. The returned value must not be modified.
func LayoutFor(gen pkmn.Gen) (*Layout, error) {
	switch gen {
	case 1:
		return &gen1Layout, nil
	}
	return nil, unsupported(gen)
}

// MustLayoutFor is LayoutFor, but panics on an unsupported generation.
func MustLayoutFor(gen pkmn.Gen) *Layout {
	l, err := LayoutFor(gen)
	if err != nil {
		panic(fmt.Sprintf("bug: %s", err))
	}
	return l
}
