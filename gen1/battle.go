/*
Package gen1 provides zero-copy views over the Gen 1 engine's Battle structure and the means
to create and restore one.

A view holds the buffer and offsets only. Every accessor reads the buffer when it is called,
so views stay valid after the engine updates the buffer in place:

	b, err := gen1.Create(lookup, opts)
	if err != nil {
		// Do something
	}
	p1 := b.Side(pkmn.P1)
	// ... the engine updates b.Bytes() ...
	fmt.Println(p1.Active().HP())

Views never write to the buffer. Only Create and Restore produce buffers.
*/
package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/internal/binary"
	"github.com/bearlytools/pkmn/internal/bits"
	"github.com/pkg/errors"
)

// Gen is the generation this package implements.
const Gen pkmn.Gen = 1

var layout = data.MustLayoutFor(Gen)

// Size is the size in bytes of a Battle.
var Size = layout.Sizes.Battle

var (
	// ErrInvalidBuffer is returned when a buffer is not the size of a Battle.
	ErrInvalidBuffer = errors.New("invalid battle buffer")
	// ErrInvalidOptions is returned when options reference unknown data or do not fit the engine.
	ErrInvalidOptions = errors.New("invalid options")
)

// Battle is a view over a Battle buffer.
type Battle struct {
	lookup *data.Lookup
	buf    []byte
	opts   pkmn.Options
}

// New binds a view to buf. opts supplies what the buffer does not hold: whether the engine
// runs in Showdown mode and the player and Pokémon names. buf is not copied.
func New(lookup *data.Lookup, buf []byte, opts pkmn.Options) (*Battle, error) {
	if lookup == nil {
		return nil, errors.New("gen1.New: lookup cannot be nil")
	}
	if lookup.Gen() != Gen {
		return nil, errors.Errorf("gen1.New: lookup is for %s", lookup.Gen())
	}
	if len(buf) != Size {
		return nil, errors.Wrapf(ErrInvalidBuffer, "got %d bytes, want %d", len(buf), Size)
	}
	return &Battle{lookup: lookup, buf: buf, opts: opts}, nil
}

// Gen returns the generation of the Battle.
func (b *Battle) Gen() pkmn.Gen {
	return Gen
}

// Bytes returns the underlying buffer.
func (b *Battle) Bytes() []byte {
	return b.buf
}

// Lookup returns the Lookup used to translate indices.
func (b *Battle) Lookup() *data.Lookup {
	return b.lookup
}

// Options returns the options the view was bound with.
func (b *Battle) Options() pkmn.Options {
	return b.opts
}

// Turn is the current turn.
func (b *Battle) Turn() uint16 {
	return binary.Get[uint16](b.buf[layout.Battle.Turn.Offset:])
}

// LastDamage is the damage dealt by the last attack.
func (b *Battle) LastDamage() uint16 {
	return binary.Get[uint16](b.buf[layout.Battle.LastDamage.Offset:])
}

// PRNG returns the random number generator state. In Showdown mode these are the 4 seed
// words. Otherwise it is the 10 byte cartridge seed, starting at the byte that will be
// used next.
func (b *Battle) PRNG() []uint16 {
	if b.opts.Showdown {
		f := layout.Battle.ShowdownRNG
		out := make([]uint16, 0, f.Size/2)
		for off := f.Offset; off < f.End(); off += 2 {
			out = append(out, binary.Get[uint16](b.buf[off:]))
		}
		return out
	}

	f := layout.Battle.RNG
	seed := b.buf[f.Offset:f.End()]
	index := int(b.buf[layout.Battle.RNGIndex.Offset]) % len(seed)
	out := make([]uint16, 0, len(seed))
	for i := range seed {
		out = append(out, uint16(seed[(index+i)%len(seed)]))
	}
	return out
}

// Side returns the view of player p's side.
func (b *Battle) Side(p pkmn.Player) *Side {
	return &Side{battle: b, player: p, off: layout.Battle.Sides[p&1]}
}

// Foe returns the view of the side opposing p.
func (b *Battle) Foe(p pkmn.Player) *Side {
	return b.Side(p.Foe())
}

// Sides returns both sides, p1 first.
func (b *Battle) Sides() [2]*Side {
	return [2]*Side{b.Side(pkmn.P1), b.Side(pkmn.P2)}
}

func (b *Battle) lastSelectedIndex(p pkmn.Player) uint8 {
	lo, hi := bits.Nibbles(b.buf[layout.Battle.LastSelectedIndexes.Offset])
	if p == pkmn.P2 {
		return hi
	}
	return lo
}
