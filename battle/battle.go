/*
Package battle creates and views Battle buffers of any supported generation.

Each generation has its own package with the full view API (gen1 for Gen 1). This package
picks the right one from a pkmn.Gen so callers that are handed a generation at runtime do not
need their own switch:

	b, err := battle.Create(1, opts)
	if err != nil {
		// Do something
	}
	v := b.(*gen1.Battle)
*/
package battle

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/gen1"
	"github.com/pkg/errors"
)

// Battle is implemented by the Battle view of every generation package.
type Battle interface {
	// Gen is the generation of the Battle.
	Gen() pkmn.Gen
	// Bytes is the buffer the view reads.
	Bytes() []byte
	// Turn is the current turn.
	Turn() uint16
	// LastDamage is the damage dealt by the last attack.
	LastDamage() uint16
	// PRNG is the random number generator state.
	PRNG() []uint16
	// MarshalJSON is the deterministic serialization of the Battle.
	MarshalJSON() ([]byte, error)
}

var _ Battle = (*gen1.Battle)(nil)

// Create allocates a new Battle for gen from opts.
func Create(gen pkmn.Gen, opts pkmn.Options) (Battle, error) {
	lookup, err := data.Get(gen)
	if err != nil {
		return nil, err
	}
	switch gen {
	case gen1.Gen:
		return wrap(gen1.Create(lookup, opts))
	}
	return nil, unsupported(gen)
}

// Restore re-encodes b into a new buffer. b must be a Battle of gen.
func Restore(gen pkmn.Gen, b Battle, opts pkmn.Options) (Battle, error) {
	lookup, err := data.Get(gen)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("battle.Restore: battle cannot be nil")
	}
	if b.Gen() != gen {
		return nil, errors.Errorf("battle.Restore: battle is %s, not %s", b.Gen(), gen)
	}
	switch gen {
	case gen1.Gen:
		v, ok := b.(*gen1.Battle)
		if !ok {
			return nil, errors.Errorf("battle.Restore: %T is not a %s battle", b, gen)
		}
		return wrap(gen1.Restore(lookup, v, opts))
	}
	return nil, unsupported(gen)
}

// View binds a view of gen to buf without copying it.
func View(gen pkmn.Gen, buf []byte, opts pkmn.Options) (Battle, error) {
	lookup, err := data.Get(gen)
	if err != nil {
		return nil, err
	}
	switch gen {
	case gen1.Gen:
		return wrap(gen1.New(lookup, buf, opts))
	}
	return nil, unsupported(gen)
}

// Size returns the size in bytes of a Battle of gen.
func Size(gen pkmn.Gen) (int, error) {
	l, err := data.LayoutFor(gen)
	if err != nil {
		return 0, err
	}
	return l.Sizes.Battle, nil
}

// wrap keeps a failed call from returning a non-nil Battle holding a nil pointer.
func wrap(b *gen1.Battle, err error) (Battle, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

func unsupported(gen pkmn.Gen) error {
	return errors.Wrapf(data.ErrUnsupportedGen, "%s requested, supported gens are %v", gen, data.Supported)
}
