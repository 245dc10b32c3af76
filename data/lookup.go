package data

import (
	"github.com/bearlytools/pkmn"
	"github.com/gostdlib/base/concurrency/sync"
)

/*
Lookup translates between the engine's numeric indices and IDs for a generation. The
...ByID methods return (0, false) for an ID the generation does not have and the ...ByNum
methods return "" for an index outside the generation. Index 0 is never assigned to a
species, move or item and always misses.

A Lookup is immutable and safe for concurrent use. Get one with Get().
*/
type Lookup struct {
	dex *Dex

	typeIDs    map[ID]Type
	speciesIDs map[ID]uint8
	moveIDs    map[ID]uint8
	itemIDs    map[ID]uint8
}

var (
	lookups   = map[pkmn.Gen]*Lookup{}
	lookupsMu sync.RWMutex
)

// Get returns the Lookup for gen. The same *Lookup is returned for every call with the
// same gen.
func Get(gen pkmn.Gen) (*Lookup, error) {
	lookupsMu.RLock()
	l, ok := lookups[gen]
	lookupsMu.RUnlock()
	if ok {
		return l, nil
	}

	lookupsMu.Lock()
	defer lookupsMu.Unlock()

	// Another caller may have built it while we waited.
	if l, ok := lookups[gen]; ok {
		return l, nil
	}

	d, err := dexFor(gen)
	if err != nil {
		return nil, err
	}
	l = newLookup(d)
	lookups[gen] = l
	return l, nil
}

// MustGet is Get, but panics on an unsupported generation.
func MustGet(gen pkmn.Gen) *Lookup {
	l, err := Get(gen)
	if err != nil {
		panic(err)
	}
	return l
}

func newLookup(d *Dex) *Lookup {
	l := &Lookup{
		dex:        d,
		typeIDs:    make(map[ID]Type, len(d.Types)),
		speciesIDs: make(map[ID]uint8, len(d.Species)),
		moveIDs:    make(map[ID]uint8, len(d.Moves)),
		itemIDs:    make(map[ID]uint8, len(d.Items)),
	}
	for i, t := range d.Types {
		l.typeIDs[ToID(t)] = Type(i)
	}
	for _, s := range d.Species {
		l.speciesIDs[s.ID] = s.Num
	}
	for _, m := range d.Moves {
		l.moveIDs[m.ID] = m.Num
	}
	for _, it := range d.Items {
		l.itemIDs[it.ID] = it.Num
	}
	return l
}

// Gen is the generation this Lookup is for.
func (l *Lookup) Gen() pkmn.Gen {
	return l.dex.Gen
}

// Dex returns the underlying data set. It must not be modified.
func (l *Lookup) Dex() *Dex {
	return l.dex
}

// LookupSizes are the number of entries in each index space.
type LookupSizes struct {
	Types   int
	Species int
	Moves   int
	Items   int
}

// Sizes returns the number of entries in each index space.
func (l *Lookup) Sizes() LookupSizes {
	return LookupSizes{
		Types:   len(l.dex.Types),
		Species: len(l.dex.Species),
		Moves:   len(l.dex.Moves),
		Items:   len(l.dex.Items),
	}
}

// TypeByID returns the index of a type.
func (l *Lookup) TypeByID(id ID) (Type, bool) {
	t, ok := l.typeIDs[id]
	return t, ok
}

// TypeByName is TypeByID(ToID(name)).
func (l *Lookup) TypeByName(name string) (Type, bool) {
	return l.TypeByID(ToID(name))
}

// TypeByNum returns the name of the type at index t, such as "Dragon".
func (l *Lookup) TypeByNum(t Type) string {
	if int(t) >= len(l.dex.Types) {
		return ""
	}
	return l.dex.Types[t]
}

// SpeciesByID returns the index of a species.
func (l *Lookup) SpeciesByID(id ID) (uint8, bool) {
	n, ok := l.speciesIDs[id]
	return n, ok
}

// SpeciesByNum returns the ID of the species at index n.
func (l *Lookup) SpeciesByNum(n uint8) ID {
	if s := l.Species(n); s != nil {
		return s.ID
	}
	return ""
}

// Species returns the dex entry for the species at index n or nil.
func (l *Lookup) Species(n uint8) *Species {
	if n == 0 || int(n) > len(l.dex.Species) {
		return nil
	}
	return &l.dex.Species[n-1]
}

// MoveByID returns the index of a move.
func (l *Lookup) MoveByID(id ID) (uint8, bool) {
	n, ok := l.moveIDs[id]
	return n, ok
}

// MoveByNum returns the ID of the move at index n.
func (l *Lookup) MoveByNum(n uint8) ID {
	if m := l.Move(n); m != nil {
		return m.ID
	}
	return ""
}

// Move returns the dex entry for the move at index n or nil.
func (l *Lookup) Move(n uint8) *Move {
	if n == 0 || int(n) > len(l.dex.Moves) {
		return nil
	}
	return &l.dex.Moves[n-1]
}

// ItemByID returns the index of an item. Gen 1 has no items.
func (l *Lookup) ItemByID(id ID) (uint8, bool) {
	n, ok := l.itemIDs[id]
	return n, ok
}

// ItemByNum returns the ID of the item at index n.
func (l *Lookup) ItemByNum(n uint8) ID {
	if n == 0 || int(n) > len(l.dex.Items) {
		return ""
	}
	return l.dex.Items[n-1].ID
}
