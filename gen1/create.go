package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/internal/binary"
	"github.com/bearlytools/pkmn/internal/bits"
	"github.com/pkg/errors"
)

// Create allocates a Battle and writes both teams, the seed and the battle counters from opts.
// Each Pokémon starts healthy with full HP and PP unless its Set says otherwise, and no
// Pokémon is active.
func Create(lookup *data.Lookup, opts pkmn.Options) (*Battle, error) {
	if lookup == nil {
		return nil, errors.New("gen1.Create: lookup cannot be nil")
	}

	st := &State{Turn: opts.Turn, LastDamage: opts.LastDamage, PRNG: opts.Seed}
	for _, p := range pkmn.Players {
		so := opts.Side(p)
		if len(so.Team) == 0 || len(so.Team) > pkmn.MaxTeamSize {
			return nil, errors.Wrapf(ErrInvalidOptions, "%s team has %d Pokémon, want 1-%d", p, len(so.Team), pkmn.MaxTeamSize)
		}

		ss := st.Side(p)
		ss.Name = so.Name
		for i, set := range so.Team {
			ps, err := pokemonState(lookup, set)
			if err != nil {
				return nil, errors.Wrapf(err, "%s team slot %d", p, i+1)
			}
			ss.Team = append(ss.Team, ps)
		}
	}

	buf, err := st.encode(lookup, opts.Showdown)
	if err != nil {
		return nil, err
	}
	return New(lookup, buf, opts)
}

// Restore re-encodes the Battle b views into a new buffer. Everything is read from b, including
// the storage order and the side's order, so names in opts stay with their storage slot.
// Restoring a Battle made by Create reproduces it byte for byte.
func Restore(lookup *data.Lookup, b *Battle, opts pkmn.Options) (*Battle, error) {
	if b == nil {
		return nil, errors.New("gen1.Restore: battle cannot be nil")
	}
	opts.Showdown = b.opts.Showdown

	v, err := New(lookup, b.buf, opts)
	if err != nil {
		return nil, err
	}
	buf, err := v.State().encode(lookup, opts.Showdown)
	if err != nil {
		return nil, err
	}
	return New(lookup, buf, opts)
}

// Encode writes st to a new Battle. It accepts the output of Deserialize.
func Encode(lookup *data.Lookup, st *State, opts pkmn.Options) (*Battle, error) {
	if lookup == nil || st == nil {
		return nil, errors.New("gen1.Encode: lookup and state are required")
	}
	buf, err := st.encode(lookup, opts.Showdown)
	if err != nil {
		return nil, err
	}
	return New(lookup, buf, opts)
}

func pokemonState(lookup *data.Lookup, set pkmn.Set) (PokemonState, error) {
	num, ok := lookup.SpeciesByID(data.ToID(set.Species))
	if !ok {
		return PokemonState{}, errors.Wrapf(ErrInvalidOptions, "unknown species %q", set.Species)
	}
	species := lookup.Species(num)

	if len(set.Moves) == 0 || len(set.Moves) > pkmn.MaxMoves {
		return PokemonState{}, errors.Wrapf(ErrInvalidOptions, "%s has %d moves, want 1-%d", species.Name, len(set.Moves), pkmn.MaxMoves)
	}

	level := set.Level
	if level == 0 {
		level = data.DefaultLevel
	}
	if level > 100 {
		return PokemonState{}, errors.Wrapf(ErrInvalidOptions, "%s has level %d", species.Name, level)
	}
	dvs, evs := pkmn.MaxDVs, pkmn.MaxEVs
	if set.DVs != nil {
		dvs = *set.DVs
	}
	if set.EVs != nil {
		evs = *set.EVs
	}

	status := statusName(set.Status)
	if b, err := statusByte(status, storedStatusData(set.Status)); err != nil || b != set.Status {
		return PokemonState{}, errors.Wrapf(ErrInvalidOptions, "%s has invalid status %#02x", species.Name, set.Status)
	}

	stats := data.CalcStats(species.Base, dvs, evs, level)
	if set.Stats != nil {
		stats = *set.Stats
	}

	ps := PokemonState{
		Name:       set.Name,
		Species:    species.ID,
		Types:      [2]string{lookup.TypeByNum(species.Types[0]), lookup.TypeByNum(species.Types[1])},
		Level:      level,
		HP:         stats.HP,
		Status:     status,
		StatusData: storedStatusData(set.Status),
		Stats:      Stats{HP: stats.HP, Atk: stats.Atk, Def: stats.Def, SpA: stats.Spc, SpD: stats.Spc, Spe: stats.Spe},
	}
	if set.HP != nil {
		ps.HP = *set.HP
	}

	for i, name := range set.Moves {
		n, ok := lookup.MoveByID(data.ToID(name))
		if !ok {
			return PokemonState{}, errors.Wrapf(ErrInvalidOptions, "%s has unknown move %q", species.Name, name)
		}
		m := lookup.Move(n)
		pp := data.CalcPP(m.PP)
		if i < len(set.PP) {
			pp = set.PP[i]
		}
		ps.Moves = append(ps.Moves, MoveSlot{ID: m.ID, PP: pp})
	}
	return ps, nil
}

// encode writes the State to a new buffer.
func (s *State) encode(lookup *data.Lookup, showdown bool) ([]byte, error) {
	buf := make([]byte, Size)

	binary.Put(buf[layout.Battle.Turn.Offset:], s.Turn)
	binary.Put(buf[layout.Battle.LastDamage.Offset:], s.LastDamage)
	buf[layout.Battle.LastSelectedIndexes.Offset] = bits.JoinNibbles(s.P1.LastSelectedIndex, s.P2.LastSelectedIndex)
	if err := encodePRNG(buf, s.PRNG, showdown); err != nil {
		return nil, err
	}

	for _, p := range pkmn.Players {
		if err := s.Side(p).encode(lookup, buf[layout.Battle.Sides[p]:]); err != nil {
			return nil, errors.Wrapf(err, "%s", p)
		}
	}
	return buf, nil
}

func encodePRNG(buf []byte, seed []uint16, showdown bool) error {
	if showdown {
		f := layout.Battle.ShowdownRNG
		if len(seed) != 0 && len(seed) != f.Size/2 {
			return errors.Wrapf(ErrInvalidOptions, "Showdown seed must have %d values, got %d", f.Size/2, len(seed))
		}
		for i, v := range seed {
			binary.Put(buf[f.Offset+2*i:], v)
		}
		return nil
	}

	f := layout.Battle.RNG
	if len(seed) != 0 && len(seed) != f.Size {
		return errors.Wrapf(ErrInvalidOptions, "seed must have %d values, got %d", f.Size, len(seed))
	}
	for i, v := range seed {
		if v > 0xFF {
			return errors.Wrapf(ErrInvalidOptions, "seed value %d at %d does not fit in a byte", v, i)
		}
		buf[f.Offset+i] = byte(v)
	}
	buf[layout.Battle.RNGIndex.Offset] = 0
	return nil
}

func (s *SideState) encode(lookup *data.Lookup, buf []byte) error {
	if len(s.Team) > pkmn.MaxTeamSize {
		return errors.Wrapf(ErrInvalidOptions, "team has %d Pokémon", len(s.Team))
	}
	order, err := s.order()
	if err != nil {
		return err
	}

	for i, ps := range s.Team {
		lead := s.Active != nil && int(order[0]) == i+1
		off := layout.Side.Pokemon.Offset + i*layout.Sizes.Pokemon
		if err := ps.encode(lookup, buf[off:off+layout.Sizes.Pokemon], lead); err != nil {
			return errors.Wrapf(err, "slot %d", i+1)
		}
	}
	copy(buf[layout.Side.Order.Offset:], order)

	if s.Active != nil {
		if order[0] == 0 {
			return errors.Wrapf(ErrInvalidOptions, "active Pokémon without a Pokémon in position 1")
		}
		lead := s.Team[order[0]-1]
		off := layout.Side.Active.Offset
		if err := s.Active.encode(lookup, buf[off:off+layout.Sizes.ActivePokemon], lead); err != nil {
			return errors.Wrap(err, "active")
		}
	}

	if buf[layout.Side.LastUsedMove.Offset], err = moveNum(lookup, s.LastUsedMove); err != nil {
		return err
	}
	if buf[layout.Side.LastSelectedMove.Offset], err = moveNum(lookup, s.LastSelectedMove); err != nil {
		return err
	}
	return nil
}

// order returns the order bytes, the storage order when Order is empty.
func (s *SideState) order() ([]byte, error) {
	out := make([]byte, layout.Side.Order.Size)
	if len(s.Order) == 0 {
		for i := range s.Team {
			out[i] = uint8(i + 1)
		}
		return out, nil
	}
	if len(s.Order) != len(out) {
		return nil, errors.Wrapf(ErrInvalidOptions, "order has %d positions, want %d", len(s.Order), len(out))
	}

	seen := map[int]bool{}
	for i, o := range s.Order {
		if o == 0 {
			continue
		}
		if o < 0 || o > len(s.Team) || seen[o] {
			return nil, errors.Wrapf(ErrInvalidOptions, "order %v is not a permutation of a %d Pokémon team", s.Order, len(s.Team))
		}
		seen[o] = true
		out[i] = uint8(o)
	}
	return out, nil
}

// encode writes a stored Pokémon. Only the active Pokémon carries a Toxic counter, which
// is written with its volatiles.
func (ps *PokemonState) encode(lookup *data.Lookup, buf []byte, lead bool) error {
	if ps.Status == Toxic && (!lead || ps.StatusData.Toxic == 0) {
		return errors.Wrapf(ErrInvalidOptions, "%s is badly poisoned without an active Toxic counter", ps.Species)
	}
	if !lead && ps.StatusData.Toxic != 0 {
		return errors.Wrapf(ErrInvalidOptions, "%s has a Toxic counter but is not active", ps.Species)
	}
	num, ok := lookup.SpeciesByID(ps.Species)
	if !ok {
		return errors.Wrapf(ErrInvalidOptions, "unknown species %q", ps.Species)
	}
	types, err := typesByte(lookup, ps.Types)
	if err != nil {
		return err
	}
	status, err := statusByte(ps.Status, ps.StatusData)
	if err != nil {
		return err
	}

	putStats(buf[layout.Pokemon.Stats.Offset:], ps.Stats)
	if err := putMoves(lookup, buf[layout.Pokemon.Moves.Offset:], ps.Moves); err != nil {
		return err
	}
	binary.Put(buf[layout.Pokemon.HP.Offset:], ps.HP)
	buf[layout.Pokemon.Status.Offset] = status
	buf[layout.Pokemon.Species.Offset] = num
	buf[layout.Pokemon.Types.Offset] = types
	buf[layout.Pokemon.Level.Offset] = ps.Level
	return nil
}

func (a *ActiveState) encode(lookup *data.Lookup, buf []byte, lead PokemonState) error {
	num, ok := lookup.SpeciesByID(a.Species)
	if !ok {
		return errors.Wrapf(ErrInvalidOptions, "unknown species %q", a.Species)
	}
	types, err := typesByte(lookup, a.Types)
	if err != nil {
		return err
	}

	putStats(buf[layout.ActivePokemon.Stats.Offset:], a.Stats)
	buf[layout.ActivePokemon.Species.Offset] = num
	buf[layout.ActivePokemon.Types.Offset] = types

	l := layout.Boosts
	var boosts uint32
	boosts = bits.SetSigned(a.Boosts.Atk, boosts, l.Atk.Start, l.Atk.End)
	boosts = bits.SetSigned(a.Boosts.Def, boosts, l.Def.Start, l.Def.End)
	boosts = bits.SetSigned(a.Boosts.Spe, boosts, l.Spe.Start, l.Spe.End)
	boosts = bits.SetSigned(a.Boosts.SpA, boosts, l.Spc.Start, l.Spc.End)
	boosts = bits.SetSigned(a.Boosts.Accuracy, boosts, l.Accuracy.Start, l.Accuracy.End)
	boosts = bits.SetSigned(a.Boosts.Evasion, boosts, l.Evasion.Start, l.Evasion.End)
	binary.Put(buf[layout.ActivePokemon.Boosts.Offset:], boosts)

	var disable, disableMove uint8
	for i, m := range a.Moves {
		if m.Disabled > 0 {
			disable, disableMove = m.Disabled, uint8(i+1)
		}
	}
	v := encodeVolatiles(a.Volatiles, lead.StatusData.Toxic, disable, disableMove)
	binary.Put(buf[layout.ActivePokemon.Volatiles.Offset:], v)

	return putMoves(lookup, buf[layout.ActivePokemon.Moves.Offset:], a.Moves)
}

func putStats(buf []byte, s Stats) {
	binary.Put(buf[0:], s.HP)
	binary.Put(buf[2:], s.Atk)
	binary.Put(buf[4:], s.Def)
	binary.Put(buf[6:], s.Spe)
	binary.Put(buf[8:], s.SpA)
}

func putMoves(lookup *data.Lookup, buf []byte, moves []MoveSlot) error {
	if len(moves) > pkmn.MaxMoves {
		return errors.Wrapf(ErrInvalidOptions, "%d moves, max is %d", len(moves), pkmn.MaxMoves)
	}
	for i, m := range moves {
		n, err := moveNum(lookup, m.ID)
		if err != nil {
			return err
		}
		off := i * layout.Sizes.MoveSlot
		buf[off] = n
		buf[off+1] = m.PP
	}
	return nil
}

func moveNum(lookup *data.Lookup, id data.ID) (uint8, error) {
	if id == "" {
		return 0, nil
	}
	n, ok := lookup.MoveByID(id)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidOptions, "unknown move %q", id)
	}
	return n, nil
}

func typesByte(lookup *data.Lookup, types [2]string) (byte, error) {
	var n [2]data.Type
	for i, t := range types {
		v, ok := lookup.TypeByName(t)
		if !ok {
			return 0, errors.Wrapf(ErrInvalidOptions, "unknown type %q", t)
		}
		n[i] = v
	}
	return bits.JoinNibbles(uint8(n[0]), uint8(n[1])), nil
}

func statusByte(s Status, d StatusData) (byte, error) {
	l := layout.Status
	var b byte
	switch s {
	case Healthy:
	case Sleep:
		b = bits.SetValue(d.Sleep, b, l.Sleep.Start, l.Sleep.End)
		b = bits.SetBit(b, l.Self, d.Self)
	case Poison, Toxic:
		b = bits.SetBit(b, l.Poison, true)
	case Burn:
		b = bits.SetBit(b, l.Burn, true)
	case Freeze:
		b = bits.SetBit(b, l.Freeze, true)
	case Paralysis:
		b = bits.SetBit(b, l.Paralysis, true)
	default:
		return 0, errors.Wrapf(ErrInvalidOptions, "unknown status %q", s)
	}
	return b, nil
}
