package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/internal/binary"
	"github.com/bearlytools/pkmn/internal/bits"
)

// Stats are a Pokémon's stats. Gen 1 has a single Special stat, which is reported as
// both SpA and SpD.
type Stats struct {
	HP  uint16 `json:"hp"`
	Atk uint16 `json:"atk"`
	Def uint16 `json:"def"`
	SpA uint16 `json:"spa"`
	SpD uint16 `json:"spd"`
	Spe uint16 `json:"spe"`
}

// BoostStat names a stat that can be boosted.
type BoostStat uint8

const (
	BoostAtk BoostStat = iota
	BoostDef
	BoostSpA
	BoostSpD
	BoostSpe
	BoostAccuracy
	BoostEvasion
)

// Boosts are the stat stages, each in [-6, 6]. SpA and SpD are the same Special boost.
type Boosts struct {
	Atk      int `json:"atk,omitzero"`
	Def      int `json:"def,omitzero"`
	SpA      int `json:"spa,omitzero"`
	SpD      int `json:"spd,omitzero"`
	Spe      int `json:"spe,omitzero"`
	Accuracy int `json:"accuracy,omitzero"`
	Evasion  int `json:"evasion,omitzero"`
}

// Get returns the boost for stat.
func (b Boosts) Get(stat BoostStat) int {
	switch stat {
	case BoostAtk:
		return b.Atk
	case BoostDef:
		return b.Def
	case BoostSpA:
		return b.SpA
	case BoostSpD:
		return b.SpD
	case BoostSpe:
		return b.Spe
	case BoostAccuracy:
		return b.Accuracy
	case BoostEvasion:
		return b.Evasion
	}
	return 0
}

// MoveSlot is one of a Pokémon's moves. Disabled is the remaining duration of Disable on
// this move, 0 when it is not disabled.
type MoveSlot struct {
	ID       data.ID `json:"id"`
	PP       uint8   `json:"pp"`
	Disabled uint8   `json:"disabled,omitzero"`
}

// Status is a non volatile status condition.
type Status string

const (
	Healthy   Status = ""
	Sleep     Status = "slp"
	Poison    Status = "psn"
	Burn      Status = "brn"
	Freeze    Status = "frz"
	Paralysis Status = "par"
	// Toxic is Poison that is getting worse each turn.
	Toxic Status = "tox"
)

// StatusData is the payload of a Status.
type StatusData struct {
	// Sleep is the number of turns left asleep.
	Sleep uint8 `json:"sleep,omitzero"`
	// Self is set when the Pokémon put itself to sleep with Rest.
	Self bool `json:"self,omitzero"`
	// Toxic is the Toxic counter.
	Toxic uint8 `json:"toxic,omitzero"`
}

// Pokemon is a view over one stored Pokémon of a Side. It is bound to the Pokémon's storage
// slot, its position and whether it is active are read from the side's order on every call.
//
// The methods on Pokemon report its current state, which reflects a transformation while it is
// active. Stored() reports its permanent state.
type Pokemon struct {
	side  *Side
	index int
}

func (p *Pokemon) buf() []byte {
	return p.side.battle.buf
}

func (p *Pokemon) lookup() *data.Lookup {
	return p.side.battle.lookup
}

func (p *Pokemon) storedOff() int {
	return p.side.off + layout.Side.Pokemon.Offset + p.index*layout.Sizes.Pokemon
}

func (p *Pokemon) activeOff() int {
	return p.side.off + layout.Side.Active.Offset
}

// Index is the 0 based storage slot the view is bound to.
func (p *Pokemon) Index() int {
	return p.index
}

// Name returns the nickname from the options the Battle was bound with, falling back to the
// stored species' display name.
func (p *Pokemon) Name() string {
	if n := p.nickname(); n != "" {
		return n
	}
	if s := p.lookup().Species(p.buf()[p.storedOff()+layout.Pokemon.Species.Offset]); s != nil {
		return s.Name
	}
	return ""
}

// Position returns the 1 based position of the Pokémon in its side's order, 0 if it has none.
func (p *Pokemon) Position() int {
	for i := 0; i < layout.Side.Order.Size; i++ {
		if int(p.side.order(i)) == p.index+1 {
			return i + 1
		}
	}
	return 0
}

// Active reports if the Pokémon is the side's active Pokémon.
func (p *Pokemon) Active() bool {
	a := p.side.Active()
	return a != nil && a.index == p.index
}

// Stored returns the view of the Pokémon's permanent state.
func (p *Pokemon) Stored() *Stored {
	return &Stored{p: p}
}

// Species is the current species.
func (p *Pokemon) Species() data.ID {
	if p.Active() {
		return p.lookup().SpeciesByNum(p.buf()[p.activeOff()+layout.ActivePokemon.Species.Offset])
	}
	return p.Stored().Species()
}

// Types are the current types.
func (p *Pokemon) Types() [2]string {
	if p.Active() {
		return p.types(p.activeOff() + layout.ActivePokemon.Types.Offset)
	}
	return p.Stored().Types()
}

// Stats are the current stats.
func (p *Pokemon) Stats() Stats {
	if p.Active() {
		return p.stats(p.activeOff() + layout.ActivePokemon.Stats.Offset)
	}
	return p.Stored().Stats()
}

// Moves are the current moves.
func (p *Pokemon) Moves() []MoveSlot {
	return collectMoves(p.Move)
}

// Move returns the current move in slot n (1-4). ok is false for an empty or out of range slot.
func (p *Pokemon) Move(n int) (slot MoveSlot, ok bool) {
	if !p.Active() {
		return p.Stored().Move(n)
	}
	slot, ok = p.move(p.activeOff()+layout.ActivePokemon.Moves.Offset, n)
	if !ok {
		return slot, false
	}
	v := p.volatiles()
	dur := bits.GetValue[uint64, uint8](v, layout.Volatiles.DisableDuration.Start, layout.Volatiles.DisableDuration.End)
	move := bits.GetValue[uint64, uint8](v, layout.Volatiles.DisableMove.Start, layout.Volatiles.DisableMove.End)
	if dur > 0 && int(move) == n {
		slot.Disabled = dur
	}
	return slot, true
}

// Boosts are the stat stages. They are all 0 unless the Pokémon is active.
func (p *Pokemon) Boosts() Boosts {
	if !p.Active() {
		return Boosts{}
	}
	v := binary.Get[uint32](p.buf()[p.activeOff()+layout.ActivePokemon.Boosts.Offset:])
	l := layout.Boosts
	spc := bits.GetSigned(v, l.Spc.Start, l.Spc.End)
	return Boosts{
		Atk:      bits.GetSigned(v, l.Atk.Start, l.Atk.End),
		Def:      bits.GetSigned(v, l.Def.Start, l.Def.End),
		SpA:      spc,
		SpD:      spc,
		Spe:      bits.GetSigned(v, l.Spe.Start, l.Spe.End),
		Accuracy: bits.GetSigned(v, l.Accuracy.Start, l.Accuracy.End),
		Evasion:  bits.GetSigned(v, l.Evasion.Start, l.Evasion.End),
	}
}

// Boost returns a single stat stage.
func (p *Pokemon) Boost(stat BoostStat) int {
	return p.Boosts().Get(stat)
}

// HP is the current HP.
func (p *Pokemon) HP() uint16 {
	return binary.Get[uint16](p.buf()[p.storedOff()+layout.Pokemon.HP.Offset:])
}

// Level is the Pokémon's level.
func (p *Pokemon) Level() uint8 {
	return p.buf()[p.storedOff()+layout.Pokemon.Level.Offset]
}

// Status is the current status. A poisoned active Pokémon with a running Toxic counter is
// badly poisoned.
func (p *Pokemon) Status() Status {
	s := statusName(p.statusByte())
	if s == Poison && p.toxic() > 0 {
		return Toxic
	}
	return s
}

// StatusData is the payload of Status. The Toxic counter is only kept while the Pokémon
// is active.
func (p *Pokemon) StatusData() StatusData {
	d := storedStatusData(p.statusByte())
	d.Toxic = p.toxic()
	return d
}

func (p *Pokemon) toxic() uint8 {
	if !p.Active() {
		return 0
	}
	return bits.GetValue[uint64, uint8](p.volatiles(), layout.Volatiles.Toxic.Start, layout.Volatiles.Toxic.End)
}

// Volatiles are the Pokémon's volatile statuses. They are empty unless the Pokémon is active.
// Disable is reported through Move instead.
func (p *Pokemon) Volatiles() Volatiles {
	if !p.Active() {
		return Volatiles{}
	}
	return decodeVolatiles(p.volatiles())
}

func (p *Pokemon) statusByte() uint8 {
	return p.buf()[p.storedOff()+layout.Pokemon.Status.Offset]
}

func (p *Pokemon) volatiles() uint64 {
	return binary.Get[uint64](p.buf()[p.activeOff()+layout.ActivePokemon.Volatiles.Offset:])
}

func (p *Pokemon) types(off int) [2]string {
	lo, hi := bits.Nibbles(p.buf()[off])
	l := p.lookup()
	return [2]string{l.TypeByNum(data.Type(lo)), l.TypeByNum(data.Type(hi))}
}

// stats reads a stats block of hp, atk, def, spe, spc.
func (p *Pokemon) stats(off int) Stats {
	b := p.buf()[off:]
	spc := binary.Get[uint16](b[8:])
	return Stats{
		HP:  binary.Get[uint16](b[0:]),
		Atk: binary.Get[uint16](b[2:]),
		Def: binary.Get[uint16](b[4:]),
		Spe: binary.Get[uint16](b[6:]),
		SpA: spc,
		SpD: spc,
	}
}

func (p *Pokemon) move(off int, n int) (MoveSlot, bool) {
	if n < 1 || n > pkmn.MaxMoves {
		return MoveSlot{}, false
	}
	off += (n - 1) * layout.Sizes.MoveSlot
	id := p.lookup().MoveByNum(p.buf()[off])
	if id == "" {
		return MoveSlot{}, false
	}
	return MoveSlot{ID: id, PP: p.buf()[off+1]}, true
}

func collectMoves(get func(n int) (MoveSlot, bool)) []MoveSlot {
	var out []MoveSlot
	for n := 1; n <= pkmn.MaxMoves; n++ {
		if m, ok := get(n); ok {
			out = append(out, m)
		}
	}
	return out
}

func statusName(b uint8) Status {
	s := layout.Status
	switch {
	case bits.GetValue[uint8, uint8](b, s.Sleep.Start, s.Sleep.End) > 0:
		return Sleep
	case bits.GetBit(b, s.Poison):
		return Poison
	case bits.GetBit(b, s.Burn):
		return Burn
	case bits.GetBit(b, s.Freeze):
		return Freeze
	case bits.GetBit(b, s.Paralysis):
		return Paralysis
	}
	return Healthy
}

func storedStatusData(b uint8) StatusData {
	if statusName(b) != Sleep {
		return StatusData{}
	}
	return StatusData{
		Sleep: bits.GetValue[uint8, uint8](b, layout.Status.Sleep.Start, layout.Status.Sleep.End),
		Self:  bits.GetBit(b, layout.Status.Self),
	}
}

// Stored is a view over a Pokémon's permanent state, which a transformation does not change.
type Stored struct {
	p *Pokemon
}

// Species is the stored species.
func (s *Stored) Species() data.ID {
	return s.p.lookup().SpeciesByNum(s.p.buf()[s.p.storedOff()+layout.Pokemon.Species.Offset])
}

// Types are the stored species' types.
func (s *Stored) Types() [2]string {
	return s.p.types(s.p.storedOff() + layout.Pokemon.Types.Offset)
}

// Stats are the stored stats. HP is the max HP.
func (s *Stored) Stats() Stats {
	return s.p.stats(s.p.storedOff() + layout.Pokemon.Stats.Offset)
}

// Moves are the stored moves.
func (s *Stored) Moves() []MoveSlot {
	return collectMoves(s.Move)
}

// Move returns the stored move in slot n (1-4).
func (s *Stored) Move(n int) (MoveSlot, bool) {
	return s.p.move(s.p.storedOff()+layout.Pokemon.Moves.Offset, n)
}
