package gen1

import (
	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/internal/bits"
)

// volatileBit is the bit position of a single bit volatile.
type volatileBit uint8

const (
	volatileBide volatileBit = iota
	volatileThrashing
	volatileMultiHit
	volatileFlinch
	volatileCharging
	volatileTrapping
	volatileInvulnerable
	volatileConfusion
	volatileMist
	volatileFocusEnergy
	volatileSubstitute
	volatileRecharging
	volatileRage
	volatileLeechSeed
	volatileToxic
	volatileLightScreen
)

// Bide is storing energy. Damage is the damage taken so far.
type Bide struct {
	Damage uint16 `json:"damage"`
}

// Thrashing is locked into Thrash or Petal Dance. Accuracy is carried between the turns.
type Thrashing struct {
	Duration uint8  `json:"duration"`
	Accuracy uint16 `json:"accuracy"`
}

// Trapping is using a partial trapping move such as Wrap.
type Trapping struct {
	Duration uint8 `json:"duration"`
}

// Confusion is confused.
type Confusion struct {
	Duration uint8 `json:"duration"`
}

// Substitute is behind a substitute with HP left.
type Substitute struct {
	HP uint8 `json:"hp"`
}

// Transform is transformed into the Pokémon in Slot of Player's side.
type Transform struct {
	Player pkmn.Player `json:"player"`
	Slot   uint8       `json:"slot"`
}

// Volatiles are the volatile statuses of an active Pokémon. A nil pointer means the volatile
// is not present. Toxic is the engine's bad poison flag, the counter is in StatusData.
type Volatiles struct {
	Bide         *Bide       `json:"bide,omitzero"`
	Thrashing    *Thrashing  `json:"thrashing,omitzero"`
	MultiHit     bool        `json:"multihit,omitzero"`
	Flinch       bool        `json:"flinch,omitzero"`
	Charging     bool        `json:"charging,omitzero"`
	Trapping     *Trapping   `json:"trapping,omitzero"`
	Invulnerable bool        `json:"invulnerable,omitzero"`
	Confusion    *Confusion  `json:"confusion,omitzero"`
	Mist         bool        `json:"mist,omitzero"`
	FocusEnergy  bool        `json:"focusenergy,omitzero"`
	Substitute   *Substitute `json:"substitute,omitzero"`
	Recharging   bool        `json:"recharging,omitzero"`
	Rage         bool        `json:"rage,omitzero"`
	LeechSeed    bool        `json:"leechseed,omitzero"`
	Toxic        bool        `json:"toxic,omitzero"`
	LightScreen  bool        `json:"lightscreen,omitzero"`
	Reflect      bool        `json:"reflect,omitzero"`
	Transform    *Transform  `json:"transform,omitzero"`
}

func decodeVolatiles(v uint64) Volatiles {
	l := layout.Volatiles
	flag := func(b volatileBit) bool { return bits.GetBit(v, uint8(b)) }
	attacks := bits.GetValue[uint64, uint8](v, l.Attacks.Start, l.Attacks.End)
	state := bits.GetValue[uint64, uint16](v, l.State.Start, l.State.End)

	out := Volatiles{
		MultiHit:     flag(volatileMultiHit),
		Flinch:       flag(volatileFlinch),
		Charging:     flag(volatileCharging),
		Invulnerable: flag(volatileInvulnerable),
		Mist:         flag(volatileMist),
		FocusEnergy:  flag(volatileFocusEnergy),
		Recharging:   flag(volatileRecharging),
		Rage:         flag(volatileRage),
		LeechSeed:    flag(volatileLeechSeed),
		Toxic:        flag(volatileToxic),
		LightScreen:  flag(volatileLightScreen),
		Reflect:      bits.GetBit(v, l.Reflect),
	}
	if flag(volatileBide) {
		out.Bide = &Bide{Damage: state}
	}
	if flag(volatileThrashing) {
		out.Thrashing = &Thrashing{Duration: attacks, Accuracy: state}
	}
	if flag(volatileTrapping) {
		out.Trapping = &Trapping{Duration: attacks}
	}
	if flag(volatileConfusion) {
		out.Confusion = &Confusion{Duration: bits.GetValue[uint64, uint8](v, l.Confusion.Start, l.Confusion.End)}
	}
	if flag(volatileSubstitute) {
		out.Substitute = &Substitute{HP: bits.GetValue[uint64, uint8](v, l.Substitute.Start, l.Substitute.End)}
	}
	if t := bits.GetValue[uint64, uint8](v, l.Transform.Start, l.Transform.End); t != 0 {
		out.Transform = &Transform{
			Player: pkmn.Player(bits.GetValue[uint8, uint8](t, 3, 4)),
			Slot:   bits.GetValue[uint8, uint8](t, 0, 3),
		}
	}
	return out
}

// encodeVolatiles is the inverse of decodeVolatiles. toxic, disable and disableMove are
// the values reported through StatusData and Move.
func encodeVolatiles(vs Volatiles, toxic, disable, disableMove uint8) uint64 {
	l := layout.Volatiles
	var v uint64
	set := func(b volatileBit, on bool) { v = bits.SetBit(v, uint8(b), on) }

	set(volatileMultiHit, vs.MultiHit)
	set(volatileFlinch, vs.Flinch)
	set(volatileCharging, vs.Charging)
	set(volatileInvulnerable, vs.Invulnerable)
	set(volatileMist, vs.Mist)
	set(volatileFocusEnergy, vs.FocusEnergy)
	set(volatileRecharging, vs.Recharging)
	set(volatileRage, vs.Rage)
	set(volatileLeechSeed, vs.LeechSeed)
	set(volatileToxic, vs.Toxic)
	set(volatileLightScreen, vs.LightScreen)
	v = bits.SetBit(v, l.Reflect, vs.Reflect)

	// Bide, Thrash and the trapping moves share the attacks counter and the state word.
	var attacks uint8
	var state uint16
	if vs.Trapping != nil {
		set(volatileTrapping, true)
		attacks = vs.Trapping.Duration
	}
	if vs.Thrashing != nil {
		set(volatileThrashing, true)
		attacks, state = vs.Thrashing.Duration, vs.Thrashing.Accuracy
	}
	if vs.Bide != nil {
		set(volatileBide, true)
		state = vs.Bide.Damage
	}
	v = bits.SetValue(attacks, v, l.Attacks.Start, l.Attacks.End)
	v = bits.SetValue(state, v, l.State.Start, l.State.End)

	if vs.Confusion != nil {
		set(volatileConfusion, true)
		v = bits.SetValue(vs.Confusion.Duration, v, l.Confusion.Start, l.Confusion.End)
	}
	if vs.Substitute != nil {
		set(volatileSubstitute, true)
		v = bits.SetValue(vs.Substitute.HP, v, l.Substitute.Start, l.Substitute.End)
	}
	if vs.Transform != nil {
		t := bits.SetValue(vs.Transform.Slot, uint8(0), 0, 3)
		t = bits.SetValue(uint8(vs.Transform.Player), t, 3, 4)
		v = bits.SetValue(t, v, l.Transform.Start, l.Transform.End)
	}

	v = bits.SetValue(disable, v, l.DisableDuration.Start, l.DisableDuration.End)
	v = bits.SetValue(disableMove, v, l.DisableMove.Start, l.DisableMove.End)
	return bits.SetValue(toxic, v, l.Toxic.Start, l.Toxic.End)
}
