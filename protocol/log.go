/*
Package protocol decodes the engine's binary battle log and reads the Pokémon Showdown text
protocol it mirrors.

The engine appends one record per protocol line to its log region every update. Decoding a
region produces the same ParsedLines as parsing the text protocol line for line, so a host can
check the engine against a Showdown log without rendering either:

	l, err := protocol.New(1, lookup, protocol.InfoFromOptions(opts))
	if err != nil {
		// Do something
	}
	s := l.Parse(logBuf)
	for line := range s.All() {
		fmt.Println(protocol.Format(line))
	}
	if err := s.Err(); err != nil {
		// Do something
	}
	next := logBuf[s.N():]
*/
package protocol

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/bearlytools/pkmn/internal/binary"
	"github.com/bearlytools/pkmn/internal/bits"
	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned when the buffer ends inside a record.
	ErrTruncated = errors.New("truncated log record")
	// ErrUnknownArg is returned for a record kind, reason or reference the decoder does not know.
	ErrUnknownArg = errors.New("unknown log argument")
)

// ParsedLine is one protocol line. Args holds the line type followed by its positional
// arguments. KWArgs holds the trailing "[key] value" arguments, a flag such as "[miss]"
// has the value "". KWArgs is nil when the line has none.
type ParsedLine struct {
	Args   []string
	KWArgs map[string]string
}

// Kind is the first byte of a binary log record.
type Kind uint8

const (
	KindNone Kind = iota
	KindMove
	KindSwitch
	KindCant
	KindFaint
	KindTurn
	KindWin
	KindTie
	KindDamage
	KindHeal
	KindStatus
	KindCureStatus
	KindBoost
	KindClearAllBoost
	KindFail
	KindMiss
	KindHitCount
	KindPrepare
	KindMustRecharge
	KindActivate
	KindFieldActivate
	KindStart
	KindEnd
	KindOHKO
	KindCrit
	KindSuperEffective
	KindResisted
	KindImmune
	KindTransform
)

var kindNames = [...]string{
	"none", "move", "switch", "cant", "faint", "turn", "win", "tie", "-damage", "-heal",
	"-status", "-curestatus", "-boost", "-clearallboost", "-fail", "-miss", "-hitcount",
	"-prepare", "-mustrecharge", "-activate", "-fieldactivate", "-start", "-end", "-ohko",
	"-crit", "-supereffective", "-resisted", "-immune", "-transform",
}

// String returns the text protocol line type of the record.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Log decodes binary logs of one battle.
type Log struct {
	gen    pkmn.Gen
	lookup *data.Lookup
	info   Info
	layout *data.Layout
}

// New returns a Log for battles of gen. info names the players and their Pokémon.
func New(gen pkmn.Gen, lookup *data.Lookup, info Info) (*Log, error) {
	layout, err := data.LayoutFor(gen)
	if err != nil {
		return nil, err
	}
	if lookup == nil || lookup.Gen() != gen {
		return nil, errors.Errorf("protocol.New: lookup must be for %s", gen)
	}
	return &Log{gen: gen, lookup: lookup, info: info, layout: layout}, nil
}

// Parse returns a Stream over buf. Nothing is decoded until the Stream is iterated.
func (l *Log) Parse(buf []byte) *Stream {
	return &Stream{log: l, buf: buf}
}

// Stream decodes the records of one log region. It is consumed by iterating it, a second
// call to Parse decodes the region again from the start.
type Stream struct {
	log  *Log
	buf  []byte
	off  int
	done bool
	err  error
}

// All yields one ParsedLine per record until the terminating zero byte, the end of the buffer
// or an error. Iteration resumes where a previous one stopped.
func (s *Stream) All() iter.Seq[ParsedLine] {
	return func(yield func(ParsedLine) bool) {
		for {
			line, ok := s.next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// N is the number of bytes consumed so far, including the terminating zero byte once it
// has been read.
func (s *Stream) N() int {
	return s.off
}

// Err returns the error that stopped decoding, if any.
func (s *Stream) Err() error {
	return s.err
}

func (s *Stream) next() (ParsedLine, bool) {
	if s.done {
		return ParsedLine{}, false
	}
	if s.off >= len(s.buf) {
		s.done = true
		return ParsedLine{}, false
	}

	kind := Kind(s.buf[s.off])
	if kind == KindNone {
		s.off++
		s.done = true
		return ParsedLine{}, false
	}

	d := &decoder{log: s.log, b: s.buf[s.off:], pos: 1}
	line := d.decode(kind)
	if d.err != nil {
		s.err = errors.Wrapf(d.err, "%s record at byte %d", kind, s.off)
		s.done = true
		return ParsedLine{}, false
	}
	s.off += d.pos
	return line, true
}

// decoder reads the arguments of a single record. The first error sticks and every later
// read returns a zero value.
type decoder struct {
	log  *Log
	b    []byte
	pos  int
	err  error
	line ParsedLine
}

func (d *decoder) fail(err error, format string, args ...any) {
	if d.err == nil {
		d.err = errors.Wrapf(err, format, args...)
	}
}

func (d *decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.b) {
		d.fail(ErrTruncated, "need byte %d", d.pos)
		return 0
	}
	v := d.b[d.pos]
	d.pos++
	return v
}

func (d *decoder) u16() uint16 {
	if d.err != nil {
		return 0
	}
	if d.pos+2 > len(d.b) {
		d.fail(ErrTruncated, "need bytes %d-%d", d.pos, d.pos+1)
		return 0
	}
	v := binary.Get[uint16](d.b[d.pos:])
	d.pos += 2
	return v
}

func (d *decoder) arg(args ...string) {
	d.line.Args = append(d.line.Args, args...)
}

func (d *decoder) kw(key, value string) {
	if d.line.KWArgs == nil {
		d.line.KWArgs = map[string]string{}
	}
	d.line.KWArgs[key] = value
}

// ident reads a Pokémon identity: the storage slot (1-6) in bits 0-2 and the player in bit 3.
func (d *decoder) ident() string {
	b := d.u8()
	if d.err != nil {
		return ""
	}
	return d.identity(b)
}

// target is an ident that may be 0 for a move without a target.
func (d *decoder) target() string {
	b := d.u8()
	if d.err != nil || b == 0 {
		return ""
	}
	return d.identity(b)
}

func (d *decoder) identity(b uint8) string {
	player := pkmn.Player(bits.GetValue[uint8, uint8](b, 3, 4))
	slot := int(bits.GetValue[uint8, uint8](b, 0, 3))
	if slot < 1 || slot > pkmn.MaxTeamSize || b>>4 != 0 {
		d.fail(ErrUnknownArg, "identity %#02x", b)
		return ""
	}
	return fmt.Sprintf("%sa: %s", player, d.name(player, slot))
}

func (d *decoder) name(player pkmn.Player, slot int) string {
	team := d.log.info.Side(player).Team
	if slot > len(team) {
		return fmt.Sprintf("Slot %d", slot)
	}
	pi := team[slot-1]
	if pi.Name != "" {
		return pi.Name
	}
	if n, ok := d.log.lookup.SpeciesByID(pi.Species); ok {
		return d.log.lookup.Species(n).Name
	}
	return string(pi.Species)
}

func (d *decoder) player() string {
	b := d.u8()
	if d.err != nil {
		return ""
	}
	if b > 1 {
		d.fail(ErrUnknownArg, "player %d", b)
		return ""
	}
	return d.log.info.Side(pkmn.Player(b)).Name
}

func (d *decoder) move() string {
	n := d.u8()
	if d.err != nil {
		return ""
	}
	m := d.log.lookup.Move(n)
	if m == nil {
		d.fail(ErrUnknownArg, "move %d", n)
		return ""
	}
	return m.Name
}

func (d *decoder) species() string {
	n := d.u8()
	if d.err != nil {
		return ""
	}
	s := d.log.lookup.Species(n)
	if s == nil {
		d.fail(ErrUnknownArg, "species %d", n)
		return ""
	}
	return s.Name
}

func (d *decoder) types() string {
	lo, hi := bits.Nibbles(d.u8())
	if d.err != nil {
		return ""
	}
	l := d.log.lookup
	a, b := l.TypeByNum(data.Type(lo)), l.TypeByNum(data.Type(hi))
	if a == "" || b == "" {
		d.fail(ErrUnknownArg, "types %d/%d", lo, hi)
		return ""
	}
	if a == b {
		return a
	}
	return a + "/" + b
}

func (d *decoder) status() string {
	b := d.u8()
	s := d.log.layout.Status
	switch {
	case bits.GetValue[uint8, uint8](b, s.Sleep.Start, s.Sleep.End) > 0:
		return "slp"
	case bits.GetBit(b, s.Poison):
		return "psn"
	case bits.GetBit(b, s.Burn):
		return "brn"
	case bits.GetBit(b, s.Freeze):
		return "frz"
	case bits.GetBit(b, s.Paralysis):
		return "par"
	}
	return ""
}

// health reads HP, max HP and status and renders them as "hp/max status".
func (d *decoder) health() string {
	hp, maxHP := d.u16(), d.u16()
	status := d.status()
	if hp == 0 {
		return "0 fnt"
	}
	h := fmt.Sprintf("%d/%d", hp, maxHP)
	if status != "" {
		h += " " + status
	}
	return h
}

// reason reads a reason byte and checks it is below n.
func (d *decoder) reason(n uint8) uint8 {
	r := d.u8()
	if d.err == nil && r >= n {
		d.fail(ErrUnknownArg, "reason %d", r)
	}
	return r
}

var (
	cantReasons  = []string{"slp", "frz", "par", "partiallytrapped", "flinch", "Disable", "recharge", "nopp"}
	boostStats   = []string{"atk", "atk", "def", "spe", "spa", "spd", "accuracy", "evasion"}
	failReasons  = []string{"", "slp", "psn", "brn", "frz", "par", "tox", "move: Substitute", ""}
	activateArgs = []string{"Bide", "confusion", "move: Haze", "move: Mist", "move: Struggle", "Substitute", "move: Splash"}
	startArgs    = []string{
		"Bide", "confusion", "confusion", "move: Focus Energy", "move: Leech Seed", "Light Screen",
		"Mist", "Reflect", "Substitute", "typechange", "Disable", "Mimic",
	}
	endArgs = []string{
		"Disable", "confusion", "move: Bide", "Substitute", "Disable", "confusion", "mist",
		"focusenergy", "leechseed", "Toxic", "lightscreen", "reflect",
	}
)

const (
	boostRage       = 0
	failWeak        = 8
	activateSub     = 5
	startConfSilent = 2
	startTypeChange = 9
	startDisable    = 10
	startMimic      = 11
	endSilent       = 4
)

func (d *decoder) decode(kind Kind) ParsedLine {
	d.arg(kind.String())

	switch kind {
	case KindMove:
		src, move, tgt := d.ident(), d.move(), d.target()
		d.arg(src, move, tgt)
		switch d.reason(4) {
		case 1:
			d.kw("still", "")
		case 2:
			d.kw("miss", "")
		case 3:
			d.kw("from", d.move())
		}
	case KindSwitch:
		id, species, level := d.ident(), d.species(), d.u8()
		details := species
		if level != 100 {
			details += ", L" + strconv.Itoa(int(level))
		}
		d.arg(id, details, d.health())
	case KindCant:
		id := d.ident()
		r := d.reason(uint8(len(cantReasons)))
		d.arg(id, cantReasons[r%uint8(len(cantReasons))])
		if r == 5 {
			d.arg(d.move())
		}
	case KindFaint, KindMiss, KindMustRecharge, KindCrit, KindSuperEffective, KindResisted:
		d.arg(d.ident())
	case KindTurn:
		d.arg(strconv.Itoa(int(d.u16())))
	case KindWin:
		d.arg(d.player())
	case KindTie, KindClearAllBoost, KindOHKO:
	case KindFieldActivate:
		d.arg("move: Pay Day")
	case KindDamage:
		d.arg(d.ident(), d.health())
		switch d.reason(6) {
		case 1:
			d.kw("from", "psn")
		case 2:
			d.kw("from", "brn")
		case 3:
			d.kw("from", "confusion")
		case 4:
			d.kw("from", "Leech Seed")
			d.kw("of", d.ident())
		case 5:
			d.kw("from", "Recoil")
			d.kw("of", d.ident())
		}
	case KindHeal:
		d.arg(d.ident(), d.health())
		switch d.reason(3) {
		case 1:
			d.kw("silent", "")
		case 2:
			d.kw("from", "drain")
			d.kw("of", d.ident())
		}
	case KindStatus:
		d.arg(d.ident(), d.status())
		switch d.reason(3) {
		case 1:
			d.kw("silent", "")
		case 2:
			d.kw("from", "move: "+d.move())
		}
	case KindCureStatus:
		d.arg(d.ident(), d.status())
		if d.reason(2) == 0 {
			d.kw("msg", "")
		} else {
			d.kw("silent", "")
		}
	case KindBoost:
		id := d.ident()
		r := d.reason(uint8(len(boostStats)))
		n := int(d.u8()) - 6
		if n < 0 {
			d.line.Args[0] = "-unboost"
			n = -n
		}
		d.arg(id, boostStats[r%uint8(len(boostStats))], strconv.Itoa(n))
		if r == boostRage {
			d.kw("from", "Rage")
		}
	case KindFail:
		id := d.ident()
		r := d.reason(uint8(len(failReasons)))
		d.arg(id)
		if s := failReasons[r%uint8(len(failReasons))]; s != "" {
			d.arg(s)
		}
		if r == failWeak {
			d.kw("weak", "")
		}
	case KindHitCount:
		d.arg(d.ident(), strconv.Itoa(int(d.u8())))
	case KindPrepare:
		d.arg(d.ident(), d.move())
	case KindActivate:
		id := d.ident()
		r := d.reason(uint8(len(activateArgs)))
		d.arg(id, activateArgs[r%uint8(len(activateArgs))])
		if r == activateSub {
			d.kw("damage", "")
		}
	case KindStart:
		id := d.ident()
		r := d.reason(uint8(len(startArgs)))
		d.arg(id, startArgs[r%uint8(len(startArgs))])
		switch r {
		case startConfSilent:
			d.kw("silent", "")
		case startTypeChange:
			d.arg(d.types())
			d.kw("from", "move: Conversion")
			d.kw("of", d.ident())
		case startDisable, startMimic:
			d.arg(d.move())
		}
	case KindEnd:
		id := d.ident()
		r := d.reason(uint8(len(endArgs)))
		d.arg(id, endArgs[r%uint8(len(endArgs))])
		if r >= endSilent {
			d.kw("silent", "")
		}
	case KindImmune:
		d.arg(d.ident())
		if d.reason(2) == 1 {
			d.kw("ohko", "")
		}
	case KindTransform:
		d.arg(d.ident(), d.ident())
	default:
		d.fail(ErrUnknownArg, "record kind %d", uint8(kind))
	}
	return d.line
}
