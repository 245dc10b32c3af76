package pkmn

import (
	"context"
	"strconv"
	"strings"

	"github.com/johnsiilver/halfpike"
	"github.com/pkg/errors"
)

// ErrInvalidTeam is returned when an exported team cannot be parsed.
var ErrInvalidTeam = errors.New("invalid team")

// MaxTeamSize is the number of Pokémon a side can hold.
const MaxTeamSize = 6

// MaxMoves is the number of move slots a Pokémon has.
const MaxMoves = 4

/*
ParseTeam reads a team in the Pokémon Showdown export format:

	Fishy (Starmie)
	Level: 50
	DVs: 14 Atk / 12 Spe
	EVs: 252 HP / 252 Spc
	- Psychic
	- Thunderbolt

Each set starts with a "Nickname (Species)" or "Species" line and ends at the next one.
IVs are converted to DVs by halving. Held items are rejected, Gen 1 has none.
*/
func ParseTeam(ctx context.Context, text string) ([]Set, error) {
	tp := &teamParser{}
	if err := halfpike.Parse(ctx, text, tp); err != nil {
		return nil, errors.Wrapf(ErrInvalidTeam, "%s", err)
	}
	return tp.sets, nil
}

type teamParser struct {
	sets []Set
}

// Validate implements halfpike.Validator.
func (t *teamParser) Validate() error {
	if len(t.sets) == 0 {
		return errors.New("no Pokémon found")
	}
	if len(t.sets) > MaxTeamSize {
		return errors.Errorf("team has %d Pokémon, max is %d", len(t.sets), MaxTeamSize)
	}
	for _, s := range t.sets {
		if len(s.Moves) == 0 {
			return errors.Errorf("%s has no moves", s.Species)
		}
		if len(s.Moves) > MaxMoves {
			return errors.Errorf("%s has %d moves, max is %d", s.Species, len(s.Moves), MaxMoves)
		}
	}
	return nil
}

// Start implements halfpike.Validator.
func (t *teamParser) Start(ctx context.Context, p *halfpike.Parser) halfpike.ParseFn {
	return t.parseLine
}

func (t *teamParser) parseLine(ctx context.Context, p *halfpike.Parser) halfpike.ParseFn {
	l := p.Next()
	raw := strings.TrimSpace(l.Raw)

	var err error
	switch {
	case raw == "" || strings.HasPrefix(raw, "//"):
	case strings.HasPrefix(raw, "-"):
		err = t.addMove(strings.TrimSpace(strings.TrimPrefix(raw, "-")))
	case hasKey(raw, "Level"):
		err = t.setLevel(value(raw))
	case hasKey(raw, "DVs"):
		err = t.setStats(value(raw), false, dvs)
	case hasKey(raw, "IVs"):
		err = t.setStats(value(raw), true, dvs)
	case hasKey(raw, "EVs"):
		err = t.setStats(value(raw), false, evs)
	case hasKey(raw, "Ability"), hasKey(raw, "Shiny"), hasKey(raw, "Happiness"), hasKey(raw, "Gender"):
		// Not represented in Gen 1.
	default:
		err = t.addSet(raw)
	}
	if err != nil {
		return p.Errorf("[Line %d] error: %s", l.LineNum, err)
	}

	if p.EOF(l) {
		return nil
	}
	return t.parseLine
}

func (t *teamParser) current() (*Set, error) {
	if len(t.sets) == 0 {
		return nil, errors.New("found set details before a species line")
	}
	return &t.sets[len(t.sets)-1], nil
}

func (t *teamParser) addSet(header string) error {
	if strings.Contains(header, "@") {
		return errors.Errorf("held items are not supported: %q", header)
	}
	if strings.HasSuffix(header, " (M)") || strings.HasSuffix(header, " (F)") {
		header = strings.TrimSpace(header[:len(header)-4])
	}

	s := Set{Species: header}
	if i := strings.LastIndex(header, " ("); i > 0 && strings.HasSuffix(header, ")") {
		s.Name = strings.TrimSpace(header[:i])
		s.Species = strings.TrimSpace(header[i+2 : len(header)-1])
	}
	if s.Species == "" {
		return errors.Errorf("no species in %q", header)
	}
	t.sets = append(t.sets, s)
	return nil
}

func (t *teamParser) addMove(move string) error {
	s, err := t.current()
	if err != nil {
		return err
	}
	if move == "" {
		return errors.New("empty move")
	}
	s.Moves = append(s.Moves, move)
	return nil
}

func (t *teamParser) setLevel(v string) error {
	s, err := t.current()
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 100 {
		return errors.Errorf("level %q must be between 1 and 100", v)
	}
	s.Level = uint8(n)
	return nil
}

func (t *teamParser) setStats(v string, ivs bool, get func(s *Set) *Stats) error {
	s, err := t.current()
	if err != nil {
		return err
	}
	stats := get(s)
	for _, part := range strings.Split(v, "/") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return errors.Errorf("bad stat %q, want '<value> <stat>'", part)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return errors.Errorf("bad stat value %q", fields[0])
		}
		if ivs {
			n /= 2
		}
		if err := setStat(stats, fields[1], n); err != nil {
			return err
		}
	}
	return nil
}

func setStat(stats *Stats, name string, n int) error {
	if n > 0xFFFF {
		return errors.Errorf("stat value %d too large", n)
	}
	v := uint16(n)
	switch strings.ToLower(name) {
	case "hp":
		stats.HP = v
	case "atk":
		stats.Atk = v
	case "def":
		stats.Def = v
	case "spe":
		stats.Spe = v
	case "spc", "spa", "spd":
		stats.Spc = v
	default:
		return errors.Errorf("unknown stat %q", name)
	}
	return nil
}

func dvs(s *Set) *Stats {
	if s.DVs == nil {
		d := MaxDVs
		s.DVs = &d
	}
	return s.DVs
}

func evs(s *Set) *Stats {
	if s.EVs == nil {
		e := MaxEVs
		s.EVs = &e
	}
	return s.EVs
}

func hasKey(line, key string) bool {
	return strings.HasPrefix(line, key+":")
}

func value(line string) string {
	_, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(v)
}
