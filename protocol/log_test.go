package protocol

import (
	"context"
	"errors"
	"testing"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/data"
	"github.com/kylelemons/godebug/pretty"
)

func testInfo() Info {
	return Info{
		P1: SideInfo{Name: "Red", Team: []PokemonInfo{{Name: "Star", Species: "starmie"}}},
		P2: SideInfo{Name: "Blue", Team: []PokemonInfo{{Species: "snorlax"}, {Species: "pikachu"}}},
	}
}

func testLog(t *testing.T) *Log {
	t.Helper()
	l, err := New(1, data.MustGet(1), testInfo())
	if err != nil {
		t.Fatalf("New(): got err == %s, want err == nil", err)
	}
	return l
}

var (
	binaryLog = []byte{
		0x02, 0x01, 121, 100, 0x43, 0x01, 0x43, 0x01, 0x00,
		0x02, 0x09, 143, 50, 0xC8, 0x00, 0x04, 0x01, 0x40,
		0x05, 0x01, 0x00,
		0x01, 0x01, 57, 0x09, 0x00,
		0x18, 0x09,
		0x08, 0x09, 0x64, 0x00, 0x04, 0x01, 0x40, 0x00,
		0x01, 0x09, 34, 0x01, 0x02,
		0x0F, 0x09,
		0x0C, 0x01, 0x04, 0x08,
		0x0C, 0x09, 0x01, 0x05,
		0x15, 0x09, 0x09, 0x99, 0x01,
		0x03, 0x0A, 0x05, 85,
		0x16, 0x01, 0x05,
		0x08, 0x01, 0x00, 0x00, 0x43, 0x01, 0x00, 0x04, 0x09,
		0x04, 0x01,
		0x06, 0x01,
		0x00,
	}

	textLog = `|
|t:|1700000000
|switch|p1a: Star|Starmie|323/323
|switch|p2a: Snorlax|Snorlax, L50|200/260 par
|turn|1
|
|t:|1700000001
|move|p1a: Star|Surf|p2a: Snorlax
|-crit|p2a: Snorlax
|-damage|p2a: Snorlax|100/260 par
|move|p2a: Snorlax|Body Slam|p1a: Star|[miss]
|-miss|p2a: Snorlax
|-boost|p1a: Star|spa|2
|-unboost|p2a: Snorlax|atk|1
|-start|p2a: Snorlax|typechange|Water|[from] move: Conversion|[of] p1a: Star
|cant|p2a: Pikachu|Disable|Thunderbolt
|-end|p1a: Star|confusion|[silent]
|upkeep
|-damage|p1a: Star|0 fnt|[from] Leech Seed|[of] p2a: Snorlax
|faint|p1a: Star
|win|Blue
`
)

func TestDecodeMatchesText(t *testing.T) {
	want, err := ParseText(context.Background(), textLog)
	if err != nil {
		t.Fatalf("TestDecodeMatchesText(ParseText): got err == %s, want err == nil", err)
	}

	buf := append(append([]byte{}, binaryLog...), 0xFF, 0xFF)
	s := testLog(t).Parse(buf)
	var got []ParsedLine
	for line := range s.All() {
		got = append(got, line)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("TestDecodeMatchesText: Err() == %s, want nil", err)
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestDecodeMatchesText: -want/+got:\n%s", diff)
	}
	if s.N() != len(binaryLog) {
		t.Errorf("TestDecodeMatchesText: N() == %d, want %d", s.N(), len(binaryLog))
	}
	if FormatAll(got) != FormatAll(want) {
		t.Errorf("TestDecodeMatchesText: FormatAll() differs:\n%s\n%s", FormatAll(got), FormatAll(want))
	}
}

func TestParseAgain(t *testing.T) {
	l := testLog(t)

	count := func(s *Stream) int {
		n := 0
		for range s.All() {
			n++
		}
		return n
	}

	s := l.Parse(binaryLog)
	first := count(s)
	if first != 16 {
		t.Fatalf("TestParseAgain: decoded %d records, want 16", first)
	}
	if n := count(s); n != 0 {
		t.Errorf("TestParseAgain: a consumed Stream yielded %d more records", n)
	}
	if n := count(l.Parse(binaryLog)); n != first {
		t.Errorf("TestParseAgain: a new Parse yielded %d records, want %d", n, first)
	}
}

func TestStopEarly(t *testing.T) {
	s := testLog(t).Parse(binaryLog)
	for range s.All() {
		break
	}
	if s.N() != 9 {
		t.Errorf("TestStopEarly: N() == %d, want 9", s.N())
	}

	var rest int
	for range s.All() {
		rest++
	}
	if rest != 15 {
		t.Errorf("TestStopEarly: resumed iteration yielded %d records, want 15", rest)
	}
}

func TestNoTerminator(t *testing.T) {
	buf := []byte{0x05, 0x02, 0x00, 0x07}
	s := testLog(t).Parse(buf)

	var got []ParsedLine
	for line := range s.All() {
		got = append(got, line)
	}
	want := []ParsedLine{{Args: []string{"turn", "2"}}, {Args: []string{"tie"}}}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestNoTerminator: -want/+got:\n%s", diff)
	}
	if s.N() != len(buf) || s.Err() != nil {
		t.Errorf("TestNoTerminator: N() == %d, Err() == %v, want %d, nil", s.N(), s.Err(), len(buf))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		desc  string
		buf   []byte
		is    error
		lines int
		n     int
	}{
		{desc: "truncated turn", buf: []byte{0x07, 0x05, 0x01}, is: ErrTruncated, lines: 1, n: 1},
		{desc: "truncated switch", buf: []byte{0x02, 0x01, 121, 100, 0x43}, is: ErrTruncated},
		{desc: "unknown kind", buf: []byte{0x1D, 0x01}, is: ErrUnknownArg},
		{desc: "unknown move", buf: []byte{0x11, 0x01, 200}, is: ErrUnknownArg},
		{desc: "unknown species", buf: []byte{0x02, 0x01, 152, 100, 1, 0, 1, 0, 0}, is: ErrUnknownArg},
		{desc: "bad identity", buf: []byte{0x04, 0x07}, is: ErrUnknownArg},
		{desc: "bad reason", buf: []byte{0x03, 0x01, 0x08}, is: ErrUnknownArg},
		{desc: "bad player", buf: []byte{0x06, 0x02}, is: ErrUnknownArg},
	}

	for _, test := range tests {
		s := testLog(t).Parse(test.buf)
		lines := 0
		for range s.All() {
			lines++
		}
		if !errors.Is(s.Err(), test.is) {
			t.Errorf("TestDecodeErrors(%s): Err() == %v, want %v", test.desc, s.Err(), test.is)
		}
		if lines != test.lines {
			t.Errorf("TestDecodeErrors(%s): got %d lines, want %d", test.desc, lines, test.lines)
		}
		if s.N() != test.n {
			t.Errorf("TestDecodeErrors(%s): N() == %d, want %d", test.desc, s.N(), test.n)
		}
	}
}

func TestRecords(t *testing.T) {
	tests := []struct {
		desc string
		buf  []byte
		want string
	}{
		{"move from", []byte{0x01, 0x01, 85, 0x09, 0x03, 94}, "|move|p1a: Star|Thunderbolt|p2a: Snorlax|[from] Psychic"},
		{"move no target", []byte{0x01, 0x01, 94, 0x00, 0x01}, "|move|p1a: Star|Psychic||[still]"},
		{"heal drain", []byte{0x09, 0x01, 0x10, 0x00, 0x43, 0x01, 0x00, 0x02, 0x09}, "|-heal|p1a: Star|16/323|[from] drain|[of] p2a: Snorlax"},
		{"status from move", []byte{0x0A, 0x09, 0x40, 0x02, 85}, "|-status|p2a: Snorlax|par|[from] move: Thunderbolt"},
		{"cure status", []byte{0x0B, 0x01, 0x03, 0x00}, "|-curestatus|p1a: Star|slp|[msg]"},
		{"rage", []byte{0x0C, 0x01, 0x00, 0x07}, "|-boost|p1a: Star|atk|1|[from] Rage"},
		{"fail weak", []byte{0x0E, 0x09, 0x08}, "|-fail|p2a: Snorlax|[weak]"},
		{"fail substitute", []byte{0x0E, 0x09, 0x07}, "|-fail|p2a: Snorlax|move: Substitute"},
		{"hit count", []byte{0x10, 0x09, 0x03}, "|-hitcount|p2a: Snorlax|3"},
		{"prepare", []byte{0x11, 0x01, 94}, "|-prepare|p1a: Star|Psychic"},
		{"activate substitute", []byte{0x13, 0x01, 0x05}, "|-activate|p1a: Star|Substitute|[damage]"},
		{"field activate", []byte{0x14}, "|-fieldactivate|move: Pay Day"},
		{"start mimic", []byte{0x15, 0x01, 0x0B, 85}, "|-start|p1a: Star|Mimic|Thunderbolt"},
		{"immune ohko", []byte{0x1B, 0x09, 0x01}, "|-immune|p2a: Snorlax|[ohko]"},
		{"transform", []byte{0x1C, 0x09, 0x01}, "|-transform|p2a: Snorlax|p1a: Star"},
		{"unnamed slot", []byte{0x04, 0x0B}, "|faint|p2a: Slot 3"},
	}

	for _, test := range tests {
		s := testLog(t).Parse(test.buf)
		var got []string
		for line := range s.All() {
			got = append(got, Format(line))
		}
		if s.Err() != nil {
			t.Errorf("TestRecords(%s): Err() == %s", test.desc, s.Err())
			continue
		}
		if diff := pretty.Compare([]string{test.want}, got); diff != "" {
			t.Errorf("TestRecords(%s): -want/+got:\n%s", test.desc, diff)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(2, data.MustGet(1), testInfo()); !errors.Is(err, data.ErrUnsupportedGen) {
		t.Errorf("TestNewErrors(gen 2): got err == %v, want ErrUnsupportedGen", err)
	}
	if _, err := New(1, nil, testInfo()); err == nil {
		t.Errorf("TestNewErrors(nil lookup): got err == nil, want err != nil")
	}
}

func TestInfoFromOptions(t *testing.T) {
	opts := pkmn.Options{
		P1: pkmn.SideOptions{Name: "Red", Team: []pkmn.Set{{Name: "Star", Species: "Starmie"}}},
		P2: pkmn.SideOptions{Name: "Blue", Team: []pkmn.Set{{Species: "Snorlax"}, {Species: "Pikachu"}}},
	}
	if diff := pretty.Compare(testInfo(), InfoFromOptions(opts)); diff != "" {
		t.Errorf("TestInfoFromOptions: -want/+got:\n%s", diff)
	}
}
