package protocol

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/johnsiilver/halfpike"
	"github.com/pkg/errors"
)

// skipped are text protocol line types the binary log has no record for.
var skipped = map[string]bool{
	"t:": true, "gametype": true, "player": true, "teamsize": true, "gen": true, "tier": true,
	"rule": true, "done": true, "start": true, "upkeep": true, "debug": true,
}

// ParseText parses a chunk of the Pokémon Showdown text protocol into the ParsedLines the
// binary log decodes to. Lines that are not protocol lines, blank lines and line types the
// engine does not log are skipped.
func ParseText(ctx context.Context, text string) ([]ParsedLine, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	tp := &textParser{}
	if err := halfpike.Parse(ctx, text, tp); err != nil {
		return nil, errors.Wrap(err, "protocol.ParseText")
	}
	return tp.lines, nil
}

type textParser struct {
	lines []ParsedLine
}

// Validate implements halfpike.Validator.
func (t *textParser) Validate() error {
	return nil
}

// Start implements halfpike.Validator.
func (t *textParser) Start(ctx context.Context, p *halfpike.Parser) halfpike.ParseFn {
	return t.parseLine
}

func (t *textParser) parseLine(ctx context.Context, p *halfpike.Parser) halfpike.ParseFn {
	l := p.Next()
	if line, ok := parseLine(strings.TrimSpace(l.Raw)); ok {
		t.lines = append(t.lines, line)
	}
	if p.EOF(l) {
		return nil
	}
	return t.parseLine
}

func parseLine(raw string) (ParsedLine, bool) {
	if !strings.HasPrefix(raw, "|") {
		return ParsedLine{}, false
	}
	parts := strings.Split(raw[1:], "|")
	if parts[0] == "" || skipped[parts[0]] {
		return ParsedLine{}, false
	}

	line := ParsedLine{Args: []string{parts[0]}}
	for _, part := range parts[1:] {
		if k, v, ok := kwArg(part); ok {
			if line.KWArgs == nil {
				line.KWArgs = map[string]string{}
			}
			line.KWArgs[k] = v
			continue
		}
		line.Args = append(line.Args, part)
	}
	return line, true
}

// kwArg splits "[key] value" into its key and value.
func kwArg(s string) (key, value string, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", "", false
	}
	end := strings.Index(s, "]")
	if end < 2 {
		return "", "", false
	}
	return s[1:end], strings.TrimSpace(s[end+1:]), true
}

// Format renders line in the text protocol. Keyword arguments are written after the
// positional ones, "from" and "of" first and the rest in key order.
func Format(line ParsedLine) string {
	var sb strings.Builder
	for _, a := range line.Args {
		sb.WriteByte('|')
		sb.WriteString(a)
	}
	for _, k := range kwOrder(line.KWArgs) {
		sb.WriteString("|[")
		sb.WriteString(k)
		sb.WriteByte(']')
		if v := line.KWArgs[k]; v != "" {
			sb.WriteByte(' ')
			sb.WriteString(v)
		}
	}
	return sb.String()
}

// FormatAll renders lines one per line.
func FormatAll(lines []ParsedLine) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, Format(l))
	}
	return strings.Join(out, "\n")
}

func kwOrder(kw map[string]string) []string {
	keys := slices.Sorted(maps.Keys(kw))
	rank := func(k string) int {
		switch k {
		case "from":
			return 0
		case "of":
			return 1
		}
		return 2
	}
	slices.SortStableFunc(keys, func(a, b string) int { return rank(a) - rank(b) })
	return keys
}
