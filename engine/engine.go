/*
Package engine drives compiled battle engines over host Battle buffers.

An Engine holds one Binding per generation. Each Binding owns the memory its engine works on,
so every call copies the host buffer in, runs the engine and copies the result back out.
Calls on the same Binding are serialized, calls on different generations are not:

	e, err := engine.New(ctx, cfg, binding)
	if err != nil {
		// Do something
	}
	r, err := e.Update(ctx, b, pkmn.Move(1), pkmn.Move(1), logBuf)
	if err != nil {
		// Do something
	}
	for !r.Done() {
		...
	}

How a Binding reaches its engine (a shared library, a WASM instance, a subprocess) is up to
the Binding.
*/
package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/bearlytools/pkmn"
	"github.com/bearlytools/pkmn/battle"
	"github.com/bearlytools/pkmn/data"
	"github.com/gostdlib/base/concurrency/sync"
	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/telemetry/otel/trace/span"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNotConfigured is returned when no Binding was registered for a generation, or the
	// registered one was built with different flags.
	ErrNotConfigured = errors.New("engine not configured")
	// ErrEngineDesync is returned when an engine in Showdown mode reports an error result,
	// which means it no longer agrees with Pokémon Showdown.
	ErrEngineDesync = errors.New("engine desync")
)

// Binding is one generation's compiled engine. Implementations do not need to be safe for
// concurrent use, the Engine serializes calls.
type Binding interface {
	// Gen is the generation the engine simulates.
	Gen() pkmn.Gen
	// Showdown reports if the engine was built in Showdown compatibility mode.
	Showdown() bool
	// Log reports if the engine was built with protocol logging.
	Log() bool
	// ChoicesSize is the most choices Choices can write.
	ChoicesSize() int
	// LogsSize is the most log bytes a single Update can write.
	LogsSize() int
	// Update advances battle by one turn with the encoded choices, writing log records into
	// log when it is not nil, and returns the encoded Result.
	Update(battle []byte, c1, c2 byte, log []byte) byte
	// Choices writes the encoded choices available to player for a request into out and
	// returns how many were written.
	Choices(battle []byte, player pkmn.Player, request byte, out []byte) int
}

// slot is a registered Binding and the memory its engine works on.
type slot struct {
	mu      sync.Mutex
	binding Binding
	scratch []byte
	// logs is nil unless logging is configured.
	logs    []byte
	choices *sync.Pool[*[]byte]
}

// Engine dispatches engine calls to the Binding of a Battle's generation.
type Engine struct {
	cfg   Config
	slots map[pkmn.Gen]*slot

	updates  metric.Int64Counter
	results  metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates an Engine from bindings. At most one Binding per generation is allowed and each
// must have been built with the flags in cfg.
func New(ctx context.Context, cfg Config, bindings ...Binding) (*Engine, error) {
	e := &Engine{cfg: cfg, slots: map[pkmn.Gen]*slot{}}

	for _, b := range bindings {
		gen := b.Gen()
		if _, ok := e.slots[gen]; ok {
			return nil, errors.Errorf("engine.New: more than one Binding for %s", gen)
		}
		if b.Showdown() != cfg.Showdown || b.Log() != cfg.Log {
			return nil, errors.Wrapf(
				ErrNotConfigured,
				"%s engine built with showdown=%t log=%t, configured with showdown=%t log=%t",
				gen, b.Showdown(), b.Log(), cfg.Showdown, cfg.Log,
			)
		}
		size, err := battle.Size(gen)
		if err != nil {
			return nil, err
		}

		var logs []byte
		if cfg.Log {
			logs = make([]byte, b.LogsSize())
		}

		choicesSize := b.ChoicesSize()
		e.slots[gen] = &slot{
			binding: b,
			scratch: make([]byte, size),
			logs:    logs,
			choices: sync.NewPool[*[]byte](
				ctx,
				fmt.Sprintf("engine.choices.gen%d", gen),
				func() *[]byte {
					out := make([]byte, choicesSize)
					return &out
				},
			),
		}
		log.Println("engine registered: ", gen)
	}

	if cfg.EnableMetrics {
		if err := e.initMetrics(ctx); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) initMetrics(ctx context.Context) error {
	var meter metric.Meter
	if e.cfg.MeterProvider != nil {
		meter = e.cfg.MeterProvider.Meter("pkmn-engine")
	} else {
		meter = context.Meter(ctx)
	}

	var err error
	e.updates, err = meter.Int64Counter(
		"pkmn.engine.updates",
		metric.WithDescription("Total number of engine updates"),
	)
	if err != nil {
		return err
	}

	e.results, err = meter.Int64Counter(
		"pkmn.engine.results",
		metric.WithDescription("Total number of engine results by type"),
	)
	if err != nil {
		return err
	}

	e.duration, err = meter.Float64Histogram(
		"pkmn.engine.update.duration",
		metric.WithDescription("Duration of engine updates"),
		metric.WithUnit("us"),
	)
	return err
}

// Supports reports if a Binding for gen is registered and built with showdown and log.
func (e *Engine) Supports(gen pkmn.Gen, showdown, logs bool) bool {
	s, ok := e.slots[gen]
	return ok && s.binding.Showdown() == showdown && s.binding.Log() == logs
}

// Check returns ErrNotConfigured unless a Binding for gen is registered.
func (e *Engine) Check(gen pkmn.Gen) error {
	if _, ok := e.slots[gen]; !ok {
		return errors.Wrapf(ErrNotConfigured, "no engine for %s, have %v", gen, e.gens())
	}
	return nil
}

// LogsSize is the size of the log buffer Update needs for gen, 0 when logging is off.
func (e *Engine) LogsSize(gen pkmn.Gen) (int, error) {
	s, err := e.slot(gen)
	if err != nil {
		return 0, err
	}
	if !e.cfg.Log {
		return 0, nil
	}
	return s.binding.LogsSize(), nil
}

// Update runs one turn of b with the choices c1 and c2. b's buffer holds the new state when
// Update returns. When logging is on, logs must hold at least LogsSize bytes and receives a
// copy of the turn's records, otherwise it may be nil. The Binding never sees b's buffer or
// logs, only the slot's own memory.
func (e *Engine) Update(ctx context.Context, b battle.Battle, c1, c2 pkmn.Choice, logs []byte) (pkmn.Result, error) {
	gen := b.Gen()
	var sp span.Span
	if e.cfg.EnableTracing {
		ctx, sp = span.New(
			ctx,
			span.WithName("pkmn.engine.Update"),
			span.WithSpanStartOption(trace.WithSpanKind(trace.SpanKindInternal)),
		)
		defer sp.End()
		sp.Span.SetAttributes(
			attribute.Int("pkmn.gen", int(gen)),
			attribute.String("pkmn.c1", c1.String()),
			attribute.String("pkmn.c2", c2.String()),
		)
	}

	s, err := e.slot(gen)
	if err != nil {
		return pkmn.Result{}, err
	}
	if err := s.check(b); err != nil {
		return pkmn.Result{}, err
	}
	if e.cfg.Log {
		if len(logs) < s.binding.LogsSize() {
			return pkmn.Result{}, errors.Errorf("engine.Update: log buffer is %d bytes, need %d", len(logs), s.binding.LogsSize())
		}
	} else {
		logs = nil
	}

	start := time.Now()
	s.mu.Lock()
	copy(s.scratch, b.Bytes())
	clear(s.logs)
	raw := s.binding.Update(s.scratch, c1.Encode(), c2.Encode(), s.logs)
	copy(b.Bytes(), s.scratch)
	copy(logs, s.logs)
	s.mu.Unlock()

	r := pkmn.DecodeResult(raw)
	if e.cfg.EnableMetrics {
		genAttr := attribute.Int("pkmn_gen", int(gen))
		e.updates.Add(ctx, 1, metric.WithAttributes(genAttr))
		e.results.Add(ctx, 1, metric.WithAttributes(genAttr, attribute.String("pkmn_result", r.Type.String())))
		e.duration.Record(ctx, float64(time.Since(start).Microseconds()), metric.WithAttributes(genAttr))
	}
	if e.cfg.EnableTracing && r.Done() {
		sp.Span.AddEvent("pkmn.battle.end", trace.WithAttributes(attribute.String("pkmn.result", r.Type.String())))
	}

	if !r.Type.Valid() {
		return r, errors.Errorf("engine.Update: %s engine returned invalid result %#02x", gen, raw)
	}
	if e.cfg.Showdown && r.Type == pkmn.ResultError {
		return r, errors.Wrapf(ErrEngineDesync, "%s update with %s and %s", gen, c1, c2)
	}
	return r, nil
}

// Choices returns the choices available to player when the last Result requested request.
func (e *Engine) Choices(ctx context.Context, b battle.Battle, player pkmn.Player, request pkmn.ChoiceType) ([]pkmn.Choice, error) {
	var out []pkmn.Choice
	err := e.choices(ctx, b, player, request, func(raw []byte) error {
		out = make([]pkmn.Choice, 0, len(raw))
		for _, c := range raw {
			out = append(out, pkmn.DecodeChoice(c))
		}
		return nil
	})
	return out, err
}

// Choose returns one of the choices available to player. pick is called with the number of
// choices and returns the index of the one to use. Only the picked choice is decoded.
func (e *Engine) Choose(ctx context.Context, b battle.Battle, player pkmn.Player, request pkmn.ChoiceType, pick func(n int) int) (pkmn.Choice, error) {
	var c pkmn.Choice
	err := e.choices(ctx, b, player, request, func(raw []byte) error {
		if len(raw) == 0 {
			return errors.Errorf("engine.Choose: no choices for %s", player)
		}
		i := pick(len(raw))
		if i < 0 || i >= len(raw) {
			return errors.Errorf("engine.Choose: picked choice %d of %d", i, len(raw))
		}
		c = pkmn.DecodeChoice(raw[i])
		return nil
	})
	return c, err
}

func (e *Engine) choices(ctx context.Context, b battle.Battle, player pkmn.Player, request pkmn.ChoiceType, use func(raw []byte) error) error {
	gen := b.Gen()
	if e.cfg.EnableTracing {
		var sp span.Span
		ctx, sp = span.New(
			ctx,
			span.WithName("pkmn.engine.Choices"),
			span.WithSpanStartOption(trace.WithSpanKind(trace.SpanKindInternal)),
		)
		defer sp.End()
		sp.Span.SetAttributes(
			attribute.Int("pkmn.gen", int(gen)),
			attribute.String("pkmn.player", player.String()),
			attribute.String("pkmn.request", request.String()),
		)
	}

	s, err := e.slot(gen)
	if err != nil {
		return err
	}
	if err := s.check(b); err != nil {
		return err
	}

	out := s.choices.Get(ctx)
	defer s.choices.Put(ctx, out)

	s.mu.Lock()
	copy(s.scratch, b.Bytes())
	n := s.binding.Choices(s.scratch, player, byte(request), *out)
	s.mu.Unlock()

	if n < 0 || n > len(*out) {
		return errors.Errorf("engine: %s engine wrote %d choices into %d bytes", gen, n, len(*out))
	}
	return use((*out)[:n])
}

func (e *Engine) slot(gen pkmn.Gen) (*slot, error) {
	if err := e.Check(gen); err != nil {
		return nil, err
	}
	return e.slots[gen], nil
}

func (e *Engine) gens() []pkmn.Gen {
	var out []pkmn.Gen
	for _, g := range data.Supported {
		if _, ok := e.slots[g]; ok {
			out = append(out, g)
		}
	}
	return out
}

func (s *slot) check(b battle.Battle) error {
	if len(b.Bytes()) != len(s.scratch) {
		return errors.Errorf("engine: battle is %d bytes, %s engine needs %d", len(b.Bytes()), b.Gen(), len(s.scratch))
	}
	return nil
}
