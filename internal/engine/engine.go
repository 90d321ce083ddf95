package engine

import (
	"log/slog"
	"maps"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"

	"github.com/roach88/matapex/internal/dom"
	"github.com/roach88/matapex/internal/events"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/rules"
)

// Timer names.
const (
	TimerPipeline   = "matapex.pipeline"
	TimerRulePrefix = "matapex.rules."
)

// Status is the outcome of one rule in a run.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome records what happened to one rule.
type Outcome struct {
	Rule   string `json:"rule"`
	Status Status `json:"status"`
	Guard  string `json:"guard,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Pipeline drives one run of the rule set over one document.
//
// INVARIANTS:
//   - rules order NEVER changes after construction
//   - Run transitions NotRun to Run exactly once
//   - a failing rule never prevents later rules from running
type Pipeline struct {
	host     host.Host
	rules    rules.Set
	ids      dom.IDGenerator
	prefix   string
	messages map[string]string
	logger   *slog.Logger
	events   *events.Registry
	timer    *Timer

	ran      atomic.Bool
	outcomes []Outcome
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRules replaces the rule set. The set is copied.
//
// Default: rules.Default()
func WithRules(set rules.Set) Option {
	return func(p *Pipeline) {
		p.rules = append(rules.Set(nil), set...)
	}
}

// WithIDGenerator sets the generator for element ids.
//
// Default: dom.UUIDGenerator. Use testutil.SequenceGenerator for
// deterministic output.
func WithIDGenerator(gen dom.IDGenerator) Option {
	return func(p *Pipeline) {
		p.ids = gen
	}
}

// WithItemPrefix scopes the form-control rules to a selector.
func WithItemPrefix(prefix string) Option {
	return func(p *Pipeline) {
		p.prefix = prefix
	}
}

// WithMessages adds catalog entries, registered after the defaults.
func WithMessages(messages map[string]string) Option {
	return func(p *Pipeline) {
		p.messages = maps.Clone(messages)
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock sets the time source used for debug timing.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.timer.now = now
	}
}

// New creates a pipeline bound to host h.
func New(h host.Host, opts ...Option) *Pipeline {
	p := &Pipeline{
		host:   h,
		rules:  rules.Default(),
		ids:    dom.UUIDGenerator{},
		logger: slog.Default(),
		events: events.NewRegistry(),
	}
	p.timer = NewTimer(h, p.logger)

	for _, opt := range opts {
		opt(p)
	}
	p.timer.logger = p.logger

	return p
}

// Events returns the registry the rules bind their handlers to.
func (p *Pipeline) Events() *events.Registry {
	return p.events
}

// Rules returns a copy of the rule set, in evaluation order.
func (p *Pipeline) Rules() rules.Set {
	return append(rules.Set(nil), p.rules...)
}

// HasRun reports whether Run has been called.
func (p *Pipeline) HasRun() bool {
	return p.ran.Load()
}

// Outcomes returns the per-rule outcomes of the run, in evaluation order.
func (p *Pipeline) Outcomes() []Outcome {
	return append([]Outcome(nil), p.outcomes...)
}

// Run applies every rule to doc, in order.
//
// Failing rules are recovered and reported together as RuleErrors joined with
// multierr; the document still carries the edits of every other rule.
// Calling Run again returns ErrAlreadyRun.
func (p *Pipeline) Run(doc *goquery.Document) error {
	if !p.ran.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	p.timer.Time(TimerPipeline)
	defer p.timer.TimeEnd(TimerPipeline)

	host.RegisterMessages(p.host)
	if len(p.messages) > 0 {
		p.host.AddMessages(p.messages)
	}

	ctx := &rules.Context{
		Doc:        doc,
		Host:       p.host,
		IDs:        p.ids,
		Events:     p.events,
		ItemPrefix: p.prefix,
		Logger:     p.logger,
	}

	var errs error
	for i, r := range p.rules {
		outcome := Outcome{Rule: r.Name, Guard: r.Guard}
		if r.Guard != "" && !dom.Exists(doc, r.Guard) {
			p.logger.Debug("rule skipped", "rule", r.Name, "guard", r.Guard)
			outcome.Status = StatusSkipped
			p.outcomes = append(p.outcomes, outcome)
			continue
		}

		if err := p.apply(ctx, i+1, r); err != nil {
			p.logger.Error("rule failed", "rule", r.Name, "step", i+1, "error", err.Err)
			outcome.Status = StatusFailed
			outcome.Error = err.Err.Error()
			errs = multierr.Append(errs, err)
		} else {
			p.logger.Debug("rule applied", "rule", r.Name, "step", i+1)
			outcome.Status = StatusApplied
		}
		p.outcomes = append(p.outcomes, outcome)
	}

	if n := dom.NormalizeClasses(doc.Selection); n > 0 {
		p.logger.Debug("class attributes tidied", "count", n)
	}
	return errs
}

// apply runs one rule action, converting a panic into a RuleError.
func (p *Pipeline) apply(ctx *rules.Context, step int, r rules.Rule) (err *RuleError) {
	name := TimerRulePrefix + r.Name
	p.timer.Time(name)
	defer p.timer.TimeEnd(name)

	defer func() {
		if rec := recover(); rec != nil {
			err = newPanicError(r.Name, step, rec)
		}
	}()

	r.Action(ctx)
	return nil
}
