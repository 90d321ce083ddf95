package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/matapex/internal/engine"
	"github.com/roach88/matapex/internal/events"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a deterministic id sequence and a discarding logger.
type Harness struct {
	doc    *goquery.Document
	ids    *testutil.SequenceGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Parse the input into a fresh document
// 2. Run the pipeline Runs times, each with a new host page
// 3. Trigger the events through the last pipeline
// 4. Snapshot the body and evaluate assertions
//
// Rule failures and event targets that match nothing fail the result; they
// are not returned as errors. The error is for scenarios that cannot be run.
func Run(scenario *Scenario) (*Result, error) {
	markup, err := readInput(scenario)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	h := &Harness{
		doc:    doc,
		ids:    testutil.NewSequenceGenerator(""),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	p, page := h.runPipelines(scenario, result)
	h.triggerEvents(scenario.Events, p, result)

	result.Successes = page.Successes()
	body, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}
	result.HTML = norm.NFC.String(body)

	for _, msg := range EvaluateAssertions(doc, result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// runPipelines runs the rule set the requested number of times and returns
// the last pipeline together with its host.
func (h *Harness) runPipelines(scenario *Scenario, result *Result) (*engine.Pipeline, *host.Page) {
	runs := max(scenario.Runs, 1)

	var (
		p    *engine.Pipeline
		page *host.Page
	)
	for run := 1; run <= runs; run++ {
		page = host.NewPage(h.doc, host.WithPageLogger(h.logger))
		opts := []engine.Option{
			engine.WithIDGenerator(h.ids),
			engine.WithItemPrefix(scenario.Prefix),
			engine.WithLogger(h.logger),
		}
		if len(scenario.Messages) > 0 {
			opts = append(opts, engine.WithMessages(scenario.Messages))
		}
		p = engine.New(page, opts...)

		if err := p.Run(h.doc); err != nil {
			for _, re := range engine.RuleErrors(err) {
				result.AddError(fmt.Sprintf("run %d: %v", run, re))
			}
		}
		result.FABs += len(page.FABs())

		h.logger.Info("run completed", "scenario", scenario.Name, "run", run)
	}
	result.Outcomes = p.Outcomes()
	return p, page
}

// triggerEvents dispatches each event step through the pipeline registry.
func (h *Harness) triggerEvents(steps []EventStep, p *engine.Pipeline, result *Result) {
	for i, step := range steps {
		target := h.doc.Find(step.Target)
		if target.Length() == 0 {
			result.AddError(fmt.Sprintf("events[%d]: target %q matched nothing", i, step.Target))
			continue
		}
		calls := p.Events().Trigger(h.doc, events.Type(step.Type), target, step.Data)

		h.logger.Info("event triggered",
			"step", i,
			"type", step.Type,
			"target", step.Target,
			"handlers", calls,
		)
	}
}

func readInput(scenario *Scenario) (string, error) {
	if scenario.InputFile == "" {
		return scenario.Input, nil
	}
	data, err := os.ReadFile(scenario.InputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
