package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"github.com/roach88/matapex/internal/events"
)

// Scenario defines a rewrite test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the page markup. Exactly one of Input and InputFile is set.
	Input string `yaml:"input,omitempty"`

	// InputFile is a path to the page markup, relative to the scenario file.
	InputFile string `yaml:"input_file,omitempty"`

	// Prefix scopes the form-control rules, as engine.WithItemPrefix.
	Prefix string `yaml:"prefix,omitempty"`

	// Runs is how many times the pipeline runs over the page. Zero means one.
	Runs int `yaml:"runs,omitempty"`

	// Messages are extra message catalog entries.
	Messages map[string]string `yaml:"messages,omitempty"`

	// Events are triggered, in order, after the last run.
	Events []EventStep `yaml:"events,omitempty"`

	// Assertions validate the final document and host state.
	Assertions []Assertion `yaml:"assertions"`
}

// EventStep is one user event dispatched after the runs.
type EventStep struct {
	// Type is the event type: click, blur or apexafterclosedialog.
	Type string `yaml:"type"`

	// Target selects the elements the event is dispatched on.
	Target string `yaml:"target"`

	// Data is the event payload.
	Data events.Data `yaml:"data,omitempty"`
}

// Assertion validates the final document.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Selector picks the elements under test. Not used by success.
	Selector string `yaml:"selector,omitempty"`

	// Count is the expected number of matches (count).
	Count int `yaml:"count,omitempty"`

	// Attr and Value are the expected attribute (attr).
	Attr  string `yaml:"attr,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Class is the class under test (has_class, not_has_class).
	Class string `yaml:"class,omitempty"`

	// Text is the expected text (text, success).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertExists      = "exists"
	AssertCount       = "count"
	AssertAttr        = "attr"
	AssertHasClass    = "has_class"
	AssertNotHasClass = "not_has_class"
	AssertText        = "text"
	AssertSuccess     = "success"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// InputFile is resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.InputFile != "" && !filepath.IsAbs(scenario.InputFile) {
		scenario.InputFile = filepath.Join(filepath.Dir(path), scenario.InputFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenarios: %w", err)
	}
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input == "" && s.InputFile == "":
		return fmt.Errorf("one of input or input_file is required")
	case s.Input != "" && s.InputFile != "":
		return fmt.Errorf("input and input_file are mutually exclusive")
	}

	if s.InputFile != "" {
		if _, err := os.Stat(s.InputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.InputFile)
		}
	}

	if s.Runs < 0 {
		return fmt.Errorf("runs must be non-negative")
	}

	if s.Prefix != "" {
		if _, err := cascadia.Compile(s.Prefix); err != nil {
			return fmt.Errorf("prefix: invalid selector %q: %w", s.Prefix, err)
		}
	}

	for i, e := range s.Events {
		switch events.Type(e.Type) {
		case events.Click, events.Blur, events.AfterCloseDialog:
		default:
			return fmt.Errorf("events[%d]: unknown event type %q", i, e.Type)
		}
		if e.Target == "" {
			return fmt.Errorf("events[%d]: target is required", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Type != AssertSuccess && a.Selector == "" {
		return fmt.Errorf("assertions[%d]: selector is required for %s", index, a.Type)
	}

	switch a.Type {
	case AssertExists:
	case AssertCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for count", index)
		}
	case AssertAttr:
		if a.Attr == "" {
			return fmt.Errorf("assertions[%d]: attr is required for attr", index)
		}
	case AssertHasClass, AssertNotHasClass:
		if a.Class == "" {
			return fmt.Errorf("assertions[%d]: class is required for %s", index, a.Type)
		}
	case AssertText:
	case AssertSuccess:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for success", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
