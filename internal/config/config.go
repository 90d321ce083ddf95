// Package config loads the optional CUE configuration of a rewrite.
//
// A configuration file is a plain CUE struct:
//
//	debug_level: "info"
//	item_prefix: "#R1"
//	language:    "de"
//	messages: {
//	    "PE.SELECT": "- Auswahl -"
//	}
//
// Every field is optional. Load reports every problem it finds, not just the
// first, as *Error values joined with multierr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"github.com/roach88/matapex/internal/engine"
	"github.com/roach88/matapex/internal/host"
)

// Field names.
const (
	FieldMessages   = "messages"
	FieldDebugLevel = "debug_level"
	FieldItemPrefix = "item_prefix"
	FieldLanguage   = "language"
)

// Error codes.
const (
	CodeLoadFailed        = "E004"
	CodeNotFound          = "E005"
	CodeBuildFailed       = "E006"
	CodeUnknownField      = "E201"
	CodeInvalidType       = "E202"
	CodeInvalidDebugLevel = "E203"
	CodeInvalidPrefix     = "E204"
	CodeInvalidLanguage   = "E205"
)

// Config is a validated configuration.
type Config struct {
	Messages   map[string]string
	DebugLevel host.DebugLevel
	ItemPrefix string
	Language   language.Tag
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DebugLevel: host.LevelOff,
		Language:   language.Und,
	}
}

// Error is one configuration problem.
type Error struct {
	Field   string
	Message string
	Code    string
	Pos     token.Pos
}

func (e *Error) Error() string {
	field := e.Field
	if field == "" {
		field = "config"
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, field, e.Message)
}

// Errors extracts every *Error from an error returned by Load.
func Errors(err error) []*Error {
	var out []*Error
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*Error); ok {
			out = append(out, ce)
		}
	}
	return out
}

// Load reads and validates the CUE file at path. Fields left out keep their
// Default values.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("error accessing config file: %v", err)}
	}
	if info.IsDir() {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{"./" + filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, &Error{Code: CodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &Error{Code: CodeLoadFailed, Message: fmt.Sprintf("loading CUE file: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &Error{Code: CodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return Decode(value)
}

// Decode validates an already built CUE value.
func Decode(v cue.Value) (*Config, error) {
	c := Default()
	var errs error

	iter, err := v.Fields()
	if err != nil {
		return nil, &Error{Code: CodeInvalidType, Message: fmt.Sprintf("expected a struct: %v", err), Pos: v.Pos()}
	}
	for iter.Next() {
		label, fv := iter.Selector().Unquoted(), iter.Value()
		switch label {
		case FieldMessages:
			errs = multierr.Append(errs, c.decodeMessages(fv))
		case FieldDebugLevel:
			errs = multierr.Append(errs, c.decodeDebugLevel(fv))
		case FieldItemPrefix:
			errs = multierr.Append(errs, c.decodeItemPrefix(fv))
		case FieldLanguage:
			errs = multierr.Append(errs, c.decodeLanguage(fv))
		default:
			errs = multierr.Append(errs, &Error{
				Field:   label,
				Code:    CodeUnknownField,
				Message: fmt.Sprintf("unknown field (want one of %v)", knownFields()),
				Pos:     fv.Pos(),
			})
		}
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

func (c *Config) decodeMessages(v cue.Value) error {
	iter, err := v.Fields()
	if err != nil {
		return typeError(FieldMessages, "a struct of strings", v)
	}
	var errs error
	messages := make(map[string]string)
	for iter.Next() {
		key := iter.Selector().Unquoted()
		text, err := iter.Value().String()
		if err != nil {
			errs = multierr.Append(errs, typeError(FieldMessages+"."+key, "a string", iter.Value()))
			continue
		}
		messages[key] = text
	}
	c.Messages = messages
	return errs
}

func (c *Config) decodeDebugLevel(v cue.Value) error {
	s, err := v.String()
	if err != nil {
		return typeError(FieldDebugLevel, "a string", v)
	}
	level, err := host.ParseDebugLevel(s)
	if err != nil {
		return &Error{Field: FieldDebugLevel, Code: CodeInvalidDebugLevel, Message: err.Error(), Pos: v.Pos()}
	}
	c.DebugLevel = level
	return nil
}

func (c *Config) decodeItemPrefix(v cue.Value) error {
	s, err := v.String()
	if err != nil {
		return typeError(FieldItemPrefix, "a string", v)
	}
	if s != "" {
		if _, err := cascadia.Compile(s); err != nil {
			return &Error{Field: FieldItemPrefix, Code: CodeInvalidPrefix, Message: fmt.Sprintf("invalid selector %q: %v", s, err), Pos: v.Pos()}
		}
	}
	c.ItemPrefix = s
	return nil
}

func (c *Config) decodeLanguage(v cue.Value) error {
	s, err := v.String()
	if err != nil {
		return typeError(FieldLanguage, "a string", v)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return &Error{Field: FieldLanguage, Code: CodeInvalidLanguage, Message: fmt.Sprintf("invalid language tag %q: %v", s, err), Pos: v.Pos()}
	}
	c.Language = tag
	return nil
}

func typeError(field, want string, v cue.Value) *Error {
	return &Error{
		Field:   field,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %v", want, v.IncompleteKind()),
		Pos:     v.Pos(),
	}
}

func knownFields() []string {
	fields := []string{FieldMessages, FieldDebugLevel, FieldItemPrefix, FieldLanguage}
	sort.Strings(fields)
	return fields
}

// PageOptions returns the host options this configuration asks for.
func (c *Config) PageOptions() []host.PageOption {
	return []host.PageOption{
		host.WithLanguage(c.Language),
		host.WithDebugLevel(c.DebugLevel),
	}
}

// PipelineOptions returns the pipeline options this configuration asks for.
func (c *Config) PipelineOptions() []engine.Option {
	var opts []engine.Option
	if c.ItemPrefix != "" {
		opts = append(opts, engine.WithItemPrefix(c.ItemPrefix))
	}
	if len(c.Messages) > 0 {
		opts = append(opts, engine.WithMessages(c.Messages))
	}
	return opts
}
