package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/matapex/internal/config"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ConfigSummary is the validated configuration as reported by validate.
type ConfigSummary struct {
	File       string   `json:"file"`
	DebugLevel string   `json:"debug_level"`
	ItemPrefix string   `json:"item_prefix,omitempty"`
	Language   string   `json:"language"`
	Messages   []string `json:"messages,omitempty"`
}

// ValidationError is one configuration problem in JSON output.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a rewrite configuration",
		Long: `Load a CUE configuration file and report every problem in it.

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors
  2 - Command error (file not found, etc.)

Examples:
  matapex validate ./matapex.cue
  matapex validate ./matapex.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	formatter.VerboseLog("Loading configuration from %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return outputConfigErrors(formatter, err)
	}

	return formatter.Success(summarizeConfig(path, cfg))
}

// RenderText prints the settings validate checked. Message keys are listed
// only when verbose.
func (s ConfigSummary) RenderText(w io.Writer, verbose bool) error {
	fmt.Fprintln(w, "✓ Configuration valid")
	fmt.Fprintf(w, "  debug_level: %s\n", s.DebugLevel)
	fmt.Fprintf(w, "  language:    %s\n", s.Language)
	if s.ItemPrefix != "" {
		fmt.Fprintf(w, "  item_prefix: %s\n", s.ItemPrefix)
	}
	_, err := fmt.Fprintf(w, "  messages:    %d\n", len(s.Messages))
	if verbose {
		for _, key := range s.Messages {
			fmt.Fprintf(w, "    %s\n", key)
		}
	}
	return err
}

func summarizeConfig(path string, cfg *config.Config) ConfigSummary {
	summary := ConfigSummary{
		File:       path,
		DebugLevel: cfg.DebugLevel.String(),
		ItemPrefix: cfg.ItemPrefix,
		Language:   cfg.Language.String(),
	}
	for key := range cfg.Messages {
		summary.Messages = append(summary.Messages, key)
	}
	slices.Sort(summary.Messages)
	return summary
}

// outputConfigErrors reports load or validation errors. A missing file is a
// command error; anything else is a validation failure.
func outputConfigErrors(formatter *OutputFormatter, err error) error {
	errs := config.Errors(err)
	code := configErrorCode(err)

	exitCode := ExitFailure
	if code == config.CodeNotFound {
		exitCode = ExitCommandError
	}

	problems := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		problems = append(problems, ValidationError{
			Code:    e.Code,
			Field:   e.Field,
			Message: e.Message,
			Line:    e.Pos.Line(),
		})
	}
	if fmtErr := formatter.ValidationFailure(code, problems); fmtErr != nil {
		return fmtErr
	}

	return NewExitError(exitCode, fmt.Sprintf("%s: validation failed with %d error(s)", code, len(errs)))
}
