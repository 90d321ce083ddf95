package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/cobra"

	"github.com/roach88/matapex/internal/engine"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/rules"
)

// RewriteOptions holds flags for the rewrite command.
type RewriteOptions struct {
	*RootOptions
	Config  string   // CUE configuration file
	Prefix  string   // item prefix, overrides the configuration
	Output  string   // output file, stdout when empty
	Without []string // rules left out of the run
}

// RewriteSummary reports one rewrite.
type RewriteSummary struct {
	Input    string           `json:"input"`
	Output   string           `json:"output"`
	Applied  int              `json:"applied"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	Outcomes []engine.Outcome `json:"outcomes,omitempty"`
}

func (s RewriteSummary) String() string {
	return fmt.Sprintf("✓ %s -> %s (%d applied, %d skipped, %d failed)",
		s.Input, s.Output, s.Applied, s.Skipped, s.Failed)
}

// RenderText prints the summary line, then one line per rule when verbose.
func (s RewriteSummary) RenderText(w io.Writer, verbose bool) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for _, o := range s.Outcomes {
		line := fmt.Sprintf("  %-8s %s", o.Status, o.Rule)
		switch {
		case o.Error != "":
			line += ": " + o.Error
		case o.Guard != "":
			line += " (guard: " + o.Guard + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RewriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite an APEX page into Materialize markup",
		Long: `Parse an HTML page, run every rule over it and write the result.

Reads the named file, or stdin when no file (or "-") is given. Writes to
--output, or stdout. When writing to a file, a summary is printed to stdout
in the selected format.

Rules that fail are reported and skipped; the rest of the page is still
rewritten and written out.

Exit codes:
  0 - Page rewritten
  1 - One or more rules failed, or the configuration is invalid
  2 - Command error (unreadable input, unwritable output, etc.)

Examples:
  matapex rewrite page.html -o page.out.html
  matapex rewrite --config matapex.cue --prefix "#R1" < page.html
  matapex rewrite page.html -o out.html --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runRewrite(opts, input, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE configuration file")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "selector prefix for the form-control rules")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVar(&opts.Without, "without", nil, "leave out these rules (comma separated)")

	return cmd
}

func runRewrite(opts *RewriteOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return outputConfigErrors(formatter, err)
	}
	if opts.Prefix != "" {
		if _, err := cascadia.Compile(opts.Prefix); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: invalid --prefix %q", ErrCodeGeneric, opts.Prefix), err)
		}
		cfg.ItemPrefix = opts.Prefix
	}

	pipelineOpts := append(cfg.PipelineOptions(), engine.WithLogger(logger))
	if len(opts.Without) > 0 {
		set := rules.Default().Without(opts.Without...)
		if err := set.Validate(); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: --without leaves an invalid rule set", ErrCodeInvalidRules), err)
		}
		pipelineOpts = append(pipelineOpts, engine.WithRules(set))
	}

	in, err := openInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	pageOpts := append(cfg.PageOptions(), host.WithPageLogger(logger))

	// Render into memory so a failed parse never leaves a partial output file.
	var out bytes.Buffer
	p, runErr := engine.Rewrite(in, &out, engine.PageHost(pageOpts...), pipelineOpts...)
	if p == nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: cannot read page", ErrCodeReadFailed), runErr)
	}

	if err := writeOutput(opts.Output, cmd.OutOrStdout(), out.Bytes()); err != nil {
		return err
	}

	summary := summarizeRewrite(input, opts.Output, p.Outcomes())

	if opts.Output != "" {
		if opts.Verbose {
			summary.Outcomes = p.Outcomes()
		}
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else {
		formatter.VerboseLog("%s", summary)
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: %d rule(s) failed", ErrCodeRuleFailed, summary.Failed), runErr)
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: cannot write output", ErrCodeWriteFailed), err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: cannot write output", ErrCodeWriteFailed), err)
	}
	return nil
}

func summarizeRewrite(input, output string, outcomes []engine.Outcome) RewriteSummary {
	if input == "" {
		input = "-"
	}
	if output == "" {
		output = "-"
	}
	s := RewriteSummary{Input: input, Output: output}
	for _, o := range outcomes {
		switch o.Status {
		case engine.StatusApplied:
			s.Applied++
		case engine.StatusSkipped:
			s.Skipped++
		case engine.StatusFailed:
			s.Failed++
		}
	}
	return s
}
