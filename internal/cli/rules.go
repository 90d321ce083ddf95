package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/roach88/matapex/internal/rules"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Without []string // rule names left out of the listing
}

// RuleInfo describes one rule in JSON output.
type RuleInfo struct {
	Step     int      `json:"step"`
	Name     string   `json:"name"`
	Group    string   `json:"group"`
	Guard    string   `json:"guard,omitempty"`
	Selector string   `json:"selector"`
	After    []string `json:"after,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in evaluation order",
		Long: `List every rewrite rule in the order it runs, grouped by widget family.

The listing is checked first: a rule placed before a rule it must follow is
reported as an error.

Examples:
  matapex rules
  matapex rules --format json
  matapex rules --without parallax,media`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Without, "without", nil, "leave out these rules (comma separated)")

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	set := rules.Default().Without(opts.Without...)
	if err := set.Validate(); err != nil {
		if fmtErr := formatter.Error(ErrCodeInvalidRules, "rule set is invalid", err.Error()); fmtErr != nil {
			return fmtErr
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: rule set is invalid", ErrCodeInvalidRules), err)
	}

	formatter.VerboseLog("%d rules in %d groups", len(set), len(set.Groups()))
	return formatter.Success(ruleListing(set))
}

// RuleListing is the rule set in evaluation order. JSON output is the plain
// list; text output is a tree of groups:
//
//	rules (26)
//	├── navigation
//	│   ├── [1]  sidenav (guard: sidenav)
//	...
type RuleListing []RuleInfo

func ruleListing(set rules.Set) RuleListing {
	listing := make(RuleListing, 0, len(set))
	for i, r := range set {
		listing = append(listing, RuleInfo{
			Step:     i + 1,
			Name:     r.Name,
			Group:    r.Group,
			Guard:    r.Guard,
			Selector: r.Selector,
			After:    r.After,
		})
	}
	return listing
}

// RenderText draws the tree. Groups appear in the order of their first rule;
// verbose adds each rule's selector.
func (l RuleListing) RenderText(w io.Writer, verbose bool) error {
	tree := treeprint.NewWithRoot(fmt.Sprintf("rules (%d)", len(l)))
	branches := make(map[string]treeprint.Tree)
	for _, info := range l {
		branch, ok := branches[info.Group]
		if !ok {
			branch = tree.AddBranch(info.Group)
			branches[info.Group] = branch
		}
		if verbose && info.Selector != "" {
			branch.AddMetaBranch(info.Step, info.describe()).AddNode(info.Selector)
			continue
		}
		branch.AddMetaNode(info.Step, info.describe())
	}
	_, err := io.WriteString(w, tree.String())
	return err
}

func (i RuleInfo) describe() string {
	var notes []string
	if i.Guard != "" {
		notes = append(notes, "guard: "+i.Guard)
	}
	if len(i.After) > 0 {
		notes = append(notes, "after: "+strings.Join(i.After, ", "))
	}
	if len(notes) == 0 {
		return i.Name
	}
	return fmt.Sprintf("%s (%s)", i.Name, strings.Join(notes, "; "))
}
