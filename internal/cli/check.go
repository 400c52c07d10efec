package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/client"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/pipeline"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	optionsPath string // TOML options file
	remote      string // check via a colign service
	interactive bool   // browse shifts in a TUI
	limit       int    // max shifts to print in plain mode
}

// checkCommand creates the check command. It never modifies the
// document; a misaligned document makes the command fail so scripts and
// CI can gate on the exit code.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{limit: 20}

	cmd := &cobra.Command{
		Use:   "check <document.json>",
		Short: "Check whether a document is already aligned",
		Long: `Check whether a document is already aligned.

Runs the alignment passes in dry-run mode and reports every token that
would move. Exits non-zero when the document is not aligned, so check
works as a CI gate.

Examples:
  colign check doc.json                 # Plain report
  colign check doc.json --interactive   # Browse shifts in a TUI
  colign check doc.json -c colign.toml  # Explicit options file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.optionsPath, "options", "c", "", "alignment options file (TOML)")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "colign service URL (check remotely)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse shifts interactively")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum shifts to print (0 = all)")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path string, opts *checkOpts) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	doc, err := chunk.ReadDocumentFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}
	align, err := loadOptions(opts.optionsPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var shifts []chunk.Shift

	if opts.remote != "" {
		spin := newSpinnerWithContext(ctx, "Waiting for "+opts.remote)
		spin.Start()
		res, err := client.New(opts.remote).Check(ctx, doc, align)
		spin.Stop()
		if err != nil {
			return err
		}
		shifts = res.Shifts
	} else {
		runner := pipeline.NewRunner(nil, nil, c.Logger)
		res, err := runner.Execute(ctx, doc, pipeline.Options{Align: align, DryRun: true})
		if err != nil {
			return err
		}
		shifts = res.Shifts
	}

	if len(shifts) == 0 {
		printSuccess("Document is aligned")
		return nil
	}

	if opts.interactive {
		model := NewShiftListModel(path, shifts)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return err
		}
	} else {
		printShifts(shifts, opts.limit)
	}
	return fmt.Errorf("%d tokens out of alignment", len(shifts))
}

// printShifts prints up to limit shifts, with a trailing count when
// truncated.
func printShifts(shifts []chunk.Shift, limit int) {
	printWarning("%d tokens out of alignment", len(shifts))
	n := len(shifts)
	if limit > 0 && n > limit {
		n = limit
	}
	for _, s := range shifts[:n] {
		printDetail("line %d: %s %d %s %d (%s)", s.Line, s.Kind, s.From, iconArrow, s.To, s.Text)
	}
	if n < len(shifts) {
		printDetail("... and %d more (use --limit 0 or --interactive)", len(shifts)-n)
	}
	printNewline()
	printNextStep("Fix", "colign align <document> -o <document>")
}
