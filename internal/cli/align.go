package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/client"
	"github.com/matzehuels/colign/pkg/errors"
	"github.com/matzehuels/colign/pkg/pipeline"
)

// Output formats for aligned documents.
const (
	formatJSON = "json"
	formatText = "text"
)

// alignOpts holds the command-line flags for the align command.
type alignOpts struct {
	optionsPath string // TOML options file (colign.toml in cwd if empty)
	output      string // output file path (stdout if empty)
	format      string // output format: json or text
	dryRun      bool   // report shifts without writing the document
	noCache     bool   // bypass the result cache
	remote      string // align via a colign service instead of locally
}

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	opts := alignOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "align <document.json>",
		Short: "Align a token document and write the result",
		Long: `Align a token document and write the result.

The input is a JSON token document (see "colign options init" for the
matching options file). Each enabled category is aligned in a separate
pass; the aligned document is written to --output or stdout.

Examples:
  colign align doc.json                       # Align with defaults, JSON to stdout
  colign align doc.json -o aligned.json       # Write to a file
  colign align doc.json --format text         # Render as plain text
  colign align doc.json --dry-run             # Show what would move
  colign align doc.json --remote http://host  # Use a colign service`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAlign(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.optionsPath, "options", "c", "", "alignment options file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: json or text")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report shifts without writing the document")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "colign service URL (align remotely)")

	return cmd
}

func (c *CLI) runAlign(cmd *cobra.Command, path string, opts *alignOpts) error {
	if opts.format != formatJSON && opts.format != formatText {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (json or text)", opts.format)
	}

	result, err := c.execute(cmd, path, opts)
	if err != nil {
		return err
	}

	if opts.dryRun {
		reportShifts(result.Shifts)
		printStats(result.Stats.Candidates, result.Stats.Shifted, result.CacheInfo.Hit)
		return nil
	}

	if err := writeDocument(result.Document, opts.output, opts.format); err != nil {
		return err
	}

	printSuccess("Aligned document")
	printStats(result.Stats.Candidates, result.Stats.Shifted, result.CacheInfo.Hit)
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Verify", fmt.Sprintf("colign check %s", opts.output))
	}
	return nil
}

// execute runs the pipeline locally or against a remote service.
func (c *CLI) execute(cmd *cobra.Command, path string, opts *alignOpts) (*pipeline.Result, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	doc, err := chunk.ReadDocumentFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}
	align, err := loadOptions(opts.optionsPath)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	if opts.remote != "" {
		cl := client.New(opts.remote)
		spin := newSpinnerWithContext(ctx, "Waiting for "+opts.remote)
		spin.Start()
		if opts.dryRun {
			chk, err := cl.Check(ctx, doc, align)
			spin.Stop()
			if err != nil {
				return nil, err
			}
			prog.done(fmt.Sprintf("Checked %d tokens remotely", doc.Len()))
			return &pipeline.Result{Document: doc, Shifts: chk.Shifts, Stats: chk.Stats}, nil
		}
		result, err := cl.Align(ctx, doc, align)
		spin.Stop()
		if err != nil {
			return nil, err
		}
		prog.done(fmt.Sprintf("Aligned %d tokens remotely", result.Stats.Shifted))
		return result, nil
	}

	runner, err := c.newRunner(ctx, opts.noCache, "")
	if err != nil {
		return nil, err
	}
	result, err := runner.Execute(ctx, doc, pipeline.Options{Align: align, DryRun: opts.dryRun})
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Aligned %d tokens", result.Stats.Shifted))
	return result, nil
}

// reportShifts prints a dry-run shift summary.
func reportShifts(shifts []chunk.Shift) {
	if len(shifts) == 0 {
		printInfo("Nothing to align")
		return
	}
	printInfo("%d tokens would move:", len(shifts))
	for _, s := range shifts {
		printDetail("line %d: %s %d %s %d (%s)", s.Line, s.Kind, s.From, iconArrow, s.To, s.Text)
	}
}

// writeDocument writes the aligned document to path (stdout if empty)
// in the requested format.
func writeDocument(doc *chunk.Document, path, format string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if format == formatText {
		_, err := io.WriteString(out, doc.Render())
		return err
	}
	return chunk.WriteDocument(doc, out)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
