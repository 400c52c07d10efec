package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/options"
)

// optionsCommand creates the options management command.
func (c *CLI) optionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect and scaffold alignment options",
	}

	cmd.AddCommand(c.optionsShowCommand())
	cmd.AddCommand(c.optionsInitCommand())

	return cmd
}

// optionsShowCommand creates the "options show" subcommand.
func (c *CLI) optionsShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective alignment options",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(path)
			if err != nil {
				return err
			}

			source := path
			if source == "" {
				if _, err := os.Stat(defaultOptionsFile); err == nil {
					source = defaultOptionsFile
				} else {
					source = "built-in defaults"
				}
			}
			printKeyValue("Source", source)

			passes := opts.Passes()
			names := make([]string, len(passes))
			for i, p := range passes {
				names[i] = p.Kind.String()
			}
			printKeyValue("Enabled", fmt.Sprintf("%d of %d categories", len(passes), len(chunk.Kinds())))
			printKeyValue("Passes", strings.Join(names, ", "))
			printNewline()

			data, err := encodeOptions(opts)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "options", "c", "", "alignment options file (TOML)")
	return cmd
}

// optionsInitCommand creates the "options init" subcommand.
func (c *CLI) optionsInitCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default options file",
		Long: `Write a default options file.

The generated file lists every alignment category with its span and
threshold. A span of 0 disables a category; see the long help of
"colign align" for how span and threshold interact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOptionsFile
			}
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			data, err := encodeOptions(options.Default())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote %s", output)
			printNextStep("Align", fmt.Sprintf("colign align <document> -c %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (colign.toml if empty)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// encodeOptions renders options as TOML.
func encodeOptions(opts *options.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
