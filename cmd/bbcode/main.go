// Command bbcode renders BBCode from a file or stdin to HTML.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/tagconf"
	"github.com/Drolfothesgnir/bbcode/util"
	"github.com/spf13/cobra"
)

type options struct {
	preset      string
	tagsFile    string
	autolink    bool
	warnings    bool
	maxWarnings int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "bbcode [file]",
		Short: "Render BBCode to HTML",
		Long: `bbcode converts BBCode markup into an HTML fragment.

The input is read from the file argument, or from stdin when it is missing or "-".

Examples:
  bbcode post.txt
  echo "[b]hi[/b]" | bbcode --autolink
  bbcode --tags tags.yaml --warnings post.txt
  bbcode tags --preset basic > tags.yaml`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.preset, "preset", util.PresetExtras, `built-in tag table: "basic" or "extras"`)
	flags.StringVar(&opts.tagsFile, "tags", "", "YAML tag table, overrides --preset")
	root.Flags().BoolVar(&opts.autolink, "autolink", false, "turn bare http(s) URLs into links")
	root.Flags().BoolVar(&opts.warnings, "warnings", false, "print parse warnings to stderr as JSON lines")
	root.Flags().IntVar(&opts.maxWarnings, "max-warnings", 100, "maximum number of warnings to print")

	root.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "Print the selected tag table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := tagconf.Definitions(opts.config())
			if err != nil {
				return err
			}
			return tagconf.Encode(cmd.OutOrStdout(), defs)
		},
	})

	return root
}

func (opts options) config() util.Config {
	return util.Config{
		TagPreset: opts.preset,
		TagsFile:  opts.tagsFile,
		Autolink:  opts.autolink,
	}
}

func runRender(cmd *cobra.Command, args []string, opts options) error {
	parser, err := tagconf.NewParser(opts.config())
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var warns *bbcode.Warnings
	if opts.warnings {
		warns, err = bbcode.NewWarnings(bbcode.WarnOverflowTrunc, opts.maxWarnings)
		if err != nil {
			return err
		}
	}

	html := parser.ParseWithWarnings(input, warns)
	if _, err := io.WriteString(cmd.OutOrStdout(), html); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	enc := json.NewEncoder(cmd.ErrOrStderr())
	for _, w := range warns.List() {
		if err := enc.Encode(w); err != nil {
			return fmt.Errorf("cannot write warnings: %w", err)
		}
	}

	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(data), nil
}
