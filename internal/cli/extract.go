package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/ariel-frischer/relnote/internal/changelog"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// extractFormats lists the output formats accepted by extract --format.
var extractFormats = []string{"text", "html", "yaml"}

// entryDocument is the YAML form of an extracted entry.
type entryDocument struct {
	Version string `yaml:"version"`
	Date    string `yaml:"date"`
	Header  string `yaml:"header"`
	Entry   string `yaml:"entry"`
}

func newExtractCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the latest changelog entry",
		Long: `Print the latest changelog entry without composing or sending a message.

The text format reproduces the entry exactly as it appears in the changelog,
from its version header up to the next one. The html format renders the
entry as GitHub-flavored markdown, and yaml adds the parsed version and date.`,
		Example: `  # Print the latest entry
  relnote extract

  # Use the entry as a release body in CI
  relnote extract -c docs/CHANGELOG.md > notes.md

  # Machine-readable output
  relnote extract --format yaml`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html, or yaml")
	return cmd
}

func runExtract(cmd *cobra.Command, opts *options, format string) error {
	if !slices.Contains(extractFormats, format) {
		return withExitCode(ExitInvalidArguments, clierrors.InvalidFlagValue("format", format, extractFormats))
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	entry, err := readLatestEntry(cmd.Context(), cfg.Changelog)
	if err != nil {
		return err
	}

	return writeEntry(cmd.OutOrStdout(), entry, format)
}

// writeEntry writes entry to w in the given format.
func writeEntry(w io.Writer, entry *changelog.Entry, format string) error {
	switch format {
	case "html":
		html, err := changelog.RenderHTML(entry.Text)
		if err != nil {
			return fmt.Errorf("rendering entry: %w", err)
		}
		_, err = fmt.Fprint(w, html)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		doc := entryDocument{
			Version: entry.Header.Version,
			Date:    entry.Header.Date,
			Header:  entry.Header.Line,
			Entry:   entry.Text,
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprint(w, entry.Text)
		return err
	}
}
