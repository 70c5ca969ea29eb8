package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/relnote/internal/config"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/progress"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented relnote config file",
		Long: `Create a commented configuration file with every setting and its default.

By default the file is written to .relnote.yml in the current directory.
With --global it is written to the user config directory instead.
Existing files are left untouched unless --force is given.`,
		Example: `  relnote init
  relnote init --global
  relnote init --force`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, global, force)
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Write the user-level config instead of .relnote.yml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, global, force bool) error {
	path := config.ProjectConfigPath()
	if global {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return withExitCode(ExitConfigError, clierrors.WrapWithMessage(err, clierrors.Configuration,
				"cannot locate the user config directory",
				"Create .relnote.yml in the project instead: relnote init"))
		}
		path = userPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		return withExitCode(ExitConfigError, clierrors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
		))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	out := cmd.OutOrStdout()
	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities(out))
	fmt.Fprintf(out, "%s Config: created %s\n", symbols.Checkmark, path)
	return nil
}
