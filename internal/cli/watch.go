package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/relnote/internal/changelog"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/git"
	"github.com/ariel-frischer/relnote/internal/notify"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Announce each new release as it is added to the changelog",
		Long: `Watch a local changelog and announce every new latest entry.

The entry that is latest when watching starts is not announced. Edits to
the body of an entry are ignored; only a new (or changed) first version
header triggers a message. Stop with Ctrl+C.`,
		Example: `  # Announce releases as they are written
  relnote watch -b "New release!"

  # Print instead of sending
  relnote watch --no-send`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	addMessageFlags(cmd, opts)
	return cmd
}

func runWatch(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if changelog.IsRemote(cfg.Changelog) {
		return withExitCode(ExitInvalidArguments, clierrors.NewArgumentError(
			"watch requires a local changelog file",
			"Pass a file path with --changelog",
		))
	}

	var notifier *notify.Notifier
	if !opts.noSend {
		if notifier, err = newNotifier(cfg); err != nil {
			return err
		}
	}

	watcher, err := changelog.NewWatcher(git.ResolvePath(cfg.Changelog))
	if err != nil {
		return changelogError(cfg.Changelog, err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for new releases (Ctrl+C to stop)\n", watcher.Path())

	err = watcher.Run(ctx, func(entry *changelog.Entry) error {
		message := notify.Compose(cfg.BeforeMessage, entry.Text, cfg.AfterMessage)
		if notifier == nil {
			fmt.Fprint(cmd.OutOrStdout(), message)
			return nil
		}
		if err := notifier.Notify(ctx, message); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			printFailed(cmd, entry)
			return sendError(err)
		}
		printAnnounced(cmd, entry, len(notifier.Config().WebhookURLs))
		return nil
	})

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	if err != nil && clierrors.AsCLIError(err) == nil {
		return changelogError(cfg.Changelog, err)
	}
	return err
}
