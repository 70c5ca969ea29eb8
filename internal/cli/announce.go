package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/config"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/git"
	"github.com/ariel-frischer/relnote/internal/notify"
	"github.com/ariel-frischer/relnote/internal/progress"
	"github.com/spf13/cobra"
)

// runAnnounce extracts the latest entry, composes the message and either
// prints it (--no-send) or delivers it to every configured webhook.
func runAnnounce(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	entry, err := readLatestEntry(cmd.Context(), cfg.Changelog)
	if err != nil {
		return err
	}

	message := notify.Compose(cfg.BeforeMessage, entry.Text, cfg.AfterMessage)
	if opts.noSend {
		fmt.Fprint(cmd.OutOrStdout(), message)
		return nil
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	targets := len(notifier.Config().WebhookURLs)
	err = progress.Run(stderr, fmt.Sprintf("Announcing %s to %d webhook(s)", entry.Header.Version, targets), func() error {
		return notifier.Notify(cmd.Context(), message)
	})
	if err != nil {
		printFailed(cmd, entry)
		return sendError(err)
	}

	printAnnounced(cmd, entry, targets)
	return nil
}

// loadConfig loads layered configuration and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: opts.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if config.IsValidationError(err) {
		return nil, withExitCode(ExitConfigError, clierrors.ConfigParseError(err))
	}
	if err != nil {
		return nil, withExitCode(ExitConfigError, clierrors.ConfigLoadError(err))
	}

	flags := cmd.Flags()
	if flags.Changed("changelog") {
		cfg.Changelog = opts.changelog
	}
	if flags.Changed("before-message") {
		cfg.BeforeMessage = opts.beforeMessage
	}
	if flags.Changed("after-message") {
		cfg.AfterMessage = opts.afterMessage
	}

	log.Printf("[relnote] debug: changelog=%s targets=%d timeout=%s",
		cfg.Changelog, len(cfg.WebhookTargets()), cfg.Timeout)
	return cfg, nil
}

// readLatestEntry reads the changelog at source and extracts its latest entry.
// Relative paths missing from the working directory are retried from the
// repository root.
func readLatestEntry(ctx context.Context, source string) (*changelog.Entry, error) {
	if !changelog.IsRemote(source) {
		source = git.ResolvePath(source)
	}

	text, err := changelog.Read(ctx, source)
	if err != nil {
		return nil, changelogError(source, err)
	}

	entry, err := changelog.ExtractLatest(text)
	if changelog.IsNoHeaderFound(err) {
		return nil, withExitCode(ExitNoHeaderFound, clierrors.NoChangelogHeader(source, err))
	}
	if err != nil {
		return nil, fmt.Errorf("extracting latest entry: %w", err)
	}

	log.Printf("[relnote] debug: latest entry %s (%s), %d bytes at offset %d",
		entry.Header.Version, entry.Header.Date, len(entry.Text), entry.Header.Offset)
	return entry, nil
}

// changelogError maps a read failure to its CLI error.
func changelogError(source string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return withExitCode(ExitChangelogUnreadable, clierrors.ChangelogNotFound(source))
	}
	return withExitCode(ExitChangelogUnreadable, clierrors.ChangelogUnreadable(source, err))
}

// newNotifier builds a notifier for cfg, failing when no webhook is configured.
func newNotifier(cfg *config.Configuration) (*notify.Notifier, error) {
	notifier := notify.NewNotifier(cfg.Notify())
	if len(notifier.Config().WebhookURLs) == 0 {
		return nil, withExitCode(ExitMissingWebhook, clierrors.MissingWebhookURL())
	}
	return notifier, nil
}

// sendError maps a Notify failure to its CLI error.
func sendError(err error) error {
	if errors.Is(err, notify.ErrNoWebhook) {
		return withExitCode(ExitMissingWebhook, clierrors.MissingWebhookURL())
	}
	return withExitCode(ExitSendFailed, clierrors.WebhookSendFailed(err))
}

func printAnnounced(cmd *cobra.Command, entry *changelog.Entry, targets int) {
	stderr := cmd.ErrOrStderr()
	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities(stderr))
	fmt.Fprintf(stderr, "%s Announced %s (%s) to %d webhook(s)\n",
		symbols.Checkmark, entry.Header.Version, entry.Header.Date, targets)
}

func printFailed(cmd *cobra.Command, entry *changelog.Entry) {
	stderr := cmd.ErrOrStderr()
	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities(stderr))
	fmt.Fprintf(stderr, "%s Announcing %s failed\n", symbols.Failure, entry.Header.Version)
}
