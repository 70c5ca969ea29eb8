package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relnote CLI.
// Each failure kind gets its own constructor so users always see
// a distinct message and a concrete next step.

// ChangelogNotFound creates an error for a changelog path that does not exist.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Pass the changelog location with: relnote --changelog path/to/CHANGELOG.md",
		"Or set 'changelog' in .relnote.yml (or RELNOTE_CHANGELOG)",
	)
}

// ChangelogUnreadable creates an error when the changelog exists but cannot be read or fetched.
func ChangelogUnreadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot read changelog %s", path),
		"Check file permissions, or the URL if the changelog is remote",
	)
}

// NoChangelogHeader creates an error when no version header is present.
func NoChangelogHeader(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("no release entry found in %s", path),
		"Version headers must look like: ## [1.2.3] - 2024-01-15",
		"A 'v' or 'V' prefix is allowed: ## [v1.2.3] - 2024-01-15",
		"Sections like '## [Unreleased]' are not release entries",
	)
}

// MissingWebhookURL creates an error when a message should be sent but no target is configured.
func MissingWebhookURL() *CLIError {
	return NewConfigError(
		"no webhook URL configured",
		"Set SLACK_WEBHOOK_URL or RELNOTE_WEBHOOK_URL in the environment (or in .env)",
		"Or set 'webhook_url' in .relnote.yml",
		"Use --no-send to print the message without sending it",
	)
}

// WebhookSendFailed creates an error for a failed webhook delivery.
func WebhookSendFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"sending notification failed",
		"Check that the webhook URL is still valid",
		"Increase the timeout with: RELNOTE_TIMEOUT=30s",
		"Run with --debug for request details",
	)
}

// ConfigParseError creates an error for invalid configuration.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .relnote.yml (or the file passed with --config) for YAML syntax errors",
		"Webhook URLs must start with http:// or https://",
	)
}

// ConfigLoadError creates an error for configuration that parses but cannot be
// decoded, such as a duration without a unit.
func ConfigLoadError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"cannot load configuration",
		"Durations need a unit: RELNOTE_TIMEOUT=30s or timeout: 30s",
		"Check RELNOTE_* environment variables and config values for the wrong type",
	)
}

// InvalidFlagValue creates an error for a flag value outside its allowed set.
func InvalidFlagValue(flag, value string, allowed []string) *CLIError {
	err := NewArgumentError(
		fmt.Sprintf("invalid value %q for --%s", value, flag),
		fmt.Sprintf("Allowed values: %s", strings.Join(allowed, ", ")),
	)
	err.Usage = fmt.Sprintf("--%s <%s>", flag, strings.Join(allowed, "|"))
	return err
}
