package config

import (
	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/notify"
)

// GetDefaultConfigTemplate returns a commented config template
// for .relnote.yml.
func GetDefaultConfigTemplate() string {
	return `# relnote configuration
# Environment overrides: RELNOTE_<KEY> (e.g. RELNOTE_WEBHOOK_URL)

changelog: CHANGELOG.md               # Changelog path or raw http(s) URL
before_message: ""                    # Text placed above the entry
after_message: ""                     # Text placed below the entry

# Webhook targets (keep secrets out of version control; prefer env or .env)
webhook_url: ""                       # Falls back to $SLACK_WEBHOOK_URL
webhook_urls: []                      # Additional targets, one POST each
timeout: 10s                          # Per-request timeout (0 = none)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog":      changelog.DefaultPath,
		"before_message": "",
		"after_message":  "",
		"webhook_url":    "",
		"webhook_urls":   []string{},
		"timeout":        notify.DefaultTimeout.String(),
	}
}
