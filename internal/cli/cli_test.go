package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

## [Unreleased]

## [1.2.0] - 2024-03-01
### Added
- Webhook fan-out

## [1.1.0] - 2024-01-15
### Fixed
- Typo in README
`

const latestEntry = "## [1.2.0] - 2024-03-01\n### Added\n- Webhook fan-out\n\n"

// setupWorkspace isolates the environment and changes into a fresh directory
// holding a changelog with the given content (none when content is empty).
func setupWorkspace(t *testing.T, content string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"SLACK_WEBHOOK_URL",
		"RELNOTE_CHANGELOG",
		"RELNOTE_BEFORE_MESSAGE",
		"RELNOTE_AFTER_MESSAGE",
		"RELNOTE_WEBHOOK_URL",
		"RELNOTE_WEBHOOK_URLS",
		"RELNOTE_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

// runCLI executes the command tree with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
