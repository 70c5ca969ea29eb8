package cli

import (
	"bytes"
	"testing"

	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExtractCmd(t *testing.T) {
	tests := map[string]struct {
		args  []string
		check func(t *testing.T, stdout string)
	}{
		"text is byte exact": {
			args: []string{"extract"},
			check: func(t *testing.T, stdout string) {
				assert.Equal(t, latestEntry, stdout)
			},
		},
		"html": {
			args: []string{"extract", "--format", "html"},
			check: func(t *testing.T, stdout string) {
				assert.Contains(t, stdout, "<h2>[1.2.0] - 2024-03-01</h2>")
				assert.Contains(t, stdout, "<li>Webhook fan-out</li>")
			},
		},
		"yaml": {
			args: []string{"extract", "-f", "yaml"},
			check: func(t *testing.T, stdout string) {
				var doc entryDocument
				require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
				assert.Equal(t, "1.2.0", doc.Version)
				assert.Equal(t, "2024-03-01", doc.Date)
				assert.Equal(t, "## [1.2.0] - 2024-03-01", doc.Header)
				assert.Equal(t, latestEntry, doc.Entry)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupWorkspace(t, sampleChangelog)

			stdout, stderr, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Empty(t, stderr)
			tt.check(t, stdout)
		})
	}
}

func TestExtractCmd_IgnoresMessages(t *testing.T) {
	setupWorkspace(t, sampleChangelog)
	t.Setenv("RELNOTE_BEFORE_MESSAGE", "hello")

	stdout, _, err := runCLI(t, "extract")
	require.NoError(t, err)
	assert.Equal(t, latestEntry, stdout)
}

func TestExtractCmd_SingleEntry(t *testing.T) {
	content := "# Changelog\n\n## [v0.1.0] - 2023-12-31\n- first\n"
	setupWorkspace(t, content)

	stdout, _, err := runCLI(t, "extract")
	require.NoError(t, err)
	assert.Equal(t, "## [v0.1.0] - 2023-12-31\n- first\n", stdout)
}

func TestExtractCmd_NoHeader(t *testing.T) {
	setupWorkspace(t, "# Changelog\n")

	_, stderr, err := runCLI(t, "extract")
	require.Error(t, err)
	assert.Equal(t, ExitNoHeaderFound, ExitCode(err))
	assert.Contains(t, stderr, "no valid changelog headers found")
}

func TestWriteEntry_UnknownFormatFallsBackToText(t *testing.T) {
	t.Parallel()

	entry := &changelog.Entry{Text: "## [1.0.0] - 2024-01-01\n"}
	var buf bytes.Buffer
	require.NoError(t, writeEntry(&buf, entry, ""))
	assert.Equal(t, entry.Text, buf.String())
}
