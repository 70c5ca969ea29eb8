// Package testutil provides test utilities and helpers for relnote tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// relnoteBinaryPath caches the built relnote binary path.
	relnoteBinaryPath string
	relnoteBuildOnce  sync.Once
	relnoteBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing.
// It runs the built binary in a temp directory with a sanitized environment
// so tests never post to a webhook configured on the host.
type E2EEnv struct {
	t         *testing.T
	tempDir   string
	homeDir   string
	extraEnv  map[string]string
	cleanedUp bool
}

// CommandResult captures the result of running a relnote command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment and builds the binary if needed.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{
		t:        t,
		extraEnv: make(map[string]string),
	}

	env.setup()
	t.Cleanup(env.Cleanup)

	return env
}

func (e *E2EEnv) setup() {
	e.t.Helper()

	tempDir, err := os.MkdirTemp("", "relnote-e2e-*")
	if err != nil {
		e.t.Fatalf("creating temp directory: %v", err)
	}
	e.tempDir = tempDir

	// HOME lives outside the working directory so .env discovery stays local.
	homeDir, err := os.MkdirTemp("", "relnote-e2e-home-*")
	if err != nil {
		e.t.Fatalf("creating home directory: %v", err)
	}
	e.homeDir = homeDir

	e.buildRelnote()
}

func (e *E2EEnv) buildRelnote() {
	e.t.Helper()

	// Build relnote binary once per test session
	relnoteBuildOnce.Do(func() {
		relnoteBinaryPath, relnoteBuildErr = doBuildRelnote()
	})

	if relnoteBuildErr != nil {
		e.t.Fatalf("building relnote: %v", relnoteBuildErr)
	}
}

func doBuildRelnote() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	// Navigate from internal/testutil/ to repo root
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "relnote-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "relnote")
	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/relnote")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("building relnote: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Run executes a relnote command in the isolated E2E environment.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(relnoteBinaryPath, args...)
	cmd.Dir = e.tempDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}

	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.homeDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.homeDir, ".config"),
		"NO_COLOR=1",
	}

	// Add safe environment variables from original environment
	safeVars := []string{
		"LANG",
		"LC_ALL",
		"TMPDIR",
		"TMP",
		"TEMP",
		"SYSTEMROOT",
	}

	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	// Webhook settings come only from SetEnv; host values are never inherited.
	for key, val := range e.extraEnv {
		env = append(env, key+"="+val)
	}

	return env
}

// SetEnv sets an environment variable for subsequent Run calls.
func (e *E2EEnv) SetEnv(key, value string) {
	e.extraEnv[key] = value
}

// HasWebhookInEnv reports whether any webhook setting reaches the binary.
func (e *E2EEnv) HasWebhookInEnv() bool {
	for _, v := range e.buildIsolatedEnv() {
		if strings.HasPrefix(v, "SLACK_WEBHOOK_URL=") || strings.HasPrefix(v, "RELNOTE_WEBHOOK_URL") {
			return true
		}
	}
	return false
}

// WriteFile writes content to name inside the working directory.
func (e *E2EEnv) WriteFile(name, content string) string {
	e.t.Helper()

	path := filepath.Join(e.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// WriteChangelog writes CHANGELOG.md into the working directory.
func (e *E2EEnv) WriteChangelog(content string) string {
	e.t.Helper()
	return e.WriteFile("CHANGELOG.md", content)
}

// Cleanup removes temp files.
func (e *E2EEnv) Cleanup() {
	if e.cleanedUp {
		return
	}
	e.cleanedUp = true

	for _, dir := range []string{e.tempDir, e.homeDir} {
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			e.t.Logf("note: could not remove temp directory: %v", err)
		}
	}
}
