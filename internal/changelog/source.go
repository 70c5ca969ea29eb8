package changelog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultPath is the changelog location used when none is configured.
const DefaultPath = "CHANGELOG.md"

// DefaultRemoteTimeout bounds remote changelog fetches when the context
// carries no deadline of its own.
const DefaultRemoteTimeout = 10 * time.Second

// IsRemote reports whether source is an http(s) URL rather than a file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Read returns the full changelog text from a file path or an http(s) URL.
// File errors wrap the underlying os error, so errors.Is(err, os.ErrNotExist)
// works for missing files.
func Read(ctx context.Context, source string) (string, error) {
	if IsRemote(source) {
		return fetchFromURL(ctx, source)
	}
	return readFile(source)
}

// readFile reads a changelog from disk.
func readFile(path string) (string, error) {
	log.Printf("[changelog] debug: reading %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading changelog file: %w", err)
	}
	return string(data), nil
}

// fetchFromURL downloads a raw changelog document.
func fetchFromURL(ctx context.Context, url string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRemoteTimeout)
		defer cancel()
	}

	log.Printf("[changelog] debug: fetching %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}
