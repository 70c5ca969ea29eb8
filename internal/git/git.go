// Package git provides repository lookups for relnote using go-git, so no
// git CLI is required. It is used to find a changelog at the repository root
// when relnote runs from a subdirectory.
package git

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing dir, walking up the tree
// to find the .git directory. If dir is empty, the working directory is used.
func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", dir)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// RepositoryRoot returns the absolute worktree root of the repository
// containing dir (or the working directory when dir is empty).
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] repository root: %s", root)
	return root, nil
}

// ResolvePath returns path unchanged if it exists or is absolute. Otherwise,
// if the working directory is inside a repository and the same relative path
// exists under the repository root, that location is returned instead.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	root, err := RepositoryRoot("")
	if err != nil {
		logDebug("[git] no repository for %s: %v", path, err)
		return path
	}

	candidate := filepath.Join(root, path)
	if _, err := os.Stat(candidate); err != nil {
		return path
	}

	logDebug("[git] resolved %s to %s", path, candidate)
	return candidate
}
