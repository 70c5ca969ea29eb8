// Package progress provides terminal-aware progress feedback: capability
// detection, status symbols, and a spinner for blocking operations.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the output stream can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// ProgressSymbols holds the status markers and spinner style for a terminal.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities detects the features of w.
// Checks: w is a terminal, NO_COLOR env, RELNOTE_ASCII env.
// Non-file writers (buffers, pipes wrapped by tests) are never terminals.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	isTTY := isTerminal(w)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELNOTE_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
