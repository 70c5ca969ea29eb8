package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerDelay is the frame interval for the spinner animation.
const spinnerDelay = 100 * time.Millisecond

// Run executes fn while showing a spinner with message on w.
// The spinner is only drawn when w is a terminal; otherwise fn simply runs.
func Run(w io.Writer, message string, fn func() error) error {
	caps := DetectTerminalCapabilities(w)
	if !caps.IsTTY {
		return fn()
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(w))
	s.Suffix = " " + message

	s.Start()
	err := fn()
	s.Stop()

	return err
}
