package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
		"not a terminal": {
			caps: TerminalCapabilities{},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilities_Buffer(t *testing.T) {
	caps := DetectTerminalCapabilities(&bytes.Buffer{})
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
}

func TestRun_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	called := false

	err := Run(&buf, "working", func() error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, buf.String(), "no spinner output on non-terminals")
}

func TestRun_PropagatesError(t *testing.T) {
	sentinel := errors.New("failed")
	err := Run(&bytes.Buffer{}, "working", func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}
