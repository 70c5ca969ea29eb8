package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	original := [3]string{Version, Commit, BuildDate}
	t.Cleanup(func() { Version, Commit, BuildDate = original[0], original[1], original[2] })

	Version, Commit, BuildDate = "1.4.0", "abc1234", "2024-06-01"
	assert.Equal(t, "relnote 1.4.0 (commit abc1234, built 2024-06-01)", String())
}
