//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWriteTable aligns columns.
func TestWriteTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, WriteTable(&out, []string{"SLUG", "STEPS"}, [][]string{
		{"monday-workout", "15"},
		{"friday", "3"},
	}))

	require.Equal(t, "SLUG            STEPS\nmonday-workout  15\nfriday          3\n", out.String())
	require.Equal(t, "yes", FormatYesNo(true))
	require.Equal(t, "no", FormatYesNo(false))
}
