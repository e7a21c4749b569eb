package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireLogCount asserts that substr occurs exactly n times in logs.
func RequireLogCount(t *testing.T, logs, substr string, n int) {
	t.Helper()

	require.Equal(t, n, strings.Count(logs, substr),
		"expected %q to appear %d time(s) in logs:\n%s", substr, n, logs)
}
