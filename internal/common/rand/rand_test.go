package rand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceCode(t *testing.T) {
	a, err := DeviceCode()
	require.NoError(t, err)
	b, err := DeviceCode()
	require.NoError(t, err)

	require.Len(t, a, DeviceCodeLength)
	require.NotEqual(t, a, b)
	for _, r := range a {
		require.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}
}

func TestStringWithCharset(t *testing.T) {
	s, err := StringWithCharset(16, "x")
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 16), s)
}
