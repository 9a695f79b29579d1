package testutil

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Addr decodes a hex string into a 20-byte address, failing the test on
// malformed input.
func Addr(t *testing.T, s string) [20]byte {
	t.Helper()
	var out [20]byte
	fill(t, s, out[:])
	return out
}

// Hash decodes a hex string into a 32-byte value, failing the test on
// malformed input.
func Hash(t *testing.T, s string) [32]byte {
	t.Helper()
	var out [32]byte
	fill(t, s, out[:])
	return out
}

func fill(t *testing.T, s string, dst []byte) {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err, "test fixture %q is not valid hex", s)
	require.Len(t, b, len(dst), "test fixture %q has the wrong length", s)
	copy(dst, b)
}
