package reward

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Floor(t *testing.T) {
	t.Parallel()

	// Anything with fewer than three zero bytes has no value, even with a
	// perfect leading run.
	for _, tc := range []struct{ leading, total int }{
		{0, 0}, {0, 2}, {1, 1}, {2, 2},
	} {
		_, ok := Lookup(tc.leading, tc.total)
		assert.False(t, ok, "leading=%d total=%d", tc.leading, tc.total)
	}
}

func TestLookup_Eligibility(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		leading int
		total   int
		wantOK  bool
	}{
		{name: "three leading", leading: 3, total: 3, wantOK: true},
		{name: "two leading needs four total", leading: 2, total: 3, wantOK: false},
		{name: "two leading with four total", leading: 2, total: 4, wantOK: true},
		{name: "one leading needs five total", leading: 1, total: 4, wantOK: false},
		{name: "one leading with five total", leading: 1, total: 5, wantOK: true},
		{name: "scattered needs six total", leading: 0, total: 5, wantOK: false},
		{name: "scattered with six total", leading: 0, total: 6, wantOK: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := Lookup(tc.leading, tc.total)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestLookup_ValueMonotone(t *testing.T) {
	t.Parallel()

	parse := func(leading, total int) int {
		t.Helper()
		s, ok := Lookup(leading, total)
		require.True(t, ok, "leading=%d total=%d", leading, total)
		v, err := strconv.Atoi(s)
		require.NoError(t, err)
		return v
	}

	// More leading zeros at the same total is strictly more valuable, and
	// vice versa.
	assert.Greater(t, parse(4, 4), parse(3, 4))
	assert.Greater(t, parse(3, 5), parse(3, 4))
	assert.Greater(t, parse(5, 8), parse(4, 8))
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Key(0, 0))
	assert.Equal(t, 63, Key(3, 3))
	assert.Equal(t, 420, Key(20, 20))
}
