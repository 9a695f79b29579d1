package crunch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFactory = "0x0000000000FFe8B47B3e2130213B802212439497"
	testCaller  = "0x0000000000000000000000000000000000000000"
	testHash    = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
)

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := ParseArgs([]string{testFactory, testCaller, testHash})
	require.NoError(t, err)

	assert.Equal(t, uint8(CPUDevice), cfg.Device)
	assert.Equal(t, uint8(DefaultLeadingZeroes), cfg.LeadingZeroes)
	assert.Equal(t, uint8(DefaultTotalZeroes), cfg.TotalZeroes)
	assert.False(t, cfg.ThresholdMode())
}

func TestParseArgs_FullForm(t *testing.T) {
	t.Parallel()

	cfg, err := ParseArgs([]string{testFactory, testCaller, testHash, "0", "5", "7"})
	require.NoError(t, err)

	assert.Equal(t, uint8(0), cfg.Device)
	assert.Equal(t, uint8(5), cfg.LeadingZeroes)
	assert.Equal(t, uint8(7), cfg.TotalZeroes)
	assert.True(t, cfg.ThresholdMode())
}

func TestParseArgs_HexPrefixOptional(t *testing.T) {
	t.Parallel()

	bare := []string{
		strings.TrimPrefix(testFactory, "0x"),
		strings.TrimPrefix(testCaller, "0x"),
		strings.TrimPrefix(testHash, "0x"),
	}
	withPrefix, err := ParseArgs([]string{testFactory, testCaller, testHash})
	require.NoError(t, err)
	without, err := ParseArgs(bare)
	require.NoError(t, err)

	assert.Equal(t, withPrefix, without)
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no args",
			args:    nil,
			wantErr: "got 0 argument(s)",
		},
		{
			name:    "missing hash",
			args:    []string{testFactory, testCaller},
			wantErr: "got 2 argument(s)",
		},
		{
			name:    "too many args",
			args:    []string{testFactory, testCaller, testHash, "0", "4", "6", "8"},
			wantErr: "too many arguments",
		},
		{
			name:    "bad factory hex",
			args:    []string{"0xnothex", testCaller, testHash},
			wantErr: "could not decode factory address",
		},
		{
			name:    "factory wrong length",
			args:    []string{"0xdeadbeef", testCaller, testHash},
			wantErr: "invalid length for factory address",
		},
		{
			name:    "caller wrong length",
			args:    []string{testFactory, testHash, testHash},
			wantErr: "invalid length for caller address",
		},
		{
			name:    "hash wrong length",
			args:    []string{testFactory, testCaller, testFactory},
			wantErr: "invalid length for init code hash",
		},
		{
			name:    "bad device",
			args:    []string{testFactory, testCaller, testHash, "gpu0"},
			wantErr: "invalid device value",
		},
		{
			name:    "device out of byte range",
			args:    []string{testFactory, testCaller, testHash, "256"},
			wantErr: "invalid device value",
		},
		{
			name:    "leading threshold too high",
			args:    []string{testFactory, testCaller, testHash, "0", "21"},
			wantErr: "leading zeroes threshold 21 out of range",
		},
		{
			name:    "total threshold too high",
			args:    []string{testFactory, testCaller, testHash, "0", "4", "21"},
			wantErr: "total zeroes threshold 21 out of range",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseArgs(tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseArgs_TotalThreshold255Sentinel(t *testing.T) {
	t.Parallel()

	// 255 disables the total-zeroes criterion and must be accepted.
	cfg, err := ParseArgs([]string{testFactory, testCaller, testHash, "0", "4", "255"})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), cfg.TotalZeroes)
}
