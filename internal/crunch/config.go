package crunch

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// CPUDevice is the device sentinel meaning no device was selected and the
// reward-table search should run.
const CPUDevice = 255

// Defaults applied when the optional positional arguments are omitted.
const (
	DefaultLeadingZeroes = 3
	DefaultTotalZeroes   = 5
)

// Config holds the decoded search parameters: the address of the contract
// that will be calling CREATE2, the address of the caller of said contract
// (set it to the null address if frontrunning protection does not apply),
// and the keccak-256 hash of the initialization code. The three optional
// values select a device and the leading/total zero-byte thresholds used by
// the threshold search.
type Config struct {
	FactoryAddress [20]byte
	CallingAddress [20]byte
	InitCodeHash   [32]byte

	Device        uint8
	LeadingZeroes uint8
	TotalZeroes   uint8
}

// ThresholdMode reports whether a device was selected, which switches the
// acceptance criterion from the reward table to the leading/total thresholds.
func (c *Config) ThresholdMode() bool {
	return c.Device != CPUDevice
}

// ParseArgs decodes the miner's positional argument list:
//
//	<factory> <caller> <init_code_hash> [device] [leading] [total]
//
// The three hex arguments are required; the rest default to 255, 3 and 5.
func ParseArgs(args []string) (*Config, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("need a factory address, a caller address and an init code hash, got %d argument(s)", len(args))
	}
	if len(args) > 6 {
		return nil, fmt.Errorf("too many arguments: %d", len(args))
	}

	var cfg Config
	if err := decodeHex(args[0], cfg.FactoryAddress[:], "factory address"); err != nil {
		return nil, err
	}
	if err := decodeHex(args[1], cfg.CallingAddress[:], "caller address"); err != nil {
		return nil, err
	}
	if err := decodeHex(args[2], cfg.InitCodeHash[:], "init code hash"); err != nil {
		return nil, err
	}

	cfg.Device = CPUDevice
	cfg.LeadingZeroes = DefaultLeadingZeroes
	cfg.TotalZeroes = DefaultTotalZeroes

	if len(args) > 3 {
		v, err := parseByte(args[3], "device")
		if err != nil {
			return nil, err
		}
		cfg.Device = v
	}
	if len(args) > 4 {
		v, err := parseByte(args[4], "leading zeroes threshold")
		if err != nil {
			return nil, err
		}
		cfg.LeadingZeroes = v
	}
	if len(args) > 5 {
		v, err := parseByte(args[5], "total zeroes threshold")
		if err != nil {
			return nil, err
		}
		cfg.TotalZeroes = v
	}

	if cfg.LeadingZeroes > 20 {
		return nil, fmt.Errorf("leading zeroes threshold %d out of range (valid: 0..20)", cfg.LeadingZeroes)
	}
	if cfg.TotalZeroes > 20 && cfg.TotalZeroes != 255 {
		return nil, fmt.Errorf("total zeroes threshold %d out of range (valid: 0..20 or 255)", cfg.TotalZeroes)
	}

	return &cfg, nil
}

// decodeHex fills dst from a hex string, tolerating an optional 0x prefix.
func decodeHex(s string, dst []byte, what string) error {
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("could not decode %s %q: %w", what, s, err)
	}
	if len(b) != len(dst) {
		return fmt.Errorf("invalid length for %s: got %d bytes, want %d", what, len(b), len(dst))
	}
	copy(dst, b)
	return nil
}

func parseByte(s string, what string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", what, s)
	}
	return uint8(v), nil
}
