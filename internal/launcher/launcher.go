// Package launcher implements the run command: it fixes the factory address,
// the caller address and the init code hash for a deployment, then hands them
// to the miner executable together with the optional device and threshold
// arguments, propagating the miner's exit code.
package launcher

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Compiled-in deployment parameters. The factory is the canonical immutable
// CREATE2 factory; the caller is the null address (no frontrunning
// protection); the hash is the keccak-256 of empty init code. All three can
// be overridden with flags.
const (
	DefaultFactory      = "0x0000000000FFe8B47B3e2130213B802212439497"
	DefaultCaller       = "0x0000000000000000000000000000000000000000"
	DefaultInitCodeHash = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
)

// Thresholds handed to the miner when a device is selected and the caller
// did not supply their own.
const (
	DefaultLeadingZeroes = "4"
	DefaultTotalZeroes   = "6"
)

// DefaultMiner is the executable spawned to do the search, resolved via PATH.
const DefaultMiner = "create2crunch"

// Config carries the fixed deployment triple and the miner to spawn.
type Config struct {
	Factory      string
	Caller       string
	InitCodeHash string
	Miner        string
}

// DefaultConfig returns the compiled-in launcher configuration.
func DefaultConfig() Config {
	return Config{
		Factory:      DefaultFactory,
		Caller:       DefaultCaller,
		InitCodeHash: DefaultInitCodeHash,
		Miner:        DefaultMiner,
	}
}

// Invocation is a planned miner command line.
type Invocation struct {
	Path string
	Args []string
}

// Plan builds the miner command line for the given device and thresholds.
// An empty device selects the 3-argument CPU form; anything else selects the
// 6-argument form with the defaults filled in for missing thresholds.
func Plan(cfg Config, device, leadingZeroes, totalZeroes string) Invocation {
	args := []string{cfg.Factory, cfg.Caller, cfg.InitCodeHash}
	if device == "" {
		return Invocation{Path: cfg.Miner, Args: args}
	}
	if leadingZeroes == "" {
		leadingZeroes = DefaultLeadingZeroes
	}
	if totalZeroes == "" {
		totalZeroes = DefaultTotalZeroes
	}
	args = append(args, device, leadingZeroes, totalZeroes)
	return Invocation{Path: cfg.Miner, Args: args}
}

// Run parses the launcher's arguments, prints the configuration, spawns the
// miner and returns its exit code. The launcher validates nothing numeric;
// bad thresholds are the miner's problem to report.
func Run(args []string, outW, errW io.Writer) int {
	cfg := DefaultConfig()

	flagSet := flag.NewFlagSet("run", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	flagSet.Usage = func() {
		fmt.Fprint(errW, `
run - launch a CREATE2 salt search for a fixed deployment.

Usage:
  run [options] [DEVICE] [LEADING_ZEROS] [TOTAL_ZEROS]

Arguments:
  DEVICE         Optional compute device id. Omit it to search on CPU.
  LEADING_ZEROS  Optional leading zero-byte threshold, default 4.
  TOTAL_ZEROS    Optional total zero-byte threshold, default 6.

Options:
`)
		flagSet.PrintDefaults()
	}
	flagSet.StringVar(&cfg.Factory, "factory", cfg.Factory, "Factory address calling CREATE2.")
	flagSet.StringVar(&cfg.Caller, "caller", cfg.Caller, "Caller address embedded in every salt.")
	flagSet.StringVar(&cfg.InitCodeHash, "init-code-hash", cfg.InitCodeHash, "Keccak-256 hash of the init code.")
	flagSet.StringVar(&cfg.Miner, "miner", cfg.Miner, "Miner executable to spawn.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	device := flagSet.Arg(0)
	leadingZeroes := flagSet.Arg(1)
	totalZeroes := flagSet.Arg(2)

	fmt.Fprintf(outW, "Using factory address %s\n", cfg.Factory)
	fmt.Fprintf(outW, "Using caller address %s\n", cfg.Caller)
	fmt.Fprintf(outW, "Using initialization code hash %s\n", cfg.InitCodeHash)

	inv := Plan(cfg, device, leadingZeroes, totalZeroes)
	if device == "" {
		fmt.Fprintln(outW, "No device id given; searching with the CPU.")
		fmt.Fprintln(outW, "Hint: run <device> [leading_zeros] [total_zeros] selects a device search.")
	} else {
		fmt.Fprintf(outW, "Searching on device %s (leading zeros >= %s or total zeros >= %s).\n",
			device, inv.Args[4], inv.Args[5])
	}

	return spawn(inv, outW, errW)
}

// spawn executes the planned invocation, streaming its output through and
// translating its exit status.
func spawn(inv Invocation, outW, errW io.Writer) int {
	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = outW
	cmd.Stderr = errW

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		// The miner never started (not found, not executable, ...). Pass the
		// exec layer's message through untouched.
		fmt.Fprintln(errW, err)
		return 1
	}
	return 0
}
