package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/crunchworks/create2crunch/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("create2crunch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
create2crunch - a CREATE2 salt miner for gas-efficient contract addresses.

Usage:
  create2crunch [options] FACTORY CALLER INIT_CODE_HASH [DEVICE] [LEADING] [TOTAL]

Arguments:
  FACTORY         Hex address of the contract that will call CREATE2.
  CALLER          Hex address of the caller of that contract (the first 20
                  bytes of every salt; use the null address if frontrunning
                  protection does not apply).
  INIT_CODE_HASH  Keccak-256 hash of the initialization code, hex encoded.
  DEVICE          Optional device id. 255 (the default) selects the
                  reward-table search; any other value selects the
                  threshold search.
  LEADING         Optional leading zero-byte threshold, default 3.
  TOTAL           Optional total zero-byte threshold, default 5.

Options:
`)
		flagSet.PrintDefaults()
	}

	jobFlag := flagSet.String("job", "", "Path to an HCL job file supplying the arguments instead.")
	outputFlag := flagSet.String("output", "", "Results file path. Defaults to efficient_addresses.txt.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent search workers. 0 means one per CPU.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 && *jobFlag == "" {
		slog.Debug("No arguments or job file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Args:            flagSet.Args(),
		JobPath:         *jobFlag,
		OutputPath:      *outputFlag,
		Workers:         *workersFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
