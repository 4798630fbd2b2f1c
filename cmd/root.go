// Package cmd wires up the CLI flags and starts the pairing window.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"wfbbind/config"
	"wfbbind/internal/core"
	"wfbbind/internal/protocol"
	"wfbbind/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X wfbbind/cmd.version=0.2.0"
var version = "0.1.0" //nolint:gochecknoglobals

const name = "wfb_bind_rcv"

// Execute parses args and runs one pairing window.  The returned error
// carries the process exit status (see errors.ExitCode).
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// ── listener ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.Address, "ip", "i", cfg.Address, "Address to listen on")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	durationSec := int(cfg.ListenDuration / time.Second)
	fs.IntVarP(&durationSec, "listen-duration", "t", durationSec, "Seconds to listen before closing")
	fs.BoolVarP(&cfg.ForceListen, "force-listen", "f", cfg.ForceListen, "Keep listening after a successful BIND/UNBIND")
	fs.BoolVar(&cfg.FreeBind, "freebind", cfg.FreeBind, "Bind the address even if no interface has it yet (Linux)")

	// ── artifact ─────────────────────────────────────────────────
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory created for the artifact")
	fs.StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, "File written by BIND")

	// ── device utilities ─────────────────────────────────────────
	fs.StringVar(&cfg.ResetCommand, "reset-cmd", cfg.ResetCommand, "Program run by UNBIND")
	fs.StringVar(&cfg.InfoCommand, "info-cmd", cfg.InfoCommand, "Device info program run by INFO")
	fs.StringVar(&cfg.USBCommand, "usb-cmd", cfg.USBCommand, "USB enumeration program run by INFO")
	execTimeoutSec := int(cfg.ExecTimeout / time.Second)
	fs.IntVar(&execTimeoutSec, "exec-timeout", execTimeoutSec, "Seconds before a device program is killed (0 = never)")

	// ── output ───────────────────────────────────────────────────
	fs.BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "Debug output")
	envVerbose := cfg.Verbose // CountVarP zeroes its target
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate the configuration and exit")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("%s %s (%s)\n", name, version, protocol.Version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Arg(0))
	}

	cfg.Verbose += envVerbose
	cfg.ListenDuration = time.Duration(durationSec) * time.Second
	cfg.ExecTimeout = time.Duration(execTimeoutSec) * time.Second

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.LogVerbosity())

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	return core.Build(cfg, logger).Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `%s v%s - %s

Listens for a ground station for a limited time and accepts
VERSION, BIND <base64>, UNBIND and INFO commands.

Usage:
  %s [options]

Options:
`, name, version, protocol.Version, name)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Exit status:
  %d  window closed after a successful BIND (force-listen)
  %d  setup failure
  %d  BIND succeeded
  %d  UNBIND succeeded
  %d  window closed, nothing bound

Examples:
  %s                               Listen on %s:%d for %d seconds
  %s -t 60 --force-listen          Accept several BINDs for a minute
  %s -i 127.0.0.1 -p 5555 --debug  Local testing
`,
		protocol.ExitOK, protocol.ExitFatal, protocol.ExitBound,
		protocol.ExitUnbound, protocol.ExitNothingBound,
		name, config.DefaultAddress, config.DefaultPort, int(config.DefaultListenDuration/time.Second),
		name, name)
}
