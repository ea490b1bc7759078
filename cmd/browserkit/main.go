// Package main provides the browserkit CLI, which provisions a Chromium
// instance the same way automation services do and reports the result. It is
// meant for checking a deployment's browser setup.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/browserkit/pkg/config"
	"github.com/entrhq/browserkit/pkg/logging"
	"github.com/entrhq/browserkit/pkg/provision"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Endpoint    string
	ConfigFile  string
	Timeout     time.Duration
	Install     bool
	LogStderr   bool
	WriteConfig string
	ShowVersion bool

	// set records which flags were given explicitly so they can override
	// the config file.
	set map[string]bool
}

func main() {
	cliConfig, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if cliConfig.ShowVersion {
		fmt.Printf("browserkit v%s\n", version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cliConfig, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags(args []string) (*CLIConfig, error) {
	cliConfig := &CLIConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet("browserkit", flag.ContinueOnError)
	fs.StringVar(&cliConfig.Endpoint, "endpoint", "", "Remote CDP endpoint (ws:// or wss://); overrides "+config.EnvBrowserEndpoint)
	fs.StringVar(&cliConfig.ConfigFile, "config", "", "Path to configuration file (YAML)")
	fs.DurationVar(&cliConfig.Timeout, "timeout", 0, "How long to wait for the browser (default from config, 60s)")
	fs.BoolVar(&cliConfig.Install, "install", true, "Install the Playwright driver and Chromium before starting")
	fs.BoolVar(&cliConfig.LogStderr, "log-stderr", false, "Write logs to stderr instead of the session log file")
	fs.StringVar(&cliConfig.WriteConfig, "write-config", "", "Write the resolved configuration to this YAML file and exit")
	fs.BoolVar(&cliConfig.ShowVersion, "version", false, "Show version and exit")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "browserkit - provision a Chromium browser for automation\n\n")
		fmt.Fprintf(out, "Usage: browserkit [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nEnvironment:\n")
		fmt.Fprintf(out, "  %s      remote CDP endpoint\n", config.EnvBrowserEndpoint)
		for _, key := range provision.ExecutablePathEnvVars() {
			fmt.Fprintf(out, "  %s  Chromium executable override\n", key)
		}
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  # Launch a local headless Chromium\n")
		fmt.Fprintf(out, "  browserkit\n\n")
		fmt.Fprintf(out, "  # Attach to a remote browser\n")
		fmt.Fprintf(out, "  browserkit -endpoint ws://browser:3000\n\n")
		fmt.Fprintf(out, "  # Save the effective settings for later runs\n")
		fmt.Fprintf(out, "  browserkit -endpoint ws://browser:3000 -write-config browserkit.yaml\n\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		cliConfig.set[f.Name] = true
	})

	return cliConfig, nil
}

// resolveConfig merges the config file, environment and explicit flags.
func resolveConfig(cliConfig *CLIConfig, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(cliConfig.ConfigFile, getenv)
	if err != nil {
		return nil, err
	}

	if cliConfig.set["endpoint"] {
		cfg.Endpoint = cliConfig.Endpoint
	}
	if cliConfig.set["timeout"] {
		cfg.Timeout = cliConfig.Timeout
	}
	if cliConfig.set["install"] {
		cfg.InstallDriver = cliConfig.Install
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cliConfig *CLIConfig, cfg *config.Config) (*logging.Logger, error) {
	switch {
	case cfg.Logging.Verbosity == "quiet":
		return logging.NewWriterLogger("cli", io.Discard), nil
	case cliConfig.LogStderr:
		return logging.NewWriterLogger("cli", os.Stderr), nil
	default:
		return logging.NewLogger("cli")
	}
}

// run provisions one browser, prints what was obtained and releases it.
func run(ctx context.Context, cliConfig *CLIConfig, out io.Writer) error {
	cfg, err := resolveConfig(cliConfig, os.Getenv)
	if err != nil {
		return err
	}

	if cliConfig.WriteConfig != "" {
		if err := cfg.Save(cliConfig.WriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(out, "config written to %s\n", cliConfig.WriteConfig)
		return nil
	}

	logger, err := newLogger(cliConfig, cfg)
	if err != nil {
		logger.Warnf("Failed to initialize file logging, using stderr fallback: %v", err)
	}
	defer logger.Close()

	driver, err := provision.NewPlaywrightDriver(provision.DriverOptions{
		// Remote runs never spawn a local browser, so there is nothing to install.
		Install: cfg.InstallDriver && !cfg.IsRemote(),
		Verbose: cfg.Logging.Verbosity == "verbose",
	})
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := driver.Stop(); stopErr != nil {
			logger.Errorf("%v", stopErr)
		}
	}()

	provisioner := provision.NewProvisioner(driver, provision.WithLogger(logger))

	result, err := acquireWithTimeout(ctx, provisioner, cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := result.Browser.Close(); closeErr != nil {
			logger.Errorf("Failed to close browser: %v", closeErr)
		}
	}()

	fmt.Fprintf(out, "browser: %s\n", result.Browser.Version())
	fmt.Fprintf(out, "remote=%t\n", result.IsRemote)
	fmt.Fprintf(out, "session: %s\n", logger.SessionID())
	if logPath := logger.LogPath(); logPath != "" {
		fmt.Fprintf(out, "log: %s\n", logPath)
	}
	return nil
}

// acquirer is the part of the provisioner used by the CLI.
type acquirer interface {
	Acquire(endpoint string) (*provision.ConnectionResult, error)
}

type acquireResult struct {
	result *provision.ConnectionResult
	err    error
}

var errTimeout = errors.New("timed out waiting for browser")

// acquireWithTimeout races Acquire against the timeout and ctx. Provisioning
// itself cannot be cancelled, so a browser that arrives after the caller gave
// up is closed in the background.
func acquireWithTimeout(ctx context.Context, p acquirer, endpoint string, timeout time.Duration) (*provision.ConnectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan acquireResult, 1)
	go func() {
		result, err := p.Acquire(endpoint)
		done <- acquireResult{result: result, err: err}
	}()

	select {
	case r := <-done:
		return r.result, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.err == nil && r.result != nil {
				_ = r.result.Browser.Close()
			}
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", errTimeout, timeout)
		}
		return nil, ctx.Err()
	}
}
