package provision

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// DriverOptions configures the Playwright driver.
type DriverOptions struct {
	// Install downloads the driver and the bundled Chromium before starting.
	Install bool

	// Verbose forwards driver install and startup output to stdout/stderr.
	Verbose bool
}

// PlaywrightDriver implements Driver on top of a running Playwright driver
// process.
type PlaywrightDriver struct {
	pw       *playwright.Playwright
	stopOnce sync.Once
	stopErr  error
}

// NewPlaywrightDriver optionally installs and then starts Playwright.
func NewPlaywrightDriver(opts DriverOptions) (*PlaywrightDriver, error) {
	runOpts := runOptions(opts)

	if opts.Install {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &PlaywrightDriver{pw: pw}, nil
}

// runOptions maps DriverOptions to Playwright's run options. Output is
// discarded unless Verbose is set.
func runOptions(opts DriverOptions) *playwright.RunOptions {
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  opts.Verbose,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	if opts.Verbose {
		runOpts.Stdout = os.Stdout
		runOpts.Stderr = os.Stderr
	}
	return runOpts
}

var _ Driver = (*PlaywrightDriver)(nil)

// ConnectOverCDP attaches to a running Chromium over CDP.
func (d *PlaywrightDriver) ConnectOverCDP(endpoint string) (playwright.Browser, error) {
	return d.pw.Chromium.ConnectOverCDP(endpoint)
}

// Launch starts a new Chromium process.
func (d *PlaywrightDriver) Launch(opts playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	return d.pw.Chromium.Launch(opts)
}

// Stop shuts down the driver process. Browsers launched through it are
// terminated as well. Safe to call multiple times.
func (d *PlaywrightDriver) Stop() error {
	d.stopOnce.Do(func() {
		if err := d.pw.Stop(); err != nil {
			d.stopErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	})
	return d.stopErr
}
