package provision

import (
	"errors"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/browserkit/pkg/logging"
)

// Driver is the automation backend that owns the CDP transport and the
// browser process. PlaywrightDriver is the production implementation.
type Driver interface {
	// ConnectOverCDP attaches to a running browser at endpoint.
	ConnectOverCDP(endpoint string) (playwright.Browser, error)

	// Launch spawns a new Chromium process with opts.
	Launch(opts playwright.BrowserTypeLaunchOptions) (playwright.Browser, error)
}

// Logger receives the provisioning progress and failure messages.
// *logging.Logger satisfies it.
type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// ConnectionResult is a provisioned browser and how it was obtained.
type ConnectionResult struct {
	// Browser is owned by the caller, who is responsible for closing it.
	Browser playwright.Browser

	// IsRemote is true when Browser was attached over a CDP endpoint.
	IsRemote bool
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithLogger sets the logger used for progress and failure messages.
func WithLogger(logger Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// WithExecutableResolver sets how the local Chromium override path is found.
func WithExecutableResolver(resolve ExecutableResolver) Option {
	return func(p *Provisioner) {
		p.resolveExecutable = resolve
	}
}

// errNoBrowser is reported when a driver returns neither a browser nor an error.
var errNoBrowser = errors.New("driver returned no browser")

var (
	defaultLogger     Logger
	defaultLoggerOnce sync.Once
)

// getDefaultLogger returns the "provision" component logger shared by every
// Provisioner created without WithLogger. It is opened once per process.
func getDefaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		logger, err := logging.NewLogger("provision")
		if err != nil {
			logger.Warnf("Failed to initialize provision logger, using stderr fallback: %v", err)
		}
		defaultLogger = logger
	})
	return defaultLogger
}

// Provisioner obtains browser handles from a Driver. It holds no per-call
// state and may be shared between goroutines.
type Provisioner struct {
	driver            Driver
	logger            Logger
	resolveExecutable ExecutableResolver
}

// NewProvisioner creates a provisioner backed by driver. Unless overridden,
// messages go to the shared "provision" component logger and the executable override
// is read from the process environment.
func NewProvisioner(driver Driver, opts ...Option) *Provisioner {
	p := &Provisioner{driver: driver}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = getDefaultLogger()
	}
	if p.resolveExecutable == nil {
		p.resolveExecutable = EnvExecutableResolver(nil)
	}

	return p
}

// ConnectToRemote attaches to the browser at endpoint. The endpoint is passed
// to the driver unmodified; ws:// and wss:// URLs, with or without a token
// query parameter, are the expected forms.
func (p *Provisioner) ConnectToRemote(endpoint string) (playwright.Browser, error) {
	p.logger.Infof("Connecting to remote browser at %s...", endpoint)

	browser, err := p.driver.ConnectOverCDP(endpoint)
	if err == nil && browser == nil {
		err = errNoBrowser
	}
	if err != nil {
		p.logger.Errorf("Failed to connect to remote browser: %v", err)
		return nil, &RemoteConnectionError{Err: err}
	}

	p.logger.Infof("Successfully connected to remote browser")
	return browser, nil
}

// LaunchLocal spawns a headless Chromium with ChromiumLaunchArgs. A failure
// is final; callers wanting an alternative should fall back to
// ConnectToRemote themselves.
func (p *Provisioner) LaunchLocal() (playwright.Browser, error) {
	p.logger.Infof("Starting local browser with Playwright...")

	opts := p.launchOptions()

	browser, err := p.driver.Launch(opts)
	if err == nil && browser == nil {
		err = errNoBrowser
	}
	if err != nil {
		p.logger.Errorf("Failed to start local browser: %v", err)
		return nil, &LocalLaunchError{Err: err}
	}

	p.logger.Infof("Local browser started successfully")
	return browser, nil
}

// launchOptions builds the launch configuration for a single LaunchLocal call.
func (p *Provisioner) launchOptions() playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     ChromiumLaunchArgs(),
	}

	if path := p.resolveExecutable(); path != "" {
		p.logger.Infof("Using system Chromium at: %s", path)
		opts.ExecutablePath = playwright.String(path)
	} else {
		p.logger.Infof("Using Playwright's default Chromium")
	}

	return opts
}

// Acquire connects to endpoint when it is non-empty and launches a local
// browser otherwise. There is no fallback between the two.
func (p *Provisioner) Acquire(endpoint string) (*ConnectionResult, error) {
	if endpoint != "" {
		browser, err := p.ConnectToRemote(endpoint)
		if err != nil {
			return nil, err
		}
		return &ConnectionResult{Browser: browser, IsRemote: true}, nil
	}

	browser, err := p.LaunchLocal()
	if err != nil {
		return nil, err
	}
	return &ConnectionResult{Browser: browser, IsRemote: false}, nil
}
