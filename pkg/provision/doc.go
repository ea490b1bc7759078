// Package provision obtains a working Chromium handle for downstream automation.
//
// A Provisioner either attaches to an already running browser over a Chrome
// DevTools Protocol endpoint, or spawns a local headless Chromium with a fixed
// set of launch flags. The CDP protocol itself is handled entirely by
// playwright-go; this package only decides how the browser is obtained and
// turns failures into actionable errors.
//
// # Local launch
//
// LaunchLocal always runs headless with the flags returned by
// ChromiumLaunchArgs. The Chromium binary can be overridden through the
// environment, first non-empty value wins:
//
//   - PUPPETEER_EXECUTABLE_PATH
//   - CHROMIUM_PATH
//   - GOOGLE_CHROME_BIN
//
// When none is set the binary bundled with the Playwright driver is used.
//
// # Ownership
//
// Every call produces an independent browser. The caller owns the returned
// handle and must close it; the Provisioner keeps no reference to it.
//
// # Example Usage
//
//	driver, err := provision.NewPlaywrightDriver(provision.DriverOptions{Install: true})
//	if err != nil {
//	    return err
//	}
//	defer driver.Stop()
//
//	p := provision.NewProvisioner(driver)
//	result, err := p.Acquire(os.Getenv("IB_BROWSER_ENDPOINT"))
//	if err != nil {
//	    return err
//	}
//	defer result.Browser.Close()
package provision
