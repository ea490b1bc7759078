package provision

// chromiumLaunchArgs is the fixed flag list passed to every locally spawned
// Chromium. The order is part of the launch contract.
var chromiumLaunchArgs = [...]string{
	"--headless=new",
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--disable-web-security",
	"--ignore-certificate-errors",
	"--ignore-ssl-errors",
	"--disable-features=VizDisplayCompositor",
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
}

// ChromiumLaunchArgs returns the command-line flags used for local launches.
// Each call returns a fresh slice, so callers may modify it freely.
func ChromiumLaunchArgs() []string {
	args := make([]string, len(chromiumLaunchArgs))
	copy(args, chromiumLaunchArgs[:])
	return args
}
