package provision

import "os"

// Environment variables consulted for a Chromium executable override.
const (
	EnvPuppeteerExecutablePath = "PUPPETEER_EXECUTABLE_PATH"
	EnvChromiumPath            = "CHROMIUM_PATH"
	EnvGoogleChromeBin         = "GOOGLE_CHROME_BIN"
)

// ExecutableResolver returns the Chromium executable to launch, or an empty
// string to use the driver's bundled browser.
type ExecutableResolver func() string

// ExecutablePathEnvVars returns the override variables in priority order.
func ExecutablePathEnvVars() []string {
	return []string{
		EnvPuppeteerExecutablePath,
		EnvChromiumPath,
		EnvGoogleChromeBin,
	}
}

// EnvExecutableResolver builds a resolver backed by getenv. The variables are
// read on every call, not when the resolver is created.
func EnvExecutableResolver(getenv func(string) string) ExecutableResolver {
	if getenv == nil {
		getenv = os.Getenv
	}
	return func() string {
		for _, key := range ExecutablePathEnvVars() {
			if path := getenv(key); path != "" {
				return path
			}
		}
		return ""
	}
}
