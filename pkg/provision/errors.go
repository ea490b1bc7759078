package provision

import "strings"

// localLaunchSuggestions is appended to every local launch failure. It does
// not depend on the underlying cause.
var localLaunchSuggestions = []string{
	"- Use a remote browser: set IB_BROWSER_ENDPOINT=ws://browser:3000",
	"- Use a browser service: set IB_BROWSER_ENDPOINT=wss://chrome.browserless.io?token=YOUR_TOKEN",
	"- Install Chromium locally: apk add chromium",
	"- Set system Chromium path: PUPPETEER_EXECUTABLE_PATH=/usr/bin/chromium-browser",
	"- Disable headless mode: set IB_HEADLESS_MODE=false",
}

// LocalLaunchSuggestions returns the remediation lines attached to a
// LocalLaunchError.
func LocalLaunchSuggestions() []string {
	out := make([]string, len(localLaunchSuggestions))
	copy(out, localLaunchSuggestions)
	return out
}

// causeText returns the message of err, tolerating a nil cause.
func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// RemoteConnectionError is returned when attaching to a remote browser fails.
type RemoteConnectionError struct {
	Err error
}

func (e *RemoteConnectionError) Error() string {
	return "Remote browser connection failed: " + causeText(e.Err)
}

func (e *RemoteConnectionError) Unwrap() error {
	return e.Err
}

// LocalLaunchError is returned when spawning a local browser fails. Its
// message carries troubleshooting steps for the operator.
type LocalLaunchError struct {
	Err error
}

func (e *LocalLaunchError) Error() string {
	var b strings.Builder
	b.WriteString("Local browser startup failed: ")
	b.WriteString(causeText(e.Err))
	b.WriteString("\n\nSuggestions:\n")
	b.WriteString(strings.Join(localLaunchSuggestions, "\n"))
	return b.String()
}

func (e *LocalLaunchError) Unwrap() error {
	return e.Err
}
