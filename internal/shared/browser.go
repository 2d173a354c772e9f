package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Swappable for tests that exercise the unsupported-platform branch.
var goos = func() string { return runtime.GOOS }

// openers maps GOOS to the command that hands a URL to the default browser.
var openers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"cmd", "/c", "start"},
}

// OpenBrowser opens url, typically a song's raw audio stream, in the
// system's default browser.
func OpenBrowser(url string) error {
	opener, ok := openers[goos()]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", goos())
	}

	args := append(opener[1:], url)
	if err := exec.Command(opener[0], args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
