// Package launch performs the outward-facing actions of a selection:
// opening URLs and starting installed commands.
package launch

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/google/shlex"
	"github.com/pkg/browser"
)

// Opener opens URLs either through a user-configured browser command or
// the system default handler.
type Opener struct {
	logger *slog.Logger

	// browserArgs is the parsed dedicated-browser command line; the URL is
	// appended as the final argument. Empty means system default.
	browserArgs []string
}

// NewOpener parses browserCmd (a shell-ish command line, may be empty) and
// returns an Opener. An unparseable command is rejected.
func NewOpener(browserCmd string, logger *slog.Logger) (*Opener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var args []string
	if browserCmd != "" {
		parsed, err := shlex.Split(browserCmd)
		if err != nil {
			return nil, fmt.Errorf("parse browser command %q: %w", browserCmd, err)
		}
		args = parsed
	}
	return &Opener{logger: logger, browserArgs: args}, nil
}

// OpenURL opens url with the dedicated browser command when one is
// configured. If the dedicated command fails to start, it falls back to
// the system default handler rather than surfacing the error.
func (o *Opener) OpenURL(url string) error {
	if len(o.browserArgs) > 0 {
		args := append(append([]string{}, o.browserArgs...), url)
		cmd := exec.Command(args[0], args[1:]...)
		if err := cmd.Start(); err == nil {
			// Detach; the browser owns its own lifecycle.
			go func() { _ = cmd.Wait() }()
			return nil
		} else {
			o.logger.Warn("dedicated browser failed, using system default",
				"command", o.browserArgs[0], "error", err)
		}
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	return nil
}

// LaunchApp starts the executable at path, detached from the launcher.
func (o *Opener) LaunchApp(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
