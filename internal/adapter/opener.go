package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ArtworkPageURL is the public web page for an artwork id.
const ArtworkPageURL = "https://www.artic.edu/artworks/%d"

// Opener opens artwork pages in a web browser
type Opener struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger

	// start runs the command without waiting; replaced in tests
	start func(name string, args ...string) error
}

// NewOpener creates an Opener. An empty command uses the system default
// handler (open, xdg-open or start).
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   startCommand,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// OpenArtwork opens the web page of the artwork with the given id.
func (o *Opener) OpenArtwork(id int) error {
	return o.Open(fmt.Sprintf(ArtworkPageURL, id))
}

// Open opens url in the configured browser or the system default
func (o *Opener) Open(url string) error {
	name, args := o.commandFor(runtime.GOOS, url)
	o.logger.Info("opening url", "command", name, "url", url)

	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor resolves the command line used to open url on goos.
func (o *Opener) commandFor(goos, url string) (string, []string) {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		return o.command, args
	}

	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
