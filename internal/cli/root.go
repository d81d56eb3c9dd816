package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/gallery/internal/adapter"
	"github.com/mmcdole/gallery/internal/adapter/source/artic"
	"github.com/mmcdole/gallery/internal/catalog"
	"github.com/mmcdole/gallery/internal/store"
	"github.com/mmcdole/gallery/internal/tui"
)

// ErrNotTerminal is returned when the browser is started without a TTY.
var ErrNotTerminal = errors.New("gallery needs an interactive terminal; use 'gallery plan' for scripted output")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// options are the persistent flags shared by every command
type options struct {
	debug    bool
	pageSize int
}

// NewRootCmd creates the root command. Running it without a subcommand
// starts the artwork browser.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Browse the Art Institute of Chicago collection",
		Long:          "gallery is a terminal browser over the Art Institute of Chicago artwork catalog.\nSelections are kept across pages and 'select first N' spans the whole collection.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			return runBrowser(version, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().IntVar(&opts.pageSize, "page-size", 0, "artworks per page (0 = use config)")

	cmd.AddCommand(newPlanCmd(opts), newCacheCmd())

	return cmd
}

// loadConfig reads the config and applies flag overrides
func loadConfig(opts *options) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.pageSize > 0 {
		cfg.Browse.PageSize = opts.pageSize
	}
	if opts.debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging opens the log file, falling back to a discarding logger
func setupLogging(cfg *adapter.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		return adapter.NullLogger(), io.NopCloser(nil)
	}
	logger, _ = adapter.WithSession(logger)
	return logger, closer
}

func runBrowser(version string, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer := setupLogging(cfg)
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting gallery", "version", version, "pageSize", cfg.Browse.PageSize)

	client := artic.NewClient(cfg.Server.URL, logger,
		artic.WithTimeout(cfg.Server.Timeout),
		artic.WithUserAgent(cfg.Server.UserAgent),
		artic.WithFields(cfg.Browse.Fields),
	)

	pages, err := store.NewPageStore(cfg.CacheDir(), cfg.Server.URL)
	if err != nil {
		// Browsing still works without the disk cache
		logger.Warn("page cache unavailable, using memory only", "error", err)
		pages, _ = store.NewPageStore("", cfg.Server.URL)
	}
	defer pages.Close()

	commands := catalog.NewCommands(client, pages, cfg.Browse.PageSize, cfg.Cache.TTL, logger)
	queries := catalog.NewQueries(pages, cfg.Browse.PageSize)
	opener := adapter.NewOpener(cfg.UI.Browser, cfg.UI.BrowserArgs, logger)

	model := tui.NewModel(commands, queries, opener, logger)
	model.ShowKeyHelp = cfg.UI.ShowHelp

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
