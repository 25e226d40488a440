package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mattn/go-isatty"

	"github.com/iburimskiy/romantic-page/internal/config"
	"github.com/iburimskiy/romantic-page/internal/game"
	"github.com/iburimskiy/romantic-page/internal/hearts"
	"github.com/iburimskiy/romantic-page/internal/logging"
	"github.com/iburimskiy/romantic-page/internal/music"
	"github.com/iburimskiy/romantic-page/internal/photo"
	"github.com/iburimskiy/romantic-page/internal/quotes"
	"github.com/iburimskiy/romantic-page/internal/storage"
	"github.com/iburimskiy/romantic-page/internal/theme"
	"github.com/iburimskiy/romantic-page/internal/timer"
	"github.com/iburimskiy/romantic-page/internal/tui"
)

var version = "dev"

type options struct {
	configPath string
	tui        bool
	list       bool
	add        string
	ephemeral  bool
	version    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("romantic-page", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "path to a YAML config file (default configs/base.yaml if present)")
	fs.BoolVar(&o.tui, "tui", false, "run in the terminal instead of a window")
	fs.BoolVar(&o.list, "list", false, "print the stored quotes and exit")
	fs.StringVar(&o.add, "add", "", "add a quote and exit")
	fs.BoolVar(&o.ephemeral, "ephemeral", false, "keep quotes and photo in memory only")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	err := fs.Parse(args)
	return o, err
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "romantic-page:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.version {
		_, err := fmt.Fprintln(stdout, version)
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer closer.Close()
	slog.SetDefault(logger)

	store, err := openStore(cfg.Store, opts.ephemeral)
	if err != nil {
		return err
	}

	switch {
	case opts.list:
		return listQuotes(stdout, cfg, store, logger)
	case opts.add != "":
		return addQuote(stdout, cfg, store, logger, opts.add)
	case opts.tui:
		return runTerminal(cfg, store, logger)
	default:
		return runWindow(cfg, store, logger)
	}
}

func openStore(cfg config.StoreConfig, ephemeral bool) (storage.Store, error) {
	if ephemeral {
		return storage.NewMemoryStore(), nil
	}
	fs, err := storage.NewFileStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return fs, nil
}

// nopDisplay backs engines used by the one-shot commands.
type nopDisplay struct{}

func (nopDisplay) Hide()       {}
func (nopDisplay) Show(string) {}

func newEngine(cfg *config.Config, store storage.Store, display quotes.Display, sched *timer.Scheduler, logger *slog.Logger) *quotes.Engine {
	e := quotes.NewEngine(quotes.EngineConfig{
		Store:            store,
		Display:          display,
		Scheduler:        sched,
		Logger:           logger,
		RotationInterval: cfg.Quotes.RotationInterval,
		FadeDelay:        cfg.Quotes.FadeDelay,
		MinLength:        cfg.Quotes.MinLength,
	})
	e.Load()
	return e
}

func listQuotes(w io.Writer, cfg *config.Config, store storage.Store, logger *slog.Logger) error {
	e := newEngine(cfg, store, nopDisplay{}, timer.New(nil), logger)

	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	_, err := io.WriteString(w, formatList(e.Quotes(), styled, theme.Default()))
	return err
}

func formatList(items []string, styled bool, th *theme.Theme) string {
	var b strings.Builder
	if !styled {
		for i, q := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		return b.String()
	}

	num := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Accent)).Bold(true).Width(4)
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Heart))
	for i, q := range items {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, num.Render(fmt.Sprintf("%d.", i+1)), text.Render(q)))
		b.WriteByte('\n')
	}
	return b.String()
}

func addQuote(w io.Writer, cfg *config.Config, store storage.Store, logger *slog.Logger, text string) error {
	e := newEngine(cfg, store, nopDisplay{}, timer.New(nil), logger)
	if err := e.AddQuote(text); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d. %s\n", e.Len(), e.Current())
	return err
}

func loadTheme(path string, logger *slog.Logger) *theme.Theme {
	th, err := theme.LoadOrDefault(path)
	if err != nil {
		logger.Warn("theme not loaded, using default", slog.String("path", path), slog.Any("error", err))
	}
	return th
}

func runTerminal(cfg *config.Config, store storage.Store, logger *slog.Logger) error {
	sched := timer.New(nil)
	display := &tui.Display{}
	e := newEngine(cfg, store, display, sched, logger)
	e.StartRotation()

	m := tui.New(tui.Options{
		Engine:    e,
		Scheduler: sched,
		Display:   display,
		Pool:      hearts.NewPool(cfg.Hearts.Count, 0, 0, nil),
		Theme:     loadTheme(cfg.Theme.Path, logger),
		Logger:    logger,
	})
	return tui.Run(m)
}

func runWindow(cfg *config.Config, store storage.Store, logger *slog.Logger) error {
	sched := timer.New(nil)
	banner := game.NewBanner(cfg.Quotes.FadeDuration)
	e := newEngine(cfg, store, banner, sched, logger)
	e.StartRotation()

	p, err := photo.Restore(store)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("stored photo ignored", slog.Any("error", err))
	}
	var img image.Image
	if p != nil {
		img = p.Image
	}

	player := music.NewPlayer(cfg.Music.Path, nil, logger)
	defer func() {
		if err := player.Close(); err != nil {
			logger.Warn("closing music", slog.Any("error", err))
		}
	}()

	g := game.New(game.Options{
		Engine:      e,
		Scheduler:   sched,
		Banner:      banner,
		Pool:        hearts.NewPool(cfg.Hearts.Count, float64(cfg.Window.Width), float64(cfg.Window.Height), nil),
		Player:      player,
		Store:       store,
		Theme:       loadTheme(cfg.Theme.Path, logger),
		Photo:       img,
		SnapshotDir: cfg.Snapshot.Dir,
		Logger:      logger,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("window opening", slog.Int("quotes", e.Len()), slog.Bool("has_photo", img != nil))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
