// Package quotes owns the rotating quote collection: loading and saving it,
// validating additions, and driving the timed fade between quotes.
package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iburimskiy/romantic-page/internal/storage"
	"github.com/iburimskiy/romantic-page/internal/timer"
)

// Defaults used when the engine is configured with zero values.
const (
	DefaultRotationInterval = 5000 * time.Millisecond
	DefaultFadeDelay        = 600 * time.Millisecond
	DefaultMinLength        = 3
)

// DefaultQuotes seed an empty or unreadable collection.
var DefaultQuotes = []string{
	"Kau adalah cahaya di setiap langkahku.",
	"Bersamamu, dunia terasa sempurna.",
	"Cinta kita adalah cerita indah yang abadi.",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Display is the element the current quote is shown in. Hide starts the exit
// transition, Show swaps the text and starts the entrance transition.
type Display interface {
	Hide()
	Show(text string)
}

// Engine holds the quote collection and the current index. It must only be
// used from the goroutine that runs its scheduler.
type Engine struct {
	quotes  []string
	index   int
	started bool

	store     storage.Store
	display   Display
	scheduler *timer.Scheduler
	logger    *slog.Logger

	key              string
	rotationInterval time.Duration
	fadeDelay        time.Duration
	minLength        int
}

// EngineConfig contains the engine's collaborators and timings.
type EngineConfig struct {
	Store     storage.Store
	Display   Display
	Scheduler *timer.Scheduler
	Logger    *slog.Logger

	// Key defaults to storage.KeyQuotes.
	Key              string
	RotationInterval time.Duration
	FadeDelay        time.Duration
	MinLength        int
}

// NewEngine creates an engine holding the default quotes. Call Load to read
// the stored collection.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Store == nil {
		panic("quotes: Store is required")
	}
	if cfg.Display == nil {
		panic("quotes: Display is required")
	}
	if cfg.Scheduler == nil {
		panic("quotes: Scheduler is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Key == "" {
		cfg.Key = storage.KeyQuotes
	}
	if cfg.RotationInterval <= 0 {
		cfg.RotationInterval = DefaultRotationInterval
	}
	if cfg.FadeDelay <= 0 {
		cfg.FadeDelay = DefaultFadeDelay
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}

	return &Engine{
		quotes:           append([]string(nil), DefaultQuotes...),
		store:            cfg.Store,
		display:          cfg.Display,
		scheduler:        cfg.Scheduler,
		logger:           cfg.Logger,
		key:              cfg.Key,
		rotationInterval: cfg.RotationInterval,
		fadeDelay:        cfg.FadeDelay,
		minLength:        cfg.MinLength,
	}
}

// Load replaces the collection with the stored one. A missing key, a payload
// that is not a JSON array of non-blank strings, or an empty array all yield
// the defaults. Errors are logged, never returned.
func (e *Engine) Load() {
	e.quotes = e.readStored()
	if e.index >= len(e.quotes) {
		e.index = len(e.quotes) - 1
	}
}

func (e *Engine) readStored() []string {
	raw, err := e.store.Get(e.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.Debug("no stored quotes, using defaults", slog.String("key", e.key))
		} else {
			e.logger.Warn("reading stored quotes failed, using defaults",
				slog.String("key", e.key),
				slog.Any("error", err),
			)
		}
		return append([]string(nil), DefaultQuotes...)
	}

	stored, err := decodeQuotes(raw)
	if err != nil {
		e.logger.Warn("stored quotes are malformed, using defaults",
			slog.String("key", e.key),
			slog.Any("error", err),
		)
		return append([]string(nil), DefaultQuotes...)
	}
	if len(stored) == 0 {
		return append([]string(nil), DefaultQuotes...)
	}

	e.logger.Debug("loaded stored quotes", slog.Int("count", len(stored)))
	return stored
}

// decodeQuotes parses a JSON array of non-blank strings. A null or blank
// entry makes the whole payload malformed.
func decodeQuotes(raw string) ([]string, error) {
	var entries []*string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	quotes := make([]string, 0, len(entries))
	for i, q := range entries {
		if q == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
		if strings.TrimSpace(*q) == "" {
			return nil, fmt.Errorf("entry %d is blank", i)
		}
		quotes = append(quotes, *q)
	}
	return quotes, nil
}

// Save writes the collection to the store. Failures are logged.
func (e *Engine) Save() {
	data, err := json.Marshal(e.quotes)
	if err != nil {
		e.logger.Error("encoding quotes failed", slog.Any("error", err))
		return
	}
	if err := e.store.Set(e.key, string(data)); err != nil {
		e.logger.Error("saving quotes failed",
			slog.String("key", e.key),
			slog.Any("error", err),
		)
	}
}

// ShowCurrent hides the display now and, after the fade delay, shows the
// quote at the index current at the time of this call. Overlapping calls are
// not cancelled; whichever swap was scheduled last lands last.
func (e *Engine) ShowCurrent() {
	e.display.Hide()
	idx := e.index
	e.scheduler.AfterFunc(e.fadeDelay, func() {
		e.display.Show(e.quotes[idx])
	})
}

// StartRotation shows the current quote and starts advancing every rotation
// interval. Rotation has no stop; calling StartRotation again is a no-op.
func (e *Engine) StartRotation() {
	if e.started {
		return
	}
	e.started = true

	e.ShowCurrent()
	e.scheduler.Every(e.rotationInterval, e.Advance)
}

// Advance moves to the next quote, wrapping around, and shows it.
func (e *Engine) Advance() {
	e.index = (e.index + 1) % len(e.quotes)
	e.ShowCurrent()
}

// AddQuote validates text, appends it, saves, and shows it immediately.
// The returned error is a *ValidationError when text is too short.
func (e *Engine) AddQuote(text string) error {
	quote, err := e.Validate(text)
	if err != nil {
		return err
	}

	e.quotes = append(e.quotes, quote)
	e.Save()
	e.index = len(e.quotes) - 1
	e.logger.Info("quote added",
		slog.Int("index", e.index),
		slog.Int("count", len(e.quotes)),
	)
	e.ShowCurrent()
	return nil
}

// Validate returns the trimmed quote, or a *ValidationError if it is shorter
// than the minimum length in characters.
func (e *Engine) Validate(text string) (string, error) {
	quote := strings.TrimSpace(text)
	if err := validate.Var(quote, fmt.Sprintf("min=%d", e.minLength)); err != nil {
		return "", &ValidationError{
			Message: fmt.Sprintf("Kata-kata harus minimal %d karakter.", e.minLength),
			Value:   quote,
		}
	}
	return quote, nil
}

// Quotes returns a copy of the collection in rotation order.
func (e *Engine) Quotes() []string {
	return append([]string(nil), e.quotes...)
}

// Len returns the collection size.
func (e *Engine) Len() int { return len(e.quotes) }

// Index returns the current index.
func (e *Engine) Index() int { return e.index }

// Current returns the quote at the current index.
func (e *Engine) Current() string { return e.quotes[e.index] }
