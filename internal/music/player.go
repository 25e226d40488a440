// Package music plays the looping background track behind a pause toggle.
package music

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	LabelPlay  = "Putar Musik"
	LabelPause = "Matikan Musik"
)

var (
	// ErrNoTrack is returned by Toggle when no track path is configured.
	ErrNoTrack = errors.New("no music track configured")
	// ErrUnsupported is returned for files beep cannot decode.
	ErrUnsupported = errors.New("unsupported audio format")
)

// Output is the audio sink. The speaker package satisfies it through
// SpeakerOutput; tests pull samples from a fake.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// SpeakerOutput routes playback to the system speaker.
type SpeakerOutput struct{}

func (SpeakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerOutput) Clear()               { speaker.Clear() }
func (SpeakerOutput) Lock()                { speaker.Lock() }
func (SpeakerOutput) Unlock()              { speaker.Unlock() }

// Player owns one looping track. It starts paused and loads the file on the
// first Toggle. Methods are called from the UI loop; the audio goroutine only
// touches the tap and the Ctrl's pause flag.
type Player struct {
	path   string
	out    Output
	logger *slog.Logger

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *levelTap

	playing bool
	level   float64
}

// NewPlayer creates a paused player for path. A nil out uses the speaker.
func NewPlayer(path string, out Output, logger *slog.Logger) *Player {
	if out == nil {
		out = SpeakerOutput{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{path: path, out: out, logger: logger}
}

// HasTrack reports whether a track path is configured.
func (p *Player) HasTrack() bool { return p.path != "" }

// Toggle flips between playing and paused and returns the new state. Load
// failures leave the player paused.
func (p *Player) Toggle() (bool, error) {
	if p.ctrl == nil {
		if err := p.load(); err != nil {
			return false, err
		}
	}

	p.out.Lock()
	p.playing = !p.playing
	p.ctrl.Paused = !p.playing
	p.out.Unlock()

	p.logger.Debug("music toggled", slog.Bool("playing", p.playing))
	return p.playing, nil
}

// Playing reports whether audio is currently audible.
func (p *Player) Playing() bool { return p.playing }

// Pressed mirrors the toggle button's pressed state.
func (p *Player) Pressed() bool { return p.playing }

// Label is the toggle button caption for the current state.
func (p *Player) Label() string {
	if p.playing {
		return LabelPause
	}
	return LabelPlay
}

// UpdateLevel recomputes the smoothed loudness from recently played samples
// and returns it. Call once per frame.
func (p *Player) UpdateLevel() float64 {
	target := 0.0
	if p.playing && p.tap != nil {
		target = rms(p.tap.snapshot(levelWindow))
	}
	p.level = smoothingFactor*p.level + (1-smoothingFactor)*target
	return p.level
}

// Level returns the last value computed by UpdateLevel.
func (p *Player) Level() float64 { return p.level }

// Position returns how far into the current loop playback is.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	pos := p.streamer.Position()
	p.out.Unlock()
	return p.format.SampleRate.D(pos)
}

// Close stops playback and releases the file.
func (p *Player) Close() error {
	if p.ctrl == nil {
		return nil
	}
	p.out.Lock()
	p.out.Clear()
	p.out.Unlock()

	var errs []error
	if p.streamer != nil {
		errs = append(errs, p.streamer.Close())
	}
	if p.file != nil {
		// The decoders close the file with the streamer; a second close is harmless.
		if err := p.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	p.ctrl, p.streamer, p.file, p.tap = nil, nil, nil, nil
	p.playing = false
	return errors.Join(errs...)
}

func (p *Player) load() error {
	if p.path == "" {
		return ErrNoTrack
	}

	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}

	streamer, format, err := decode(f, filepath.Ext(p.path))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(p.path), err)
	}

	// streamer -> loop -> tap -> ctrl
	t := newLevelTap(beep.Loop(-1, streamer), ringSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: true}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
		_ = streamer.Close()
		return fmt.Errorf("init speaker: %w", err)
	}
	p.out.Play(ctrl)

	p.file, p.streamer, p.format, p.ctrl, p.tap = f, streamer, format, ctrl, t
	p.logger.Info("music loaded",
		slog.String("track", filepath.Base(p.path)),
		slog.Int("sample_rate", int(format.SampleRate)),
	)
	return nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%q: %w", ext, ErrUnsupported)
	}
}
