// Package game is the desktop window: falling hearts, the rotating quote,
// the photo, and the controls for adding quotes and playing music.
package game

import (
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"

	"github.com/iburimskiy/romantic-page/internal/fonts"
	"github.com/iburimskiy/romantic-page/internal/hearts"
	"github.com/iburimskiy/romantic-page/internal/music"
	"github.com/iburimskiy/romantic-page/internal/photo"
	"github.com/iburimskiy/romantic-page/internal/quotes"
	"github.com/iburimskiy/romantic-page/internal/snapshot"
	"github.com/iburimskiy/romantic-page/internal/storage"
	"github.com/iburimskiy/romantic-page/internal/theme"
	"github.com/iburimskiy/romantic-page/internal/timer"
)

const (
	frame      = time.Second / 60
	statusTTL  = 4 * time.Second
	quoteSize  = 26
	uiTextSize = 16

	msgAdded    = "Kata-kata baru ditambahkan ♥"
	msgPhotoSet = "Foto disimpan"
)

// Options wires the game to its collaborators. Engine must have been built
// with Banner as its display and Scheduler as its timer.
type Options struct {
	Engine      *quotes.Engine
	Scheduler   *timer.Scheduler
	Banner      *Banner
	Pool        *hearts.Pool
	Player      *music.Player
	Store       storage.Store
	Theme       *theme.Theme
	Photo       image.Image
	Dialogs     Dialogs
	Clipboard   func() (string, error)
	SnapshotDir string
	Logger      *slog.Logger
}

type Game struct {
	engine  *quotes.Engine
	sched   *timer.Scheduler
	banner  *Banner
	pool    *hearts.Pool
	player  *music.Player
	store   storage.Store
	theme   *theme.Theme
	dialogs Dialogs
	paste   func() (string, error)
	shots   string
	logger  *slog.Logger

	layout layout
	field  textField
	add    button
	pick   button
	music  button

	photo      image.Image
	photoImage *ebiten.Image

	picking   bool
	picks     chan pickResult
	statusMsg string
	statusErr bool
	statusSeq int

	elapsed time.Duration
	chars   []rune

	quoteFace font.Face
	uiFace    font.Face
	faces     map[font.Face]*text.GoXFace
	screen    screenSurface
}

func New(opts Options) *Game {
	if opts.Engine == nil || opts.Scheduler == nil || opts.Banner == nil || opts.Pool == nil {
		panic("game: engine, scheduler, banner and pool are required")
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Dialogs == nil {
		opts.Dialogs = NativeDialogs{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.ReadAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Player == nil {
		opts.Player = music.NewPlayer("", nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}

	w, h := opts.Pool.Size()
	g := &Game{
		engine:    opts.Engine,
		sched:     opts.Scheduler,
		banner:    opts.Banner,
		pool:      opts.Pool,
		player:    opts.Player,
		store:     opts.Store,
		theme:     opts.Theme,
		dialogs:   opts.Dialogs,
		paste:     opts.Clipboard,
		shots:     opts.SnapshotDir,
		logger:    opts.Logger,
		photo:     opts.Photo,
		picks:     make(chan pickResult, 1),
		add:       button{label: "Tambah"},
		pick:      button{label: "Pilih Foto"},
		quoteFace: fonts.MustFace(fonts.Regular, quoteSize),
		uiFace:    fonts.MustFace(fonts.Regular, uiTextSize),
	}
	g.pool.SetFill(g.theme.HeartFill())
	g.relayout(int(w), int(h))
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.handleKeyboard()
	g.handleMouse()
	g.tick()
	return nil
}

func (g *Game) handleKeyboard() {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	g.field.insert(g.chars)

	if repeatPress(inpututil.KeyPressDuration(ebiten.KeyBackspace)) {
		g.field.backspace()
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.pasteClipboard()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.submit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.takeSnapshot()
	}
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	g.click(x, y, pressed, released)
}

// click routes one frame of left-button state to the buttons. The music
// button is hidden and inert without a track.
func (g *Game) click(x, y int, pressed, released bool) {
	if g.add.track(x, y, pressed, released) {
		g.submit()
	}
	if g.pick.track(x, y, pressed, released) {
		g.pickPhoto()
	}
	if g.player.HasTrack() && g.music.track(x, y, pressed, released) {
		g.toggleMusic()
	}
}

// tick advances everything time-driven by one frame.
func (g *Game) tick() {
	g.drainPicks()
	g.sched.Run()
	g.pool.Step()
	g.banner.Step(frame)
	g.player.UpdateLevel()
	g.music.label = g.player.Label()
	g.elapsed += frame
}

// Layout makes the logical screen match the window so hearts span the
// whole viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.layout.width || outsideHeight != g.layout.height {
		g.relayout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) relayout(w, h int) {
	g.layout = layoutFor(w, h)
	g.pool.Resize(float64(w), float64(h))
	g.add.rect = g.layout.add
	g.pick.rect = g.layout.pick
	g.music.rect = g.layout.music
	g.music.label = g.player.Label()
}

// submit hands the field to the engine. The field is only cleared when the
// quote was accepted.
func (g *Game) submit() {
	err := g.engine.AddQuote(g.field.value())
	if err == nil {
		g.field.clear()
		g.setStatus(msgAdded, false)
		return
	}

	var verr *quotes.ValidationError
	if errors.As(err, &verr) {
		g.setStatus(verr.Message, true)
		go func() {
			if derr := g.dialogs.ShowError(verr.Message); derr != nil {
				g.logger.Warn("error dialog failed", slog.Any("error", derr))
			}
		}()
		return
	}
	g.logger.Error("add quote failed", slog.Any("error", err))
	g.setStatus(err.Error(), true)
}

func (g *Game) pasteClipboard() {
	s, err := g.paste()
	if err != nil {
		g.logger.Warn("clipboard read failed", slog.Any("error", err))
		g.setStatus("Tidak bisa membaca clipboard", true)
		return
	}
	g.field.paste(s)
}

// pickPhoto opens the file dialog without blocking the frame loop; the
// result arrives on g.picks.
func (g *Game) pickPhoto() {
	if g.picking {
		return
	}
	g.picking = true
	go func() {
		path, err := g.dialogs.PickPhoto()
		g.picks <- pickResult{path: path, err: err}
	}()
}

func (g *Game) drainPicks() {
	select {
	case r := <-g.picks:
		g.picking = false
		g.applyPick(r)
	default:
	}
}

func (g *Game) applyPick(r pickResult) {
	if r.err != nil {
		g.logger.Error("photo dialog failed", slog.Any("error", r.err))
		g.setStatus("Dialog foto gagal: "+r.err.Error(), true)
		return
	}
	if r.path == "" {
		return
	}

	p, err := photo.Import(r.path)
	if err != nil {
		g.logger.Warn("photo rejected", slog.String("path", r.path), slog.Any("error", err))
		g.setStatus("Foto tidak bisa dibuka", true)
		return
	}
	if err := photo.Save(g.store, p); err != nil {
		g.logger.Error("photo not persisted", slog.Any("error", err))
		g.setStatus("Foto ditampilkan tapi tidak tersimpan", true)
	} else {
		g.setStatus(msgPhotoSet, false)
	}
	g.photo = p.Image
	g.photoImage = nil
	g.logger.Info("photo updated", slog.String("file", filepath.Base(r.path)), slog.Int("bytes", len(p.URI)))
}

func (g *Game) toggleMusic() {
	playing, err := g.player.Toggle()
	if err != nil {
		g.logger.Warn("music unavailable", slog.Any("error", err))
		g.setStatus("Musik tidak tersedia", true)
	}
	g.music.label = g.player.Label()
	g.logger.Debug("music button", slog.Bool("pressed", playing))
}

func (g *Game) takeSnapshot() {
	path, err := snapshot.Save(g.shots, g.scene(), time.Now())
	if err != nil {
		g.logger.Error("snapshot failed", slog.Any("error", err))
		g.setStatus("Gagal menyimpan gambar", true)
		return
	}
	g.logger.Info("snapshot saved", slog.String("path", path))
	g.setStatus("Tersimpan: "+path, false)
}

func (g *Game) scene() snapshot.Scene {
	return snapshot.Scene{
		Width:  g.layout.width,
		Height: g.layout.height,
		Theme:  g.theme,
		Pool:   g.pool,
		Photo:  g.photo,
		Quote:  g.engine.Current(),
	}
}

// setStatus shows msg until statusTTL passes or a newer message replaces it.
func (g *Game) setStatus(msg string, isErr bool) {
	g.statusSeq++
	seq := g.statusSeq
	g.statusMsg, g.statusErr = msg, isErr
	g.sched.AfterFunc(statusTTL, func() {
		if g.statusSeq == seq {
			g.statusMsg, g.statusErr = "", false
		}
	})
}

// Status returns the current status line.
func (g *Game) Status() (string, bool) { return g.statusMsg, g.statusErr }
