// Package tui runs the page in a terminal with bubbletea: hearts on a
// character grid, the rotating quote, and an input line for new quotes.
package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/romantic-page/internal/hearts"
	"github.com/iburimskiy/romantic-page/internal/quotes"
	"github.com/iburimskiy/romantic-page/internal/theme"
	"github.com/iburimskiy/romantic-page/internal/timer"
)

const (
	frame     = time.Second / 30
	statusTTL = 4 * time.Second

	// rows taken by the quote, input, status and help lines
	chromeRows = 6
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Display shows the quote on one terminal line. It implements quotes.Display.
type Display struct {
	text    string
	visible bool
}

func (d *Display) Hide() { d.visible = false }

func (d *Display) Show(text string) {
	d.text = text
	d.visible = true
}

// Text returns the quote while shown, "" while faded out.
func (d *Display) Text() string {
	if !d.visible {
		return ""
	}
	return d.text
}

type styles struct {
	hearts [3]lipgloss.Style
	quote  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func newStyles(th *theme.Theme) styles {
	heart := lipgloss.Color(th.Colors.Heart)
	return styles{
		hearts: [3]lipgloss.Style{
			lipgloss.NewStyle().Foreground(heart).Faint(true),
			lipgloss.NewStyle().Foreground(heart),
			lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Accent)).Bold(true),
		},
		quote:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Text)).Bold(true).Italic(true),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Accent)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color(th.Colors.Error)).Bold(true),
		help:   lipgloss.NewStyle().Faint(true),
	}
}

// Options wires the model. Engine must display through Display and schedule
// on Scheduler.
type Options struct {
	Engine    *quotes.Engine
	Scheduler *timer.Scheduler
	Display   *Display
	Pool      *hearts.Pool
	Theme     *theme.Theme
	Logger    *slog.Logger
}

type Model struct {
	engine  *quotes.Engine
	sched   *timer.Scheduler
	display *Display
	pool    *hearts.Pool
	logger  *slog.Logger
	styles  styles

	grid   *grid
	input  textinput.Model
	width  int
	height int

	statusMsg string
	statusErr bool
	statusSeq int
}

func New(opts Options) *Model {
	if opts.Engine == nil || opts.Scheduler == nil || opts.Display == nil || opts.Pool == nil {
		panic("tui: engine, scheduler, display and pool are required")
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Tulis kata-kata manis..."
	ti.CharLimit = 280
	ti.Prompt = "♥ "
	ti.Focus()

	return &Model{
		engine:  opts.Engine,
		sched:   opts.Scheduler,
		display: opts.Display,
		pool:    opts.Pool,
		logger:  opts.Logger,
		styles:  newStyles(opts.Theme),
		grid:    newGrid(0, 0),
		input:   ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.step()
		return m, tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.grid.resize(w, h-chromeRows)
	m.pool.Resize(m.grid.pixelSize())
	m.input.Width = max(w-4, 10)
}

// step runs due timers, moves the hearts and redraws the grid.
func (m *Model) step() {
	m.sched.Run()
	m.pool.Step()
	m.pool.Draw(m.grid)
}

func (m *Model) submit() {
	err := m.engine.AddQuote(m.input.Value())
	if err == nil {
		m.input.Reset()
		m.setStatus("Kata-kata baru ditambahkan ♥", false)
		return
	}
	var verr *quotes.ValidationError
	if errors.As(err, &verr) {
		m.setStatus(verr.Message, true)
		return
	}
	m.logger.Error("add quote failed", slog.Any("error", err))
	m.setStatus(err.Error(), true)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusSeq++
	seq := m.statusSeq
	m.statusMsg, m.statusErr = msg, isErr
	m.sched.AfterFunc(statusTTL, func() {
		if m.statusSeq == seq {
			m.statusMsg, m.statusErr = "", false
		}
	})
}

func (m *Model) View() string {
	if m.width == 0 {
		return "memuat..."
	}

	half := m.grid.rows / 2
	lines := m.grid.render(0, half, m.styles.hearts)
	lines = append(lines,
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.quote.Render(m.display.Text())),
		"",
	)
	lines = append(lines, m.grid.render(half, m.grid.rows, m.styles.hearts)...)

	status := m.styles.status.Render(m.statusMsg)
	if m.statusErr {
		status = m.styles.err.Render(m.statusMsg)
	}
	lines = append(lines,
		m.input.View(),
		status,
		m.styles.help.Render("enter: tambah • esc: keluar"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run starts the terminal program and blocks until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
