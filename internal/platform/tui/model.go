package tui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.Hex(core.ColorText)))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.Hex(core.ColorAccent))).Bold(true)
	haltedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
)

// Options configures the terminal host.
type Options struct {
	Fit           bool   // Scale surfaces larger than the terminal down
	Border        bool   // Frame the surface
	ScreenshotDir string // Where ctrl+s writes PNGs
	Logger        *log.Logger
	DriverOptions []driver.Option
}

// Model is the Bubble Tea model hosting one driven engine.
type Model struct {
	engineID   string
	driver     *driver.Driver
	element    *Element
	scheduler  *Scheduler
	compositor *Compositor
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	shotDir    string
	paused     bool
	quitting   bool
	notice     string
}

// NewModel wraps an initialized driver whose element and scheduler are el and sched.
func NewModel(engineID string, d *driver.Driver, el *Element, sched *Scheduler, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		engineID:   engineID,
		driver:     d,
		element:    el,
		scheduler:  sched,
		compositor: &Compositor{},
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-chromeRows)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		logger:     logger,
		shotDir:    opts.ScreenshotDir,
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes host key bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.driver.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.logger.Debug("pause toggled", "paused", m.paused)

	case key.Matches(msg, m.keys.Screenshot):
		m.notice = m.saveScreenshot()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse forwards left-button presses on the surface to the driver.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	hit, err := m.element.Click(msg.X, msg.Y)
	if err != nil {
		m.logger.Warn("click failed", "x", msg.X, "y", msg.Y, "error", err)
		m.notice = "click failed: " + err.Error()
	} else if hit {
		m.notice = ""
	}
	return m, nil
}

// handleResize re-centres the surface for the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-chromeRows))
	m.element.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleFrame runs the queued frame callbacks. While paused the callbacks
// stay queued, so the first frame after resuming sees the paused time in
// its delta. Ticking ends once nothing asks for another frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.scheduler.run()
	}
	if !m.scheduler.Pending() {
		return m, nil
	}
	return m, frameCmd(m.config.FrameRate)
}

// saveScreenshot writes the surface as a PNG and returns a status notice.
func (m *Model) saveScreenshot() string {
	dir := m.shotDir
	if dir == "" {
		dir = filepath.Join(".", "screenshots")
	}
	path, err := core.SaveSnapshot(dir, m.engineID, m.element.Image(), time.Now())
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// statusLine summarises the loop state.
func (m Model) statusLine() string {
	st := m.driver.Stats()
	line := statusStyle.Render(fmt.Sprintf(" %s  frame %d  Δ %.1fms  clicks %d ",
		m.engineID, st.Frames, st.LastDelta, st.Clicks))

	switch {
	case m.driver.Err() != nil:
		line += haltedStyle.Render("halted: " + m.driver.Err().Error())
	case m.paused:
		line += pausedStyle.Render("paused")
	case m.notice != "":
		line += statusStyle.Render(m.notice)
	}
	return line
}

// View renders the surface, the status line and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.compositor.Compose(m.screen, m.element.Image(), m.element.Layout())

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

// Run boots engineID against a terminal element and runs the Bubble Tea
// program until the user quits. A loop halted by a failure is reported
// after the program exits.
func Run(ctx context.Context, engineID string, cfg core.RuntimeConfig, opts Options) error {
	sched := NewScheduler()
	el := NewElement(cfg.ScreenW, cfg.ScreenH, opts.Fit, opts.Border)

	dopts := opts.DriverOptions
	if opts.Logger != nil {
		dopts = append(dopts, driver.WithLogger(opts.Logger))
	}
	d, err := driver.Boot(ctx, engineID, el, sched, dopts...)
	if err != nil {
		return err
	}

	model := NewModel(engineID, d, el, sched, cfg, opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	d.Stop()
	if err != nil {
		return err
	}
	if herr := d.Err(); herr != nil {
		return fmt.Errorf("%s: %w", engineID, herr)
	}
	return nil
}
