//go:build ebiten

package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
	"github.com/vovakirdan/framedrive/internal/platform/headless"
)

// Game adapts a driver to ebiten's Update/Draw/Layout cycle.
type Game struct {
	ctx       context.Context
	engineID  string
	driver    *driver.Driver
	element   *headless.Element
	scheduler *headless.Scheduler
	logger    *log.Logger
	shotDir   string
	offscreen *ebiten.Image
	paused    bool
	notice    string
}

// Update handles input and runs the frame callbacks queued since the last tick.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.driver.Stop()
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.driver.Stop()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyS) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.notice = g.saveScreenshot()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := float64(cx), float64(cy)
		if inside(g.element.BoundingClientRect(), x, y) {
			if err := g.element.Click(x, y); err != nil {
				g.logger.Warn("click failed", "x", cx, "y", cy, "error", err)
				g.notice = "click failed: " + err.Error()
			}
		}
	}

	if !g.paused {
		g.scheduler.Step()
	}
	return nil
}

// Draw blits the surface into its letterboxed rectangle.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(core.ColorBackground)

	src := g.element.Image()
	b := src.Bounds()
	if !b.Empty() {
		if g.offscreen == nil || g.offscreen.Bounds().Size() != b.Size() {
			g.offscreen = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.offscreen.WritePixels(src.Pix)

		rect := g.element.BoundingClientRect()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(rect.Width/float64(b.Dx()), rect.Height/float64(b.Dy()))
		op.GeoM.Translate(rect.Left, rect.Top)
		screen.DrawImage(g.offscreen, op)
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 4, 4)
}

// Layout keeps the window's logical size equal to its outside size and
// re-places the surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.element.Image().Bounds()
	g.element.SetRect(Letterbox(b.Dx(), b.Dy(), outsideWidth, outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) status() string {
	st := g.driver.Stats()
	line := fmt.Sprintf("%s  frame %d  Δ %.1fms  clicks %d", g.engineID, st.Frames, st.LastDelta, st.Clicks)
	switch {
	case g.driver.Err() != nil:
		line += "  halted: " + g.driver.Err().Error()
	case g.paused:
		line += "  paused"
	case g.notice != "":
		line += "  " + g.notice
	}
	return line
}

func (g *Game) saveScreenshot() string {
	dir := g.shotDir
	if dir == "" {
		dir = filepath.Join(".", "screenshots")
	}
	path, err := core.SaveSnapshot(dir, g.engineID, g.element.Image(), time.Now())
	if err != nil {
		g.logger.Warn("screenshot failed", "error", err)
		return "screenshot failed"
	}
	g.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// Run boots engineID in a window sized to the engine at opts.Scale and runs
// until the window closes or ctx is done.
func Run(ctx context.Context, engineID string, cfg core.RuntimeConfig, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := headless.NewScheduler()
	el := headless.NewElement()
	dopts := append(opts.DriverOptions, driver.WithLogger(logger))
	d, err := driver.Boot(ctx, engineID, el, sched, dopts...)
	if err != nil {
		return err
	}

	scale := max(1, opts.Scale)
	eng := d.Engine()
	ebiten.SetWindowSize(eng.Width()*scale, eng.Height()*scale)
	ebiten.SetWindowTitle("framedrive - " + engineID)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FrameRate)

	g := &Game{
		ctx:       ctx,
		engineID:  engineID,
		driver:    d,
		element:   el,
		scheduler: sched,
		logger:    logger,
		shotDir:   opts.ScreenshotDir,
	}

	err = ebiten.RunGame(g)
	d.Stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if herr := d.Err(); herr != nil {
		return fmt.Errorf("%s: %w", engineID, herr)
	}
	return nil
}
