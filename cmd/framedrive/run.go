package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/framedrive/internal/config"
	"github.com/vovakirdan/framedrive/internal/core"
	"github.com/vovakirdan/framedrive/internal/driver"
	"github.com/vovakirdan/framedrive/internal/engine"
	"github.com/vovakirdan/framedrive/internal/logging"
	"github.com/vovakirdan/framedrive/internal/platform/desktop"
	"github.com/vovakirdan/framedrive/internal/platform/headless"
	"github.com/vovakirdan/framedrive/internal/platform/tui"
)

var (
	flagHost     string
	flagFrames   int
	flagPolicy   string
	flagSnapshot string
)

var runCmd = &cobra.Command{
	Use:   "run <engine>",
	Short: "Run an engine",
	Long: `Load the engine, size the host surface from it and drive its frame loop
until you quit.

Hosts:
  tui       - Half-block rendering in the terminal, mouse clicks forwarded
  desktop   - ebiten window (requires building with -tags ebiten)
  headless  - No display; runs --frames frames and exits

Controls (tui, desktop):
  Left click   - Click the engine
  P/Space      - Pause
  Ctrl+S       - Save a PNG screenshot
  Q/Esc        - Quit

Examples:
  framedrive run life
  framedrive run ripple --policy skip
  framedrive run life --host headless --frames 300 --snapshot out.png`,
	Args: cobra.ExactArgs(1),
	RunE: runEngine,
}

func init() {
	runCmd.Flags().StringVar(&flagHost, "host", "", "Host: tui, desktop, headless (empty = from config)")
	runCmd.Flags().IntVar(&flagFrames, "frames", 0, "Headless: frames to run (0 = until interrupted)")
	runCmd.Flags().StringVar(&flagPolicy, "policy", "", "Frame failure policy: halt, skip (empty = from config)")
	runCmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Headless: write the final surface to this PNG")
}

// overrides are command-line values that replace config file values when set.
type overrides struct {
	fps      int
	logLevel string
	host     string
	policy   string
}

func (o overrides) apply(cfg config.Config) (config.Config, error) {
	if o.fps > 0 {
		cfg.Driver.FPS = o.fps
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.host != "" {
		cfg.Display.Host = o.host
	}
	if o.policy != "" {
		cfg.Driver.FailurePolicy = o.policy
	}
	return cfg, cfg.Validate()
}

// driverOptions translates the driver section of cfg.
func driverOptions(cfg config.DriverConfig) ([]driver.Option, error) {
	policy, err := driver.ParsePolicy(cfg.FailurePolicy)
	if err != nil {
		return nil, err
	}
	return []driver.Option{driver.WithFailurePolicy(policy, cfg.MaxConsecutiveFailures)}, nil
}

func runEngine(cmd *cobra.Command, args []string) error {
	engineID := args[0]
	if !engine.Exists(engineID) {
		return fmt.Errorf("unknown engine %q; run 'framedrive list' to see available engines", engineID)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg, err = overrides{
		fps:      flagFPS,
		logLevel: flagLogLevel,
		host:     flagHost,
		policy:   flagPolicy,
	}.apply(cfg)
	if err != nil {
		return err
	}

	// The terminal host owns stdout, so its log goes to the file.
	logger, closer, err := logging.New(cfg.Log, cfg.Display.Host == config.HostTUI)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger = logger.With("engine", engineID, "host", cfg.Display.Host)

	dopts, err := driverOptions(cfg.Driver)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := core.DefaultConfig()
	rt.FrameRate = cfg.Driver.FPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	shotDir := filepath.Join(config.ExpandHome("~/.framedrive"), "screenshots")

	logger.Info("starting", "fps", rt.FrameRate, "policy", cfg.Driver.FailurePolicy)

	switch cfg.Display.Host {
	case config.HostTUI:
		return tui.Run(ctx, engineID, rt, tui.Options{
			Fit:           cfg.Display.Fit,
			Border:        cfg.Display.Border,
			ScreenshotDir: shotDir,
			Logger:        logger,
			DriverOptions: dopts,
		})

	case config.HostDesktop:
		err := desktop.Run(ctx, engineID, rt, desktop.Options{
			Scale:         cfg.Display.WindowScale,
			ScreenshotDir: shotDir,
			Logger:        logger,
			DriverOptions: dopts,
		})
		if errors.Is(err, desktop.ErrUnavailable) {
			return fmt.Errorf("%w; use --host tui or --host headless", err)
		}
		return err

	default:
		return runHeadless(ctx, engineID, rt.FrameRate, flagFrames, flagSnapshot, logger, dopts)
	}
}

// runHeadless drives engineID without a display, optionally saving the
// final surface as a PNG.
func runHeadless(ctx context.Context, engineID string, fps, frames int, snapshot string, logger *log.Logger, dopts []driver.Option) error {
	sched := headless.NewScheduler()
	el := headless.NewElement()

	d, err := driver.Boot(ctx, engineID, el, sched, append(dopts, driver.WithLogger(logger))...)
	if err != nil {
		return err
	}

	headless.Run(ctx, d, sched, time.Second/time.Duration(fps), frames, logger)

	if snapshot != "" {
		if err := core.WritePNG(snapshot, el.Image()); err != nil {
			return err
		}
		logger.Info("snapshot saved", "path", snapshot)
	}
	if herr := d.Err(); herr != nil {
		return fmt.Errorf("%s: %w", engineID, herr)
	}
	return nil
}
