package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/graph-score/app"
	"github.com/soocke/graph-score/config"
	"github.com/soocke/graph-score/debug"
	"github.com/soocke/graph-score/domain/capture"
	"github.com/soocke/graph-score/domain/message"
	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/headless"
	"github.com/soocke/graph-score/ui/view"
)

// Options holds the flags of the root command.
type Options struct {
	ConfigPath string
	OSCHost    string
	OSCPort    int
	Debug      bool
	Headless   bool
	FromScreen bool
	DryRun     bool
	Script     string
	Snapshot   string
}

// Version is the application version.
const Version = "0.1.0"

var opts Options

var rootCmd = &cobra.Command{
	Use:   "graph-score <image_path> <duration_seconds>",
	Short: "Scan an image left to right and stream keypoint metrics over OSC",
	Long: `graph-score shows an image and waits for keys:
  a    analyze the whole frame and send /image/object_count
  b    scan a slice across the frame, sending the four /image/scan_* messages per step
  Esc  quit

With --from-screen the image path is omitted and the screen is captured instead.`,
	Version:      Version,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		want := 2
		if opts.FromScreen {
			want = 1
		}
		if len(args) != want {
			return fmt.Errorf("expected %d argument(s), got %d", want, len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd, args)
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a JSON config file (missing file selects defaults)")
	f.StringVar(&opts.OSCHost, "osc-host", "", "OSC listener host (overrides config)")
	f.IntVar(&opts.OSCPort, "osc-port", 0, "OSC listener port (overrides config)")
	f.BoolVarP(&opts.Debug, "debug", "d", false, "Debug logging plus periodic memory and goroutine stats")
	f.BoolVar(&opts.Headless, "headless", false, "Run without a window, dispatching --script")
	f.BoolVar(&opts.FromScreen, "from-screen", false, "Capture the screen instead of reading an image file")
	f.BoolVar(&opts.DryRun, "dry-run", false, "Log messages instead of sending them over OSC")
	f.StringVar(&opts.Script, "script", "a,b", "Comma separated keys dispatched in headless mode (a, b, esc)")
	f.StringVar(&opts.Snapshot, "snapshot", "", "Write the last headless frame to this PNG path")
}

// parseDuration reads the scan duration argument in seconds.
func parseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid duration %q: must be > 0", s)
	}
	return v, nil
}

// loadConfig merges the config file with the positional duration and flags.
func loadConfig(cmd *cobra.Command, o Options, durationArg string) (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	d, err := parseDuration(durationArg)
	if err != nil {
		return nil, err
	}
	cfg.DurationSeconds = d
	if cmd.Flags().Changed("osc-host") {
		cfg.OSCHost = o.OSCHost
	}
	if cmd.Flags().Changed("osc-port") {
		cfg.OSCPort = o.OSCPort
	}
	if o.Debug {
		cfg.Debug = true
	}
	_ = cfg.Validate()
	return cfg, nil
}

func newSource(o Options, cfg *config.Config, args []string) capture.Source {
	if o.FromScreen {
		return capture.ScreenSource{Width: cfg.FrameWidth, Height: cfg.FrameHeight}
	}
	return capture.FileSource{Path: args[0], Width: cfg.FrameWidth, Height: cfg.FrameHeight}
}

func run(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, opts, args[len(args)-1])
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	source := capture.NewInstrumented(newSource(opts, cfg, args), logger)
	snap, err := source.Acquire()
	if err != nil {
		return fmt.Errorf("acquire frame: %w", err)
	}
	logger.Info("session configured",
		"duration", cfg.Duration(),
		"slice_width", cfg.SliceWidth,
		"detector", cfg.Detector,
		"osc", fmt.Sprintf("%s:%d", cfg.OSCHost, cfg.OSCPort),
		"dry_run", opts.DryRun,
		"headless", opts.Headless,
	)

	var sink message.Sink
	if opts.DryRun {
		sink = &message.LogSink{Logger: logger}
	}

	if opts.Headless {
		return runHeadless(ctx, cfg, logger, snap.Image, sink)
	}
	return runWindow(ctx, cfg, logger, snap.Image, sink)
}

func runHeadless(ctx context.Context, cfg *config.Config, logger *slog.Logger, img *image.RGBA, sink message.Sink) error {
	display := headless.NewDisplay()
	c, err := app.BuildContainer(cfg, opts.ConfigPath, logger, img, app.Options{
		Sink:      sink,
		Frames:    display,
		ScanViews: []scan.View{headless.NewProgress(os.Stderr)},
	})
	if err != nil {
		return err
	}
	defer c.Close()
	startDebug(ctx, cfg, logger, c)

	if err := app.RunHeadless(ctx, c, app.ParseScript(opts.Script)); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted")
			return nil
		}
		return err
	}
	if opts.Snapshot != "" {
		if err := display.Snapshot(opts.Snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		logger.Info("snapshot written", "path", opts.Snapshot)
	}
	return nil
}

func runWindow(ctx context.Context, cfg *config.Config, logger *slog.Logger, img *image.RGBA, sink message.Sink) error {
	root := view.NewRootView(cfg, opts.ConfigPath, logger)
	c, err := app.BuildContainer(cfg, opts.ConfigPath, logger, img, app.Options{
		Sink:      sink,
		Scheduler: view.TkScheduler{},
		Frames:    root,
		State:     root,
		Session:   root,
	})
	if err != nil {
		return err
	}
	defer c.Close()
	// Tk cannot show every step of a short scan; pace scan frames to the idle tick.
	c.DisplayPresenter.MinInterval = cfg.IdleTick()
	startDebug(ctx, cfg, logger, c)

	app.NewTkApp(ctx, c, root).Start()
	return nil
}

func startDebug(ctx context.Context, cfg *config.Config, logger *slog.Logger, c *app.AppContainer) {
	if !cfg.Debug {
		return
	}
	interval := cfg.DebugInterval()
	debug.StartGoroutineLogger(ctx, interval, logger)
	debug.StartMemLogger(ctx, interval, logger, c.DebugAttrs)
}
