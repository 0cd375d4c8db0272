package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"strings"

	"github.com/soocke/graph-score/config"
	"github.com/soocke/graph-score/domain/features"
	"github.com/soocke/graph-score/domain/message"
	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/model"
	"github.com/soocke/graph-score/ui/overlay"
)

// Command is one discrete user command.
type Command int

const (
	CommandNone Command = iota
	CommandAnalyze
	CommandScan
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandAnalyze:
		return "analyze"
	case CommandScan:
		return "scan"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseKey maps a key name to its command. Unknown keys map to CommandNone.
func ParseKey(key string) Command {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "a":
		return CommandAnalyze
	case "b":
		return CommandScan
	case "escape", "esc", "\x1b":
		return CommandQuit
	default:
		return CommandNone
	}
}

// ParseScript splits a comma separated key list ("a,b,esc") into commands.
// Blank entries are skipped; unknown keys are kept as no-op commands.
func ParseScript(script string) []Command {
	var cmds []Command
	for _, tok := range strings.Split(script, ",") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		cmds = append(cmds, ParseKey(tok))
	}
	return cmds
}

// Analyzer runs full-frame feature extraction.
type Analyzer interface {
	Extract(region image.Image) features.Metrics
}

// Display shows the idle frame and scan frames.
type Display interface {
	scan.View
	Show(frame *image.RGBA, panel overlay.Panel)
	Refresh()
}

// InteractionLoop dispatches user commands to the analyzer and the scan
// controller. It runs on a single control thread; Dispatch may be re-entered
// from the scheduler's event pump while a scan is running, in which case only
// CommandQuit has an effect.
type InteractionLoop struct {
	cfg        *config.Config
	source     *image.RGBA
	analyzer   Analyzer
	controller *scan.Controller
	sink       message.Sink
	display    Display
	sched      scan.Scheduler
	session    *model.SessionModel
	logger     *slog.Logger

	handlers   map[Command]func(ctx context.Context) error
	scanning   bool
	cancelScan context.CancelFunc
	done       bool
	quitFired  bool

	// OnQuit runs once when the loop stops.
	OnQuit func()
}

// NewInteractionLoop wires the loop. The controller's view is pointed at display.
func NewInteractionLoop(cfg *config.Config, controller *scan.Controller, analyzer Analyzer, sink message.Sink,
	display Display, sched scan.Scheduler, session *model.SessionModel, logger *slog.Logger) *InteractionLoop {
	l := &InteractionLoop{
		cfg:        cfg,
		source:     controller.Source(),
		analyzer:   analyzer,
		controller: controller,
		sink:       sink,
		display:    display,
		sched:      sched,
		session:    session,
		logger:     logger,
	}
	controller.SetView(display)
	l.handlers = map[Command]func(ctx context.Context) error{
		CommandAnalyze: l.analyze,
		CommandScan:    l.scan,
		CommandQuit:    l.quit,
	}
	return l
}

// Start shows the source with the idle panel.
func (l *InteractionLoop) Start() {
	l.display.Show(cloneRGBA(l.source), overlay.Idle(l.cfg.Duration()))
}

// Done reports whether quit was requested.
func (l *InteractionLoop) Done() bool { return l.done }

// Scanning reports whether a strip scan is in progress.
func (l *InteractionLoop) Scanning() bool { return l.scanning }

// Tick re-renders the idle frame. It does nothing while scanning or after quit.
func (l *InteractionLoop) Tick() {
	if l.done || l.scanning {
		return
	}
	l.display.Refresh()
}

// DispatchKey parses key and dispatches the resulting command.
func (l *InteractionLoop) DispatchKey(ctx context.Context, key string) error {
	return l.Dispatch(ctx, ParseKey(key))
}

// Dispatch runs one command. Unknown commands are no-ops.
func (l *InteractionLoop) Dispatch(ctx context.Context, cmd Command) error {
	if l.done {
		return nil
	}
	if l.scanning {
		if cmd == CommandQuit {
			l.done = true
			if l.logger != nil {
				l.logger.Info("quit requested during scan")
			}
			l.cancelScan()
		}
		return nil
	}
	h, ok := l.handlers[cmd]
	if !ok {
		if l.logger != nil {
			l.logger.Debug("command ignored", "command", cmd.String())
		}
		return nil
	}
	return h(ctx)
}

// RunScript dispatches cmds in order with an idle tick after each, stopping
// at quit, on error or when ctx is done.
func (l *InteractionLoop) RunScript(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if l.done {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Dispatch(ctx, cmd); err != nil {
			return err
		}
		l.Tick()
	}
	return nil
}

func (l *InteractionLoop) analyze(context.Context) error {
	frame := cloneRGBA(l.source)
	m := l.analyzer.Extract(l.source)
	if l.cfg.DrawKeypoints {
		if err := features.DrawKeypoints(frame, m.Keypoints); err != nil && l.logger != nil {
			l.logger.Warn("draw keypoints", "error", err)
		}
	}
	l.display.Show(frame, overlay.FromMetrics(l.cfg.Duration(), m))
	l.sink.Emit(message.PathObjectCount, m.ObjectCount)
	l.session.RecordAnalysis()
	if l.logger != nil {
		l.logger.Info("frame analyzed",
			"objects", m.ObjectCount,
			"contrast", m.Contrast,
			"proximity", m.Proximity,
			"proximity_valid", m.ProximityValid,
		)
	}
	return nil
}

func (l *InteractionLoop) scan(ctx context.Context) error {
	b := l.source.Bounds()
	g, err := scan.NewGeometry(b.Dx(), b.Dy(), l.cfg.SliceWidth, l.cfg.Duration())
	if err != nil {
		return fmt.Errorf("strip scan: %w", err)
	}
	sctx, cancel := context.WithCancel(ctx)
	l.scanning, l.cancelScan = true, cancel
	err = scan.Run(sctx, l.controller, g, l.sched)
	cancel()
	l.scanning, l.cancelScan = false, nil

	if l.done {
		l.stop()
		return nil
	}
	l.display.Refresh()
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return fmt.Errorf("strip scan: %w", err)
	}
	return nil
}

func (l *InteractionLoop) quit(context.Context) error {
	l.done = true
	l.stop()
	return nil
}

func (l *InteractionLoop) stop() {
	if l.quitFired {
		return
	}
	l.quitFired = true
	if l.logger != nil {
		l.logger.Info("interaction loop stopped")
	}
	if l.OnQuit != nil {
		l.OnQuit()
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
