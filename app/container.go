package app

import (
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/graph-score/config"
	"github.com/soocke/graph-score/domain/features"
	"github.com/soocke/graph-score/domain/message"
	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/model"
	"github.com/soocke/graph-score/ui/overlay"
	"github.com/soocke/graph-score/ui/presenter"
)

// Options overrides the default collaborators. Zero fields select the
// defaults: a gocv detector of cfg.Detector, an OSC sink to cfg.OSCHost:OSCPort
// and real time pacing.
type Options struct {
	Detector  features.Detector
	Sink      message.Sink
	Scheduler scan.Scheduler

	Frames  presenter.FrameView
	State   presenter.StateView
	Session presenter.SessionView

	// ScanViews receive every scan frame after the display presenter.
	ScanViews []scan.View
}

// AppContainer assembles models, domain services and presenters.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Detector   features.Detector
	Extractor  *features.Extractor
	Sink       message.Sink
	Controller *scan.Controller
	Display    *model.DisplayModel
	Session    *model.SessionModel

	DisplayPresenter *presenter.DisplayPresenter
	StatePresenter   *presenter.StatePresenter
	SessionPresenter *presenter.SessionPresenter
	Interaction      *InteractionLoop
}

// BuildContainer constructs all components around source.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, source *image.RGBA, opts Options) (*AppContainer, error) {
	if source == nil || source.Bounds().Empty() {
		return nil, errors.New("app: empty source image")
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	c.Detector = opts.Detector
	if c.Detector == nil {
		d, err := features.NewDetector(cfg.Detector)
		if err != nil {
			return nil, err
		}
		c.Detector = d
	}
	c.Extractor = features.NewExtractor(c.Detector, logger)

	c.Sink = opts.Sink
	if c.Sink == nil {
		c.Sink = message.NewOSCSink(cfg.OSCHost, cfg.OSCPort, logger)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = scan.RealScheduler{}
	}

	c.Session = model.NewSessionModel()
	c.Display = model.NewDisplayModel(nil, overlay.Idle(cfg.Duration()))
	c.DisplayPresenter = presenter.NewDisplayPresenter(c.Display, overlay.NewRenderer(cfg.PanelWidth), opts.Frames, cfg.SliceWidth)

	c.Controller = scan.NewController(source, c.Extractor, c.Sink, c.DisplayPresenter, logger)
	c.StatePresenter = presenter.NewStatePresenter(opts.State)
	c.Controller.AddListener(c.StatePresenter.OnTransition)

	c.Interaction = NewInteractionLoop(cfg, c.Controller, c.Extractor, c.Sink, c.DisplayPresenter, sched, c.Session, logger)
	if len(opts.ScanViews) > 0 {
		c.Controller.SetView(append(scan.Views{c.DisplayPresenter}, opts.ScanViews...))
	}
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, sched.Now, opts.Session)
	c.Controller.AddListener(c.SessionPresenter.OnTransition)
	return c, nil
}

// SinkStats returns transport counters when the sink keeps them.
func (c *AppContainer) SinkStats() (message.SinkStats, bool) {
	s, ok := c.Sink.(interface{ Stats() message.SinkStats })
	if !ok {
		return message.SinkStats{}, false
	}
	return s.Stats(), true
}

// LogSummary logs session, controller, transport and render counters.
func (c *AppContainer) LogSummary() {
	if c.Logger == nil {
		return
	}
	scans, analyses := c.Session.Counts()
	_, total := c.Session.Values()
	st := c.Controller.Stats()
	rendered, dropped := c.DisplayPresenter.Stats()
	attrs := []any{
		"scans", scans,
		"analyses", analyses,
		"scan_time", total,
		"completed", st.Completed,
		"cancelled", st.Cancelled,
		"steps", st.Steps,
		"emitted", st.Emitted,
		"avg_extract", st.AvgExtract,
		"frames_rendered", rendered,
		"frames_dropped", dropped,
	}
	if ss, ok := c.SinkStats(); ok {
		attrs = append(attrs, "sent", ss.Sent, "send_failed", ss.Failed)
	}
	c.Logger.Info("session summary", attrs...)
}

// DebugAttrs returns counters that are safe to read off the UI thread, for the
// periodic debug loggers.
func (c *AppContainer) DebugAttrs() []any {
	rendered, dropped := c.DisplayPresenter.Stats()
	attrs := []any{
		"frames_rendered", rendered,
		"frames_dropped", dropped,
		"display_seq", c.Display.Sequence(),
	}
	if ss, ok := c.SinkStats(); ok {
		attrs = append(attrs, "sent", ss.Sent, "send_failed", ss.Failed)
	}
	return attrs
}

// Close releases the detector's native resources.
func (c *AppContainer) Close() error {
	if cl, ok := c.Detector.(interface{ Close() error }); ok {
		return cl.Close()
	}
	return nil
}
