package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/graph-score/config"
	"github.com/soocke/graph-score/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     FramePreview

	// Widgets
	StateLabel *LabelWidget
	editing    bool
}

// UI is the subset of view operations presenters need.
type UI interface {
	SetStateLabel(text string)
	SetConfigEditable(enabled bool)
	UpdateFrame(img image.Image)
	UpdateSlice(img image.Image)
	SetSession(scan, total time.Duration)
	SetCounts(scans, analyses int)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. onKey receives "a", "b" or "Escape" from both
// the keyboard and the buttons; onExit handles the Exit button.
func (rv *RootView) Build(onKey func(key string), onExit func()) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	rv.Session = NewSessionStats(0, 0)
	rv.StateLabel = Label(Txt("State: <none>"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	analyzeBtn := Button(Txt("Analyze (a)"), Command(func() { onKey("a") }))
	Grid(analyzeBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	scanBtn := Button(Txt("Scan (b)"), Command(func() { onKey("b") }))
	Grid(scanBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit (Esc)"), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(1)
	rv.trackEditing()

	maxW, maxH := 1424, 848
	if rv.cfg != nil {
		maxW, maxH = rv.cfg.FrameWidth, rv.cfg.FrameHeight
	}
	rv.Preview = NewFramePreview(endRow, maxW, maxH)

	// Letter commands are suppressed while a config field has focus.
	Bind(App, "<KeyPress-a>", Command(func() {
		if !rv.editing {
			onKey("a")
		}
	}))
	Bind(App, "<KeyPress-b>", Command(func() {
		if !rv.editing {
			onKey("b")
		}
	}))
	Bind(App, "<Escape>", Command(func() { onKey("Escape") }))
}

func (rv *RootView) trackEditing() {
	cp, ok := rv.ConfigPanel.(*configPanel)
	if !ok {
		return
	}
	for _, w := range cp.widgets {
		Bind(w, "<FocusIn>", Command(func() { rv.editing = true }))
		Bind(w, "<FocusOut>", Command(func() { rv.editing = false }))
	}
}

// SetStateLabel updates the state label text and colours it by state.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		bg, fg := theme.StateColors(strings.TrimPrefix(text, "State: "))
		rv.StateLabel.Configure(Txt(text), Background(bg), Foreground(fg))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateFrame(img)
	}
}

func (rv *RootView) UpdateSlice(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateSlice(img)
	}
}

func (rv *RootView) SetSession(scan, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(scan, total)
	}
}

func (rv *RootView) SetCounts(scans, analyses int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(scans, analyses)
	}
}
