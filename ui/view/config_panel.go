package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/graph-score/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// Scan settings apply to the next command; transport and detector settings are
// persisted and take effect on restart.
type ConfigPanel interface {
	Build(startRow int) (endRow int)
	SetEditable(enabled bool)
	ApplyChanges()
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("duration", "Duration Seconds", fmt.Sprintf("%.2f", c.DurationSeconds))
	makeRow("sliceWidth", "Slice Width Px", fmt.Sprintf("%d", c.SliceWidth))
	makeRow("drawKeypoints", "Draw Keypoints (true/false)", fmt.Sprintf("%t", c.DrawKeypoints))
	makeRow("detector", "Detector (sift/orb, restart)", c.Detector)
	makeRow("oscHost", "OSC Host (restart)", c.OSCHost)
	makeRow("oscPort", "OSC Port (restart)", fmt.Sprintf("%d", c.OSCPort))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	fields := make(map[string]string, len(v.widgets))
	for id := range v.widgets {
		if s, ok := v.text(id); ok {
			fields[id] = s
		}
	}
	cfg := applyFields(*v.cfg, fields)
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if v.cfgPath == "" {
		if v.logger != nil {
			v.logger.Info("config applied", "persisted", false)
		}
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}

// applyFields copies parseable form values into cfg. Unparseable values keep
// the previous setting.
func applyFields(cfg config.Config, fields map[string]string) config.Config {
	if f, ok := parseFloatField(fields["duration"]); ok {
		cfg.DurationSeconds = f
	}
	if i, ok := parseIntField(fields["sliceWidth"]); ok {
		cfg.SliceWidth = i
	}
	if b, ok := parseBoolLoose(fields["drawKeypoints"]); ok {
		cfg.DrawKeypoints = b
	}
	if s := strings.ToLower(fields["detector"]); s != "" {
		cfg.Detector = s
	}
	if s := fields["oscHost"]; s != "" {
		cfg.OSCHost = s
	}
	if i, ok := parseIntField(fields["oscPort"]); ok {
		cfg.OSCPort = i
	}
	return cfg
}

func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
