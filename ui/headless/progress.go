package headless

import (
	"image"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/soocke/graph-score/domain/scan"
)

// Progress reports scan steps as a terminal progress bar. A new bar starts at
// cursor 0 of every scan.
type Progress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func NewProgress(w io.Writer) *Progress { return &Progress{w: w} }

// ShowScan implements scan.View. The frame is not used.
func (p *Progress) ShowScan(_ *image.RGBA, sp scan.Panel) {
	if sp.TotalSteps <= 0 {
		return
	}
	if p.bar == nil || sp.Cursor == 0 {
		p.bar = progressbar.NewOptions(sp.TotalSteps,
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionShowCount(),
		)
	}
	_ = p.bar.Set(sp.Cursor + 1)
	if sp.Cursor >= sp.TotalSteps-1 {
		_ = p.bar.Finish()
	}
}
