package overlay

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/graph-score/domain/features"
	"github.com/soocke/graph-score/domain/scan"
)

func grey(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

func TestIdleLines(t *testing.T) {
	assert.Equal(t, []string{
		"Duration: 6.0s",
		"Contrast: 0.0",
		"Objects: 0",
		"Proximity: 0.0",
	}, Idle(6*time.Second).Lines())
}

func TestFromMetrics_GuardsProximity(t *testing.T) {
	p := FromMetrics(2500*time.Millisecond, features.Metrics{Contrast: 12.34, ObjectCount: 3, Proximity: 99, ProximityValid: false})
	assert.Equal(t, []string{"Duration: 2.5s", "Contrast: 12.3", "Objects: 3", "Proximity: 0.0"}, p.Lines())

	p = FromMetrics(time.Second, features.Metrics{ObjectCount: 1, Proximity: 4.26, ProximityValid: true})
	assert.Equal(t, "Proximity: 4.3", p.Lines()[3])
}

func TestFromScanLines(t *testing.T) {
	p := FromScan(scan.Panel{
		Duration:     10 * time.Second,
		TotalObjects: 42,
		Slice:        features.PixelStats{Mean: 127.25, Std: 3, Max: 255},
		SliceObjects: 2,
	})
	assert.Equal(t, []string{
		"Duration: 10.0s",
		"Total Objects: 42",
		"Scan Mean: 127.2",
		"Scan Std: 3.0",
		"Scan Max: 255.0",
		"Scan Objects: 2",
	}, p.Lines())
}

func TestRender_DoesNotMutateFrame(t *testing.T) {
	frame := grey(300, 200, 128)
	orig := append([]uint8(nil), frame.Pix...)
	out := Render(frame, Idle(time.Second))
	require.NotNil(t, out)
	assert.True(t, bytes.Equal(orig, frame.Pix))
	assert.Equal(t, frame.Bounds(), out.Bounds())
}

func TestRender_PanelBottomRight(t *testing.T) {
	frame := grey(300, 200, 128)
	out := Render(frame, FromMetrics(time.Second, features.Metrics{ObjectCount: 7}))
	panel := image.Rect(300-DefaultWidth, 200-DefaultHeight, 300, 200)

	white, black := 0, 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			c := out.RGBAAt(x, y)
			if !image.Pt(x, y).In(panel) {
				require.Equal(t, color.RGBA{128, 128, 128, 255}, c, "pixel %d,%d outside panel changed", x, y)
				continue
			}
			switch c {
			case color.RGBA{0, 0, 0, 255}:
				black++
			case color.RGBA{255, 255, 255, 255}:
				white++
			}
		}
	}
	assert.Greater(t, white, 0, "text drawn")
	assert.Greater(t, black, white, "panel is mostly background")
}

func TestRender_ScanAndIdleShareBox(t *testing.T) {
	r := NewRenderer(0)
	b := image.Rect(0, 0, 500, 400)
	assert.Equal(t, image.Rect(360, 270, 500, 400), r.PanelRect(b))
	// six scan lines at a 20px pitch fit the fixed height
	assert.LessOrEqual(t, len(FromScan(scan.Panel{}).Lines())*linePitch, r.Height)
}

func TestRender_SmallFrameClipped(t *testing.T) {
	frame := grey(50, 40, 10)
	out := NewRenderer(140).Render(frame, Idle(time.Second))
	require.Equal(t, image.Rect(0, 0, 50, 40), out.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(0, 0))
}

func TestRender_SubImageFrame(t *testing.T) {
	frame := grey(300, 200, 90).SubImage(image.Rect(100, 50, 300, 200)).(*image.RGBA)
	out := Render(frame, Idle(time.Second))
	assert.Equal(t, image.Rect(0, 0, 200, 150), out.Bounds())
	assert.Equal(t, color.RGBA{90, 90, 90, 255}, out.RGBAAt(0, 0))
}
