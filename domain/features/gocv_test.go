package features

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// disc draws a filled white disc on a black canvas.
func disc(w, h, cx, cy, r int) *image.RGBA {
	img := uniform(w, h, 0)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func newSIFT(t *testing.T) *SIFTDetector {
	t.Helper()
	d := NewSIFTDetector()
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestSIFTDetector_FindsDisc(t *testing.T) {
	const cx, cy, r = 60, 50, 14
	img := disc(120, 100, cx, cy, r)
	m := NewExtractor(newSIFT(t), nil).Extract(img)

	require.NotZero(t, m.ObjectCount)
	nearest := math.Inf(1)
	for _, kp := range m.Keypoints {
		d := math.Hypot(kp.X-cx, kp.Y-cy)
		nearest = math.Min(nearest, d)
		assert.LessOrEqual(t, d, float64(r+10), "keypoint %+v away from the disc", kp)
	}
	assert.LessOrEqual(t, nearest, float64(r))
	assert.Equal(t, len(m.Keypoints), len(m.Sizes))
}

func TestSIFTDetector_UniformImageHasNoKeypoints(t *testing.T) {
	m := NewExtractor(newSIFT(t), nil).Extract(uniform(80, 60, 128))
	assert.Zero(t, m.ObjectCount)
	assert.False(t, m.ProximityValid)
}

func TestSIFTDetector_SubImageMatchesPackedCopy(t *testing.T) {
	frame := disc(200, 100, 130, 50, 12)
	sub := frame.SubImage(image.Rect(100, 0, 160, 100)).(*image.RGBA)
	packed := disc(60, 100, 30, 50, 12)
	d := newSIFT(t)
	e := NewExtractor(d, nil)

	fromSub := e.Extract(sub)
	fromPacked := e.Extract(packed)
	require.NotZero(t, fromPacked.ObjectCount)
	assert.Equal(t, fromPacked.Keypoints, fromSub.Keypoints)

	// the *image.Gray entry point repacks strided input the same way
	graySub, err := Grayscale(sub)
	require.NoError(t, err)
	grayFrame, err := Grayscale(frame)
	require.NoError(t, err)
	viaGray, err := d.Detect(grayFrame.SubImage(image.Rect(100, 0, 160, 100)).(*image.Gray))
	require.NoError(t, err)
	viaPacked, err := d.Detect(graySub)
	require.NoError(t, err)
	assert.Equal(t, viaPacked, viaGray)
	assert.Equal(t, fromPacked.Keypoints, viaPacked)
}

func TestORBDetector_FindsSquareCorners(t *testing.T) {
	img := uniform(200, 200, 0)
	for y := 80; y < 120; y++ {
		for x := 80; x < 120; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	d, err := NewDetector("orb")
	require.NoError(t, err)
	defer d.Close()
	require.IsType(t, &ORBDetector{}, d)

	m := NewExtractor(d, nil).Extract(img)
	require.NotZero(t, m.ObjectCount)
	for _, kp := range m.Keypoints {
		assert.True(t, kp.X > 60 && kp.X < 140 && kp.Y > 60 && kp.Y < 140, "keypoint %+v away from the square", kp)
	}
}

func TestDetectors_EmptyGray(t *testing.T) {
	_, err := newSIFT(t).Detect(image.NewGray(image.Rect(0, 0, 0, 5)))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func TestNewDetector(t *testing.T) {
	for _, kind := range []string{"", "sift"} {
		d, err := NewDetector(kind)
		require.NoError(t, err, kind)
		assert.IsType(t, &SIFTDetector{}, d)
		assert.NoError(t, d.Close())
	}
	_, err := NewDetector("bogus")
	assert.ErrorContains(t, err, `unknown detector "bogus"`)
}
