package features

import (
	"image"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Extractor computes keypoint metrics for image regions. It holds no state
// between calls besides its injected detector.
type Extractor struct {
	detector Detector
	logger   *slog.Logger
}

// NewExtractor returns an extractor backed by detector.
func NewExtractor(detector Detector, logger *slog.Logger) *Extractor {
	return &Extractor{detector: detector, logger: logger}
}

// Extract is ExtractChecked for callers that guarantee a non-empty region.
// An empty region yields zero Metrics.
func (e *Extractor) Extract(region image.Image) Metrics {
	m, err := e.ExtractChecked(region)
	if err != nil && e.logger != nil {
		e.logger.Error("feature extraction", "error", err)
	}
	return m
}

// ExtractChecked converts region to grayscale, detects keypoints and derives
// the metrics. The region's pixels are never modified.
func (e *Extractor) ExtractChecked(region image.Image) (Metrics, error) {
	if region == nil || region.Bounds().Empty() {
		return Metrics{}, ErrEmptyRegion
	}
	mat, err := GrayMat(region)
	if err != nil {
		return Metrics{}, err
	}
	defer mat.Close()
	gray := grayImage(mat)

	var kps []Keypoint
	if e.detector != nil {
		var found []Keypoint
		if md, ok := e.detector.(MatDetector); ok {
			found, err = md.DetectMat(mat)
		} else {
			found, err = e.detector.Detect(gray)
		}
		if err != nil {
			// detection failure degrades to an empty keypoint set
			if e.logger != nil {
				e.logger.Warn("keypoint detection failed", "error", err)
			}
		} else {
			kps = found
		}
	}
	return summarize(gray, kps), nil
}

func summarize(gray *image.Gray, kps []Keypoint) Metrics {
	m := Metrics{
		Contrast:    Contrast(gray),
		ObjectCount: len(kps),
		Sizes:       make([]float64, len(kps)),
		Keypoints:   kps,
	}
	for i, kp := range kps {
		m.Sizes[i] = kp.Size
	}
	if len(kps) == 0 {
		return m
	}
	m.MinSize = floats.Min(m.Sizes)
	m.MaxSize = floats.Max(m.Sizes)
	m.AvgSize = stat.Mean(m.Sizes, nil)

	b := gray.Bounds()
	cx, cy := float64(b.Dx()/2), float64(b.Dy()/2)
	dists := make([]float64, len(kps))
	for i, kp := range kps {
		dists[i] = math.Hypot(kp.X-cx, kp.Y-cy)
	}
	m.Proximity = stat.Mean(dists, nil)
	m.ProximityValid = true
	return m
}

// Contrast is the population standard deviation of the gray levels.
func Contrast(gray *image.Gray) float64 {
	b := gray.Bounds()
	if b.Empty() {
		return 0
	}
	values := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[gray.PixOffset(b.Min.X, y):gray.PixOffset(b.Max.X, y)]
		for _, v := range row {
			values = append(values, float64(v))
		}
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// ChannelStats flattens the R, G and B samples of region and returns their
// mean, population standard deviation and maximum.
func ChannelStats(region *image.RGBA) PixelStats {
	b := region.Bounds()
	if b.Empty() {
		return PixelStats{}
	}
	values := make([]float64, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := region.Pix[region.PixOffset(b.Min.X, y):region.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			values = append(values, float64(row[i]), float64(row[i+1]), float64(row[i+2]))
		}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return PixelStats{Mean: mean, Std: std, Max: floats.Max(values)}
}
