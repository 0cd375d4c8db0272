package features

import (
	"errors"
	"image"
)

// ErrEmptyRegion is returned when extraction is requested on a zero-area region.
var ErrEmptyRegion = errors.New("features: empty region")

// Keypoint is a detected salient point in region coordinates.
type Keypoint struct {
	X, Y float64
	Size float64
}

// Detector finds keypoints in a single-channel image.
// Implementations must be deterministic for a fixed input and may return no keypoints.
type Detector interface {
	Detect(gray *image.Gray) ([]Keypoint, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(gray *image.Gray) ([]Keypoint, error)

func (f DetectorFunc) Detect(gray *image.Gray) ([]Keypoint, error) { return f(gray) }

// Metrics summarises one extraction call.
//
// ObjectCount always equals len(Sizes). Proximity is the mean distance of the
// keypoints to the region center; with no keypoints it is 0 and ProximityValid
// is false.
type Metrics struct {
	Contrast       float64
	ObjectCount    int
	Sizes          []float64
	Proximity      float64
	ProximityValid bool
	MinSize        float64
	AvgSize        float64
	MaxSize        float64
	Keypoints      []Keypoint
}

// PixelStats holds flattened channel statistics for a region (alpha excluded).
type PixelStats struct {
	Mean float64
	Std  float64
	Max  float64
}
