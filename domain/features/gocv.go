package features

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// CloseDetector is a Detector holding native resources.
type CloseDetector interface {
	Detector
	Close() error
}

// MatDetector is implemented by detectors that take the gray Mat directly,
// so the extractor skips rebuilding one from an *image.Gray.
type MatDetector interface {
	DetectMat(gray gocv.Mat) ([]Keypoint, error)
}

// NewDetector builds the OpenCV backed detector named by kind ("sift" or "orb").
func NewDetector(kind string) (CloseDetector, error) {
	switch kind {
	case "", "sift":
		return NewSIFTDetector(), nil
	case "orb":
		return NewORBDetector(), nil
	default:
		return nil, fmt.Errorf("features: unknown detector %q", kind)
	}
}

// SIFTDetector wraps the OpenCV SIFT implementation.
type SIFTDetector struct {
	sift gocv.SIFT
}

// NewSIFTDetector allocates a SIFT instance; call Close when done.
func NewSIFTDetector() *SIFTDetector {
	return &SIFTDetector{sift: gocv.NewSIFT()}
}

func (d *SIFTDetector) Detect(gray *image.Gray) ([]Keypoint, error) {
	mat, err := grayMat(gray)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	return d.DetectMat(mat)
}

func (d *SIFTDetector) DetectMat(gray gocv.Mat) ([]Keypoint, error) {
	return fromCV(d.sift.Detect(gray)), nil
}

func (d *SIFTDetector) Close() error { return d.sift.Close() }

// ORBDetector wraps the OpenCV ORB implementation.
type ORBDetector struct {
	orb gocv.ORB
}

func NewORBDetector() *ORBDetector {
	return &ORBDetector{orb: gocv.NewORB()}
}

func (d *ORBDetector) Detect(gray *image.Gray) ([]Keypoint, error) {
	mat, err := grayMat(gray)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	return d.DetectMat(mat)
}

func (d *ORBDetector) DetectMat(gray gocv.Mat) ([]Keypoint, error) {
	return fromCV(d.orb.Detect(gray)), nil
}

func (d *ORBDetector) Close() error { return d.orb.Close() }

func fromCV(kps []gocv.KeyPoint) []Keypoint {
	out := make([]Keypoint, len(kps))
	for i, kp := range kps {
		out[i] = Keypoint{X: kp.X, Y: kp.Y, Size: kp.Size}
	}
	return out
}
