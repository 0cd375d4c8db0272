package view

import (
	"image"

	"github.com/soocke/graph-score/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FramePreview owns the annotated frame label and the slice preview label.
type FramePreview interface {
	UpdateFrame(img image.Image)
	UpdateSlice(img image.Image)
	Reset()
}

type framePreview struct {
	frameLabel     *LabelWidget
	sliceLabel     *LabelWidget
	maxW, maxH     int
	sliceMaxH      int
	prevFramePhoto *Img // disposed before replacement so old pixel data is not retained
	prevSlicePhoto *Img
}

// NewFramePreview creates both labels in row. The frame spans columns 0-3 and
// is scaled to fit maxW x maxH; the slice sits in column 4.
func NewFramePreview(row, maxW, maxH int) FramePreview {
	placeholder := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 200, 120)))
	slicePlaceholder := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 60, 120)))
	framePhoto := NewPhoto(Data(placeholder))
	slicePhoto := NewPhoto(Data(slicePlaceholder))
	frame := Label(Image(framePhoto), Borderwidth(1), Relief("sunken"))
	slice := Label(Image(slicePhoto), Borderwidth(1), Relief("sunken"))
	Grid(frame, Row(row), Column(0), Columnspan(4), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	Grid(slice, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return &framePreview{
		frameLabel:     frame,
		sliceLabel:     slice,
		maxW:           max(maxW, 50),
		maxH:           max(maxH, 50),
		sliceMaxH:      max(maxH, 50),
		prevFramePhoto: framePhoto,
		prevSlicePhoto: slicePhoto,
	}
}

func (v *framePreview) UpdateFrame(img image.Image) {
	if v.frameLabel == nil || img == nil {
		return
	}
	v.prevFramePhoto = replacePhoto(v.frameLabel, v.prevFramePhoto, images.ScaleToFit(img, v.maxW, v.maxH))
}

func (v *framePreview) UpdateSlice(img image.Image) {
	if v.sliceLabel == nil || img == nil {
		return
	}
	v.prevSlicePhoto = replacePhoto(v.sliceLabel, v.prevSlicePhoto, images.ScaleToFit(img, v.maxW, v.sliceMaxH))
}

func (v *framePreview) Reset() {
	if v.sliceLabel != nil {
		v.prevSlicePhoto = replacePhoto(v.sliceLabel, v.prevSlicePhoto, image.NewRGBA(image.Rect(0, 0, 60, 120)))
	}
}

func replacePhoto(label *LabelWidget, prev *Img, img image.Image) *Img {
	if prev != nil {
		prev.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	label.Configure(Image(photo))
	return photo
}
