package inference

import (
	"context"
	"image"
)

// Region labels emitted by the detection model.
const (
	LabelGroup     = "group"
	LabelPole      = "pole"
	LabelTimestamp = "timestamp"
	LabelDetail    = "detail"
)

// BoundingBox 检测框，坐标为渲染后图像上的像素
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ContainsPoint reports whether (x, y) lies within the box, bounds inclusive.
func (b BoundingBox) ContainsPoint(x, y int) bool {
	return b.X1 <= x && x <= b.X2 && b.Y1 <= y && y <= b.Y2
}

// Rect returns the box as an image.Rectangle for cropping.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Region is one detected object on a page image.
type Region struct {
	Label      string      `json:"label"`
	Box        BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
}

// Detector runs object detection on a rendered page image. The order of the
// returned regions must be stable for identical input, group indexes are
// derived from it.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Region, error)
}

// TextExtractor runs OCR on a cropped region image.
type TextExtractor interface {
	Extract(ctx context.Context, img image.Image) (string, error)
}
