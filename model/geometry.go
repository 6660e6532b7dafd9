package model

import "math"

// Point represents a 2D point in page-image pixel space.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in raster coordinates: the origin is the
// top-left corner of the page image and Y increases downward, matching the
// geometry reported by OCR engines.
type BBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewBBox creates a bounding box from its four edges.
func NewBBox(left, top, right, bottom float64) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

// NewBBoxFromOffsets creates a bounding box from a top-left offset plus
// width and height, the shape OCR word records arrive in.
func NewBBoxFromOffsets(left, top, width, height float64) BBox {
	return BBox{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{
		X: (b.Left + b.Right) / 2,
		Y: (b.Top + b.Bottom) / 2,
	}
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right &&
		p.Y >= b.Top && p.Y <= b.Bottom
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Expand expands the bounding box by a margin on all sides.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Right:  b.Right + margin,
		Bottom: b.Bottom + margin,
	}
}

// IsValid reports whether the box is well-ordered with non-negative
// coordinates. Boxes failing this never enter layout analysis.
func (b BBox) IsValid() bool {
	return b.Left >= 0 && b.Top >= 0 &&
		b.Left <= b.Right && b.Top <= b.Bottom
}
