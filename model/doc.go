// Package model provides the intermediate representation for page layout
// inference.
//
// This package defines the data structures shared by every stage of the
// pipeline: recognized tokens with pixel geometry, per-page results, and
// the document-level result envelope.
//
// # Tokens
//
// A [Token] is a single recognized text unit with a bounding box, a
// precomputed center point, and a recognition confidence. Token ids are
// stable composites of page number and recognition index, so identical
// input always produces identical ids.
//
// # Geometry
//
// Geometric primitives use raster coordinates (top-left origin, Y grows
// downward), the convention OCR engines report in:
//
//   - [BBox] - bounding box with union, intersection and containment checks
//   - [Point] - 2D point with distance calculation
//
// # Results
//
// A [PageResult] holds the located fields, the detected table grid, and the
// raw text of one page. [Result] wraps the ordered page results with
// [Metadata] (duration, page count, processor identity) and serializes to
// the service's JSON wire shape.
package model
