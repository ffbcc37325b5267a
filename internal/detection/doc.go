// Package detection finds and highlights color regions in video frames.
//
// Detection here is purely color-based: every pixel is converted to HSL and
// tested against an acceptance window, the resulting binary mask is cleaned up
// by a block-threshold majority filter, and the surviving region is painted
// over the source frame in a solid highlight color.
//
// # Pipeline
//
//	frame + HSLRange ──ComputeMask──▶ Mask ──Smooth──▶ Mask ──Composite──▶ frame
//
// Pipeline.Run chains the three steps with fixed parameters (kernel 4,
// threshold 0.3, cyan by default).
//
// # Range Semantics
//
// All HSLRange bounds are inclusive. The hue window is a plain interval on
// [0, 360]; it does not wrap around red, so a window such as 350..10 matches
// no pixel at all. Pick 0..10 or 350..360 instead.
//
// # Thread Safety
//
// Every function in this package is pure with respect to its arguments. The
// range is a value, not shared state: callers that let users edit it live
// should keep it behind their own lock and pass a copy into each run (see
// config.RangeStore).
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
package detection
