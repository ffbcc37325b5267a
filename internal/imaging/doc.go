// Package imaging provides the frame type and pixel-level helpers for the
// webcam highlighter.
//
// A Frame is a row-major RGBA8 buffer with no padding between rows. Frames are
// produced by FrameLoader (from files or uploaded image bytes, scaled to the
// capture width) and converted back to image.Image or PNG when they leave the
// process.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Pixel (x, y) starts at byte offset (y*Width + x) * 4
//
// # Thread Safety
//
// The FrameLoader type is safe for concurrent use and always hands out private
// copies of cached frames. Frame itself is a plain value; callers that share a
// frame between goroutines must not modify it.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue in degrees [0, 360), Saturation and Lightness as fractions [0, 1]
//
// Achromatic colors (R = G = B) have hue 0 and saturation 0.
//
// # Filters
//
// ApplyFilter offers channel previews (gray, red, green, blue) used to inspect
// what the detector sees. They never feed back into detection.
package imaging
