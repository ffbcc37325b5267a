package imaging

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/disintegration/imaging"
)

// DefaultFrameWidth is the nominal width frames are scaled to before
// processing. The height follows the source aspect ratio.
const DefaultFrameWidth = 240

// FrameLoader decodes images into Frames, scaling them to a fixed width, and
// caches frames decoded from disk.
//
// The cache stores decoded frames keyed by their file path. Once a file is
// loaded, subsequent Load() calls for the same path return a copy of the
// cached frame without disk I/O.
//
// FrameLoader is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached frames remain in memory until explicitly removed via Evict() or Clear().
// For long-running processes handling many files, consider periodic cleanup to
// prevent unbounded memory growth.
//
// # Example Usage
//
//	loader := imaging.NewFrameLoader(imaging.DefaultFrameWidth)
//	frame, err := loader.Load("/path/to/snapshot.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
type FrameLoader struct {
	// width is the target frame width; 0 keeps the source size.
	width int

	mu     sync.RWMutex
	frames map[string]*Frame
}

// NewFrameLoader creates a loader that scales every decoded image to width
// pixels wide. A width of 0 disables scaling.
func NewFrameLoader(width int) *FrameLoader {
	if width < 0 {
		width = 0
	}
	return &FrameLoader{
		width:  width,
		frames: make(map[string]*Frame),
	}
}

// Width returns the target width, or 0 when frames keep their source size.
func (l *FrameLoader) Width() int {
	return l.width
}

// Load retrieves a frame from the cache or decodes it from disk if not cached.
//
// Supported formats are whatever disintegration/imaging can open (PNG, JPEG,
// GIF, BMP, TIFF). EXIF orientation is applied for JPEG files.
//
// The returned frame is a private copy; callers may modify it freely.
func (l *FrameLoader) Load(path string) (*Frame, error) {
	l.mu.RLock()
	if f, ok := l.frames[path]; ok {
		l.mu.RUnlock()
		return f.Clone(), nil
	}
	l.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	f := l.fromImage(img)

	l.mu.Lock()
	l.frames[path] = f
	l.mu.Unlock()

	return f.Clone(), nil
}

// Decode reads a single encoded image from r and converts it to a scaled
// frame. Decoded streams are never cached.
func (l *FrameLoader) Decode(r io.Reader) (*Frame, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return l.fromImage(img), nil
}

// Clear removes all frames from the cache.
func (l *FrameLoader) Clear() {
	l.mu.Lock()
	l.frames = make(map[string]*Frame)
	l.mu.Unlock()
}

// Evict removes a specific frame from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (l *FrameLoader) Evict(path string) {
	l.mu.Lock()
	delete(l.frames, path)
	l.mu.Unlock()
}

// Cached reports how many decoded frames are held in the cache.
func (l *FrameLoader) Cached() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.frames)
}

func (l *FrameLoader) fromImage(img image.Image) *Frame {
	if l.width > 0 && img.Bounds().Dx() != l.width {
		// Height 0 keeps the aspect ratio.
		img = imaging.Resize(img, l.width, 0, imaging.Linear)
	}
	return FrameFromImage(img)
}
