package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// ErrNoFrame is returned by a Source that has nothing new to deliver yet.
// The loop skips the tick and tries again on the next one.
var ErrNoFrame = errors.New("no frame available")

// Source delivers frames to the capture loop.
//
// Next returns io.EOF when the source is exhausted and ErrNoFrame when it is
// merely idle.
type Source interface {
	Next(ctx context.Context) (*imaging.Frame, error)
}

// SnapshotSource is a single-slot mailbox fed by an external producer such
// as browser uploads. A new frame replaces one that was not consumed yet;
// only the latest snapshot is ever processed.
type SnapshotSource struct {
	mu      sync.Mutex
	pending *imaging.Frame
	dropped uint64
}

// NewSnapshotSource creates an empty mailbox.
func NewSnapshotSource() *SnapshotSource {
	return &SnapshotSource{}
}

// Put stores f as the next frame to process.
func (s *SnapshotSource) Put(f *imaging.Frame) {
	s.mu.Lock()
	if s.pending != nil {
		s.dropped++
	}
	s.pending = f
	s.mu.Unlock()
}

// Next hands out the pending frame and empties the slot.
func (s *SnapshotSource) Next(ctx context.Context) (*imaging.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, ErrNoFrame
	}
	f := s.pending
	s.pending = nil
	return f, nil
}

// Dropped counts snapshots overwritten before the loop consumed them.
func (s *SnapshotSource) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// imageExts lists the file extensions FileSource picks up from a directory.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// FileSource plays back still images from disk in lexical order, standing in
// for a camera.
type FileSource struct {
	loader *imaging.FrameLoader
	paths  []string
	repeat bool

	mu   sync.Mutex
	next int
}

// NewFileSource creates a source for path, which may be a single image or a
// directory of images. With repeat set, playback wraps around instead of
// ending with io.EOF.
func NewFileSource(loader *imaging.FrameLoader, path string, repeat bool) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	var paths []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			paths = append(paths, filepath.Join(path, e.Name()))
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s", path)
	}

	return &FileSource{loader: loader, paths: paths, repeat: repeat}, nil
}

// Len returns the number of images in the playlist.
func (s *FileSource) Len() int {
	return len(s.paths)
}

// Next loads the next image of the playlist.
func (s *FileSource) Next(ctx context.Context) (*imaging.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.next >= len(s.paths) {
		if !s.repeat {
			s.mu.Unlock()
			return nil, io.EOF
		}
		s.next = 0
	}
	path := s.paths[s.next]
	s.next++
	s.mu.Unlock()

	return s.loader.Load(path)
}
