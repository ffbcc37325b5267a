package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// Output is one processed frame leaving the loop.
type Output struct {
	// ID uniquely identifies this output across restarts.
	ID string

	// Seq is the loop-local sequence number, starting at 1.
	Seq uint64

	// Frame is the composited frame.
	Frame *imaging.Frame

	// Coverage is the fraction of pixels that were highlighted.
	Coverage float64

	// ProcessedAt is when the pipeline finished this frame.
	ProcessedAt time.Time
}

// Sink receives processed frames. Implementations must not modify the frame.
type Sink interface {
	Put(out Output) error
}

// LatestSink keeps only the most recent output, for polling clients.
type LatestSink struct {
	mu     sync.RWMutex
	latest *Output
}

// NewLatestSink creates an empty sink.
func NewLatestSink() *LatestSink {
	return &LatestSink{}
}

// Put replaces the stored output.
func (s *LatestSink) Put(out Output) error {
	s.mu.Lock()
	s.latest = &out
	s.mu.Unlock()
	return nil
}

// Latest returns the most recent output, if any.
func (s *LatestSink) Latest() (Output, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Output{}, false
	}
	return *s.latest, true
}

// DirSink writes every output as a numbered PNG file.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Path returns the file an output with sequence number seq is written to.
func (s *DirSink) Path(seq uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame-%06d.png", seq))
}

// Put encodes out.Frame to its numbered file.
func (s *DirSink) Put(out Output) error {
	f, err := os.Create(s.Path(out.Seq))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := imaging.EncodePNG(f, out.Frame); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// MultiSink fans each output out to several sinks, stopping at the first error.
type MultiSink []Sink

// Put forwards out to every sink in order.
func (m MultiSink) Put(out Output) error {
	for _, s := range m {
		if err := s.Put(out); err != nil {
			return err
		}
	}
	return nil
}
