package config

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/detection"
)

// RangeStore holds the live HSL range edited by the UI.
//
// Writers replace the whole range; readers get a copy. A pipeline run that
// starts with Snapshot() therefore never sees a half-applied update.
//
// RangeStore is safe for concurrent use.
type RangeStore struct {
	mu      sync.RWMutex
	rng     detection.HSLRange
	version uint64
}

// NewRangeStore creates a store seeded with initial.
func NewRangeStore(initial detection.HSLRange) *RangeStore {
	return &RangeStore{rng: initial}
}

// Snapshot returns the current range.
func (s *RangeStore) Snapshot() detection.HSLRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// Version counts accepted updates since creation.
func (s *RangeStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set validates and stores rng. On error the stored range is unchanged.
func (s *RangeStore) Set(rng detection.HSLRange) error {
	if err := rng.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.rng = rng
	s.version++
	v := s.version
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "RangeStore.Set",
		"version":  v,
		"hue":      []float64{rng.MinHue, rng.MaxHue},
		"sat":      []float64{rng.MinSat, rng.MaxSat},
		"lum":      []float64{rng.MinLum, rng.MaxLum},
	}).Debug("HSL range updated")

	return nil
}

// Update applies fn to a copy of the current range and stores the result if
// fn succeeds and the result validates. Otherwise the stored range is left as
// it was and returned with the error. fn runs under the store lock and must
// not call back into s.
func (s *RangeStore) Update(fn func(*detection.HSLRange) error) (detection.HSLRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.rng
	if err := fn(&next); err != nil {
		return s.rng, err
	}
	if err := next.Validate(); err != nil {
		return s.rng, err
	}
	s.rng = next
	s.version++

	return next, nil
}
