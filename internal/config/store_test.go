package config

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/hsl-camera/internal/detection"
)

func TestRangeStore_Snapshot(t *testing.T) {
	s := NewRangeStore(detection.DefaultHSLRange())
	assert.Equal(t, detection.DefaultHSLRange(), s.Snapshot())
	assert.Equal(t, uint64(0), s.Version())

	snap := s.Snapshot()
	snap.MinHue = 0
	assert.Equal(t, 200.0, s.Snapshot().MinHue, "snapshots are copies")
}

func TestRangeStore_Set(t *testing.T) {
	s := NewRangeStore(detection.DefaultHSLRange())

	next := detection.HSLRange{MinHue: 10, MaxHue: 40, MinSat: 0.2, MaxSat: 0.9, MinLum: 0.1, MaxLum: 0.8}
	require.NoError(t, s.Set(next))
	assert.Equal(t, next, s.Snapshot())
	assert.Equal(t, uint64(1), s.Version())

	bad := next
	bad.MaxLum = 1.2
	err := s.Set(bad)
	assert.True(t, errors.Is(err, detection.ErrInvalidRange))
	assert.Equal(t, next, s.Snapshot(), "rejected update leaves the range unchanged")
	assert.Equal(t, uint64(1), s.Version())
}

func TestRangeStore_Update(t *testing.T) {
	s := NewRangeStore(detection.DefaultHSLRange())

	got, err := s.Update(func(r *detection.HSLRange) error {
		r.MaxHue = 250
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.MaxHue)
	assert.Equal(t, 200.0, got.MinHue)
	assert.Equal(t, got, s.Snapshot())
	assert.Equal(t, uint64(1), s.Version())
}

func TestRangeStore_UpdateRollsBack(t *testing.T) {
	s := NewRangeStore(detection.DefaultHSLRange())
	boom := errors.New("boom")

	got, err := s.Update(func(r *detection.HSLRange) error {
		r.MinHue = 0
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, detection.DefaultHSLRange(), got)

	got, err = s.Update(func(r *detection.HSLRange) error {
		r.MinSat = -1
		return nil
	})
	assert.ErrorIs(t, err, detection.ErrInvalidRange)
	assert.Equal(t, detection.DefaultHSLRange(), got)

	assert.Equal(t, detection.DefaultHSLRange(), s.Snapshot())
	assert.Equal(t, uint64(0), s.Version())
}

func TestRangeStore_ConcurrentAccess(t *testing.T) {
	s := NewRangeStore(detection.HSLRange{MinHue: 0, MaxHue: 100, MinSat: 0, MaxSat: 1, MinLum: 0, MaxLum: 1})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Update(func(r *detection.HSLRange) error {
				r.MinHue = float64(i)
				r.MaxHue = float64(i + 100)
				return nil
			})
		}(i)
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			assert.Equal(t, snap.MinHue+100, snap.MaxHue, "snapshot must not be torn")
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(20), s.Version())
}
