package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/geometry"
)

func TestTrackThenIsTracked(t *testing.T) {
	s := NewStore(0)
	key := Key{SourceID: 1, ObjectID: 5}

	s.Track(key, 1, geometry.NewRect(0, 0, 10, 10), time.Now())

	assert.True(t, s.IsTracked(key), "expected freshly tracked key to report tracked")
}

func TestPurgeRetainsOnlyCurrentFrame(t *testing.T) {
	s := NewStore(0)
	now := time.Now()

	a := Key{SourceID: 1, ObjectID: 1}
	b := Key{SourceID: 1, ObjectID: 2}

	s.Track(a, 10, geometry.NewRect(0, 0, 1, 1), now)
	s.Track(b, 11, geometry.NewRect(0, 0, 1, 1), now)

	s.Purge(11)

	assert.False(t, s.IsTracked(a), "expected stale entry to be purged")
	assert.True(t, s.IsTracked(b), "expected current-frame entry to be retained")

	obj, ok := s.Get(b)
	assert.True(t, ok)
	assert.Equal(t, uint64(11), obj.LastSeenFrame())
}

func TestUpdateBoundsTraceLength(t *testing.T) {
	s := NewStore(3)
	key := Key{SourceID: 1, ObjectID: 1}

	s.Track(key, 1, geometry.NewRect(0, 0, 1, 1), time.Now())
	for f := uint64(2); f <= 5; f++ {
		s.Update(key, f, geometry.NewRect(float64(f), 0, 1, 1), time.Now())
	}

	obj, ok := s.Get(key)
	assert.True(t, ok)
	trace := obj.Trace(geometry.Center, FullTrace)

	assert.Len(t, trace, 3, "expected trace length capped at max history")
}

func TestGetDurationMs(t *testing.T) {
	s := NewStore(0)
	key := Key{SourceID: 1, ObjectID: 1}

	start := time.Now()
	s.Track(key, 1, geometry.NewRect(0, 0, 1, 1), start)
	s.Update(key, 2, geometry.NewRect(0, 0, 1, 1), start.Add(2*time.Second))

	obj, ok := s.Get(key)
	assert.True(t, ok)
	assert.Equal(t, int64(2000), obj.DurationMs())
}

func TestEndpointsTraceMethod(t *testing.T) {
	s := NewStore(0)
	key := Key{SourceID: 1, ObjectID: 1}

	s.Track(key, 1, geometry.NewRect(0, 0, 2, 2), time.Now())
	s.Update(key, 2, geometry.NewRect(10, 10, 2, 2), time.Now())
	s.Update(key, 3, geometry.NewRect(20, 20, 2, 2), time.Now())

	obj, ok := s.Get(key)
	assert.True(t, ok)
	endpoints := obj.Trace(geometry.Center, Endpoints)

	assert.Len(t, endpoints, 2)
	assert.Equal(t, 1.0, endpoints[0].X)
	assert.Equal(t, 21.0, endpoints[1].X)
}
