package track

import (
	"sync"
	"time"

	"github.com/nimbusvid/odecore/geometry"
)

// Store is the exclusive-owner mapping (sourceId, objectId) -> Object used
// by Cross, Persistence, Earliest, and Latest triggers.
type Store struct {
	mu sync.Mutex

	// maxHistory bounds each Object's per-test-point trace length. 0
	// means unbounded, used by duration-only variants (Persistence,
	// Earliest, Latest) that never need more than the first/last sample.
	maxHistory int
	testPoints []geometry.TestPoint

	objects map[Key]*Object
}

// NewStore creates a Store that records traces at each of the given test
// points, keeping at most maxHistory points per test point per object.
func NewStore(maxHistory int, testPoints ...geometry.TestPoint) *Store {
	if len(testPoints) == 0 {
		testPoints = []geometry.TestPoint{geometry.Center}
	}

	return &Store{
		maxHistory: maxHistory,
		testPoints: testPoints,
		objects:    make(map[Key]*Object),
	}
}

// IsTracked reports whether key has an entry in the store.
func (s *Store) IsTracked(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[key]
	return ok
}

// Track inserts a new Object for key with a single trace sample per
// registered test point.
func (s *Store) Track(key Key, frame uint64, rect geometry.Rect, at time.Time) *Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := newObject(key, s.maxHistory)
	obj.CreatedAt = at
	obj.lastSeenAt = at
	obj.lastSeenFrame = frame

	for _, tp := range s.testPoints {
		obj.append(tp, TracePoint{Frame: frame, Rect: rect, Point: tp.Locate(rect), At: at})
	}

	s.objects[key] = obj
	return obj
}

// Get returns the tracked Object for key, if any.
func (s *Store) Get(key Key) (*Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	return obj, ok
}

// Update appends a new trace sample for key at each registered test
// point and advances its last-seen frame. If key is not yet tracked, it
// is tracked first.
func (s *Store) Update(key Key, frame uint64, rect geometry.Rect, at time.Time) *Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		obj = newObject(key, s.maxHistory)
		obj.CreatedAt = at
		s.objects[key] = obj
	}

	obj.lastSeenAt = at
	obj.lastSeenFrame = frame

	for _, tp := range s.testPoints {
		obj.append(tp, TracePoint{Frame: frame, Rect: rect, Point: tp.Locate(rect), At: at})
	}

	return obj
}

// Purge removes every entry whose last-seen frame is not currentFrame.
func (s *Store) Purge(currentFrame uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, obj := range s.objects {
		if obj.lastSeenFrame != currentFrame {
			delete(s.objects, key)
		}
	}
}

// Clear removes every tracked object.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects = make(map[Key]*Object)
}

// IsEmpty reports whether the store currently holds no objects.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects) == 0
}

// Len reports the number of currently tracked objects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects)
}
