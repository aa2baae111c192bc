package state_store

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
)

// Well-known keys. The synchronization engine owns KeySelectedAxis and KeyAnimating;
// every other key belongs to some other writer.
const (
	KeySelectedAxis      = "gizmo.selectedAxis"
	KeyAnimating         = "gizmo.isAnimating"
	KeyCameraOrientation = "camera.orientation"
)

// Origins tag who wrote a value so subscribers can ignore their own writes.
const (
	OriginWidget   = "widget"
	OriginExternal = "external"
)

// Change describes one write to the store.
type Change struct {
	Key    string
	Value  any
	Origin string
}

// Store is the application-wide key-value state shared between the gizmo, the
// synchronization engine and the rest of the viewer. Writes are last-write-wins and every
// write notifies subscribers synchronously, in subscription order.
type Store interface {
	// SelectedAxis returns the currently selected gizmo axis (AxisNone if unset).
	SelectedAxis() camera.AxisDirection

	// SetSelectedAxis records the selected axis.
	//
	// Parameters:
	//   - axis: the selection (AxisNone clears it)
	//   - origin: identifies the writer
	SetSelectedAxis(axis camera.AxisDirection, origin string)

	// Animating returns whether a camera transition is in progress.
	Animating() bool

	// SetAnimating records the animation flag.
	//
	// Parameters:
	//   - animating: the new flag value
	//   - origin: identifies the writer
	SetAnimating(animating bool, origin string)

	// Get returns the value stored under key.
	//
	// Parameters:
	//   - key: the key to read
	//
	// Returns:
	//   - any: the stored value
	//   - bool: false if the key was never written
	Get(key string) (any, bool)

	// Set stores value under key and notifies subscribers.
	//
	// Parameters:
	//   - key: the key to write
	//   - value: the new value
	//   - origin: identifies the writer
	Set(key string, value any, origin string)

	// Subscribe registers fn for every subsequent write.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - func(): removes the callback
	Subscribe(fn func(Change)) (unsubscribe func())

	// Writes returns how many times key has been written.
	Writes(key string) int
}

type storeImpl struct {
	mu     *sync.Mutex
	values map[string]any
	writes map[string]int

	listeners common.Listeners[Change]
}

var _ Store = &storeImpl{}

// NewStore creates an empty in-memory Store.
//
// Returns:
//   - Store: the newly created store
func NewStore() Store {
	return &storeImpl{
		mu:     &sync.Mutex{},
		values: make(map[string]any),
		writes: make(map[string]int),
	}
}

func (s *storeImpl) SelectedAxis() camera.AxisDirection {
	v, ok := s.Get(KeySelectedAxis)
	if !ok {
		return camera.AxisNone
	}
	axis, _ := v.(camera.AxisDirection)
	return axis
}

func (s *storeImpl) SetSelectedAxis(axis camera.AxisDirection, origin string) {
	s.Set(KeySelectedAxis, axis, origin)
}

func (s *storeImpl) Animating() bool {
	v, _ := s.Get(KeyAnimating)
	animating, _ := v.(bool)
	return animating
}

func (s *storeImpl) SetAnimating(animating bool, origin string) {
	s.Set(KeyAnimating, animating, origin)
}

func (s *storeImpl) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *storeImpl) Set(key string, value any, origin string) {
	s.mu.Lock()
	s.values[key] = value
	s.writes[key]++
	s.mu.Unlock()

	s.listeners.Notify(Change{Key: key, Value: value, Origin: origin})
}

func (s *storeImpl) Subscribe(fn func(Change)) func() {
	return s.listeners.Add(fn)
}

func (s *storeImpl) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}
