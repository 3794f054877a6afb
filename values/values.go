// Package values is a typed name→value store scripts use to hand data
// between widgets without going through the widget tree.
//
// Keys are 32-bit FNV-1a hashes of a name. Each Go type has its own key
// space, so Put[int32](s, h, 1) and Put[string](s, h, "a") never collide.
// Nothing is persisted; a Store lives as long as the session that owns it.
package values

import (
	"hash/fnv"
	"reflect"
	"sync"
)

type slotKey struct {
	typ  reflect.Type
	name uint32
}

// Store holds named values. The zero value is not usable; call NewStore.
// A Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	slots map[slotKey]any
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{slots: make(map[slotKey]any)}
}

// Hash returns the 32-bit key for name.
func Hash(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

func keyOf[T any](name uint32) slotKey {
	return slotKey{typ: reflect.TypeFor[T](), name: name}
}

// Put stores v under name, replacing any previous value of the same type.
// It reports whether the key was newly created.
func Put[T any](s *Store, name uint32, v T) bool {
	k := keyOf[T](name)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.slots[k]
	s.slots[k] = v
	return !existed
}

// Get returns the value of type T stored under name.
func Get[T any](s *Store, name uint32) (T, bool) {
	s.mu.RLock()
	v, ok := s.slots[keyOf[T](name)]
	s.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Clear removes the value of type T stored under name and reports whether
// one was present.
func Clear[T any](s *Store, name uint32) bool {
	k := keyOf[T](name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[k]; !ok {
		return false
	}
	delete(s.slots, k)
	return true
}

// Len returns the number of stored values across all types.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// Reset removes every value.
func (s *Store) Reset() {
	s.mu.Lock()
	clear(s.slots)
	s.mu.Unlock()
}
