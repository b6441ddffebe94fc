package handle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Table maps handles to values of type T. It is safe for concurrent use.
type Table[T any] struct {
	kind      Kind
	onRelease func(T)

	mu     sync.RWMutex
	values map[uuid.UUID]T
}

// NewTable creates a table of kind. onRelease, when not nil, is called with
// every released value, e.g. to wipe key material.
func NewTable[T any](kind Kind, onRelease func(T)) *Table[T] {
	return &Table[T]{
		kind:      kind,
		onRelease: onRelease,
		values:    make(map[uuid.UUID]T),
	}
}

// Insert stores v and returns its handle.
func (t *Table[T]) Insert(v T) Handle {
	token := uuid.New()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.values[token] = v
	return Handle{kind: t.kind, token: token}
}

// Get returns the value of h without copying it.
func (t *Table[T]) Get(h Handle) (T, error) {
	var zero T
	if err := t.check(h); err != nil {
		return zero, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.values[h.token]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	return v, nil
}

// Release removes h from the table. Releasing a handle twice is an error.
func (t *Table[T]) Release(h Handle) error {
	if err := t.check(h); err != nil {
		return err
	}

	t.mu.Lock()
	v, ok := t.values[h.token]
	delete(t.values, h.token)
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	if t.onRelease != nil {
		t.onRelease(v)
	}
	return nil
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.values)
}

func (t *Table[T]) check(h Handle) error {
	if h.IsNull() {
		return fmt.Errorf("%w: null handle", ErrInvalidHandle)
	}
	if h.kind != t.kind {
		return fmt.Errorf("%w: expected %s, got %s", ErrHandleKind, t.kind, h.kind)
	}
	return nil
}
