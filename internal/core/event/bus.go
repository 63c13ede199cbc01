package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during a frame land in
// the back buffer; SwapBuffers makes them readable and DispatchAll delivers
// them. The scene swaps and dispatches once per frame, after physics.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
	order    []reflect.Type
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	if _, seen := b.back[t]; !seen {
		b.track(t)
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.track(t)
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// track records first-seen order so dispatch across types is deterministic.
func (b *Bus) track(t reflect.Type) {
	for _, known := range b.order {
		if known == t {
			return
		}
	}
	b.order = append(b.order, t)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
func (b *Bus) DispatchAll() {
	for _, t := range b.order {
		handlers := b.handlers[t]
		for _, ev := range b.front[t] {
			for _, h := range handlers {
				h(ev)
			}
		}
	}
}

// Pending returns the number of events of type T waiting in the back buffer.
func Pending[T any](b *Bus) int {
	return len(b.back[typeOf[T]()])
}
