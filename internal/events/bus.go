// Package events implements the named broadcast channel between the shell
// and its front-end surfaces.
package events

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gen3d-desktop/internal/logger"
)

var (
	ErrBufferFull = errors.New("event buffer full")
	ErrClosed     = errors.New("event bus closed")
)

type Event struct {
	Name      string
	Payload   string
	Timestamp time.Time
}

type Handler interface {
	Handle(event Event)
	GetID() string
}

// HandlerFunc adapts a plain function into a Handler identified by id.
func HandlerFunc(id string, fn func(Event)) Handler {
	return &funcHandler{id: id, fn: fn}
}

type funcHandler struct {
	id string
	fn func(Event)
}

func (h *funcHandler) Handle(event Event) { h.fn(event) }
func (h *funcHandler) GetID() string      { return h.id }

type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex

	buffer   chan Event
	closeMu  sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	logger   logger.Logger
	shutdown sync.Once
}

func NewBus(bufferSize int, log logger.Logger) *Bus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	bus := &Bus{
		subscribers: make(map[string][]Handler),
		buffer:      make(chan Event, bufferSize),
		logger:      log,
	}

	bus.startWorker()
	return bus
}

// Publish queues the event without blocking.
func (b *Bus) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.closeMu.RLock()
	defer b.closeMu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	select {
	case b.buffer <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

func (b *Bus) Emit(name, payload string) error {
	return b.Publish(Event{Name: name, Payload: payload})
}

func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[name] = append(b.subscribers[name], handler)
}

func (b *Bus) Unsubscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[name]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[name] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
}

// Shutdown stops accepting events and returns once the buffer is drained.
func (b *Bus) Shutdown() {
	b.shutdown.Do(func() {
		b.closeMu.Lock()
		b.closed = true
		close(b.buffer)
		b.closeMu.Unlock()

		b.wg.Wait()
	})
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers[event.Name]))
	copy(handlers, b.subscribers[event.Name])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.deliver(handler, event)
	}
}

func (b *Bus) deliver(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("EventBus", fmt.Errorf("handler panic: %v", r), map[string]interface{}{
				"event":   event.Name,
				"handler": h.GetID(),
			})
		}
	}()
	h.Handle(event)
}
