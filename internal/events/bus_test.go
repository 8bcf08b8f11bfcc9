package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handler(id string) Handler {
	return HandlerFunc(id, func(e Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	})
}

func (r *recorder) payloads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Payload)
	}
	return out
}

func TestBusDeliversInOrderAndDrainsOnShutdown(t *testing.T) {
	bus := NewBus(16, nil)
	rec := &recorder{}
	bus.Subscribe("menu-action", rec.handler("rec"))

	for _, p := range []string{"a", "b", "c"} {
		require.NoError(t, bus.Emit("menu-action", p))
	}
	bus.Shutdown()

	assert.Equal(t, []string{"a", "b", "c"}, rec.payloads())
}

func TestBusOnlyDeliversMatchingName(t *testing.T) {
	bus := NewBus(4, nil)
	rec := &recorder{}
	bus.Subscribe("menu-action", rec.handler("rec"))

	require.NoError(t, bus.Emit("other", "x"))
	bus.Shutdown()

	assert.Empty(t, rec.payloads())
}

func TestBusPublishAfterShutdown(t *testing.T) {
	bus := NewBus(4, nil)
	bus.Shutdown()
	bus.Shutdown()

	assert.ErrorIs(t, bus.Emit("menu-action", "x"), ErrClosed)
}

func TestBusBufferFull(t *testing.T) {
	bus := NewBus(1, nil)
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	bus.Subscribe("slow", HandlerFunc("slow", func(Event) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
	}))

	require.NoError(t, bus.Emit("slow", "1"))
	<-started
	require.NoError(t, bus.Emit("slow", "2"))
	assert.ErrorIs(t, bus.Emit("slow", "3"), ErrBufferFull)

	close(block)
	bus.Shutdown()
}

func TestBusRecoversHandlerPanic(t *testing.T) {
	bus := NewBus(4, nil)
	rec := &recorder{}
	bus.Subscribe("menu-action", HandlerFunc("bad", func(Event) { panic("boom") }))
	bus.Subscribe("menu-action", rec.handler("good"))

	require.NoError(t, bus.Emit("menu-action", "menu_logs"))
	bus.Shutdown()

	assert.Equal(t, []string{"menu_logs"}, rec.payloads())
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(4, nil)
	rec := &recorder{}
	h := rec.handler("rec")
	bus.Subscribe("menu-action", h)
	bus.Unsubscribe("menu-action", h)

	require.NoError(t, bus.Emit("menu-action", "menu_logs"))
	bus.Shutdown()

	assert.Empty(t, rec.payloads())
}
