package dispatch

import (
	"errors"
	"sync"
	"testing"

	"gen3d-desktop/internal/events"
	"gen3d-desktop/internal/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	name    string
	payload string
}

type fakeEmitter struct {
	mu   sync.Mutex
	out  []emitted
	fail error
}

func (f *fakeEmitter) Emit(name, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, emitted{name, payload})
	return f.fail
}

type warnCounter struct {
	mu    sync.Mutex
	warns int
	debug int
}

func (w *warnCounter) Info(string, string, map[string]interface{}) {}
func (w *warnCounter) Error(string, error, map[string]interface{}) {}
func (w *warnCounter) Warning(string, string, map[string]interface{}) {
	w.mu.Lock()
	w.warns++
	w.mu.Unlock()
}
func (w *warnCounter) Debug(string, string, map[string]interface{}) {
	w.mu.Lock()
	w.debug++
	w.mu.Unlock()
}

func TestDispatchRecognizedIdentifiers(t *testing.T) {
	for _, a := range menu.Actions() {
		t.Run(a.String(), func(t *testing.T) {
			em := &fakeEmitter{}
			New(em, nil).Dispatch(a.String())

			require.Len(t, em.out, 1)
			assert.Equal(t, EventName, em.out[0].name)
			assert.Equal(t, a.String(), em.out[0].payload)
		})
	}
}

func TestDispatchUnknownIdentifier(t *testing.T) {
	em := &fakeEmitter{}
	d := New(em, nil)

	d.Dispatch("menu_unknown")
	d.Dispatch("")

	assert.Empty(t, em.out)
}

func TestDispatchRepetition(t *testing.T) {
	em := &fakeEmitter{}
	d := New(em, nil)

	for i := 0; i < 5; i++ {
		d.Dispatch("menu_logs")
	}
	require.Len(t, em.out, 5)
	for _, e := range em.out {
		assert.Equal(t, "menu_logs", e.payload)
	}

	em.out = nil
	d.Dispatch("menu_logs")
	d.Dispatch("menu_unknown")
	d.Dispatch("menu_logs")
	assert.Len(t, em.out, 2)
}

func TestDispatchSwallowsEmitError(t *testing.T) {
	em := &fakeEmitter{fail: errors.New("no listener")}
	d := New(em, nil)

	assert.NotPanics(t, func() { d.Dispatch("menu_import") })
	assert.Len(t, em.out, 1)
}

func TestDispatchStrictWarnsOnUnmapped(t *testing.T) {
	log := &warnCounter{}
	New(&fakeEmitter{}, log, WithStrict(true)).Dispatch("menu_unknown")
	assert.Equal(t, 1, log.warns)

	lenient := &warnCounter{}
	New(&fakeEmitter{}, lenient).Dispatch("menu_unknown")
	assert.Zero(t, lenient.warns)
	assert.Equal(t, 1, lenient.debug)
}

func TestDispatchConcurrent(t *testing.T) {
	em := &fakeEmitter{}
	d := New(em, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch("menu_export_stl")
		}()
	}
	wg.Wait()

	assert.Len(t, em.out, 50)
}

func TestDispatchThroughBus(t *testing.T) {
	bus := events.NewBus(16, nil)
	var mu sync.Mutex
	var got []events.Event
	bus.Subscribe(EventName, events.HandlerFunc("test", func(e events.Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	}))

	d := New(bus, nil)
	d.Dispatch("menu_logs")
	d.Dispatch("menu_unknown")
	d.Dispatch("menu_logs")
	bus.Shutdown()

	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, EventName, e.Name)
		assert.Equal(t, "menu_logs", e.Payload)
	}

	assert.NotPanics(t, func() { d.Dispatch("menu_settings") })
}
