// Package dispatch forwards menu clicks to the front-end as named events.
package dispatch

import (
	"gen3d-desktop/internal/logger"
	"gen3d-desktop/internal/menu"
)

// EventName is the channel the front-end listens on for menu clicks.
const EventName = "menu-action"

type Emitter interface {
	Emit(name, payload string) error
}

type Option func(*Dispatcher)

// WithStrict reports unmapped identifiers as warnings.
func WithStrict(strict bool) Option {
	return func(d *Dispatcher) {
		d.strict = strict
	}
}

type Dispatcher struct {
	emitter Emitter
	logger  logger.Logger
	strict  bool
}

func New(emitter Emitter, log logger.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	d := &Dispatcher{
		emitter: emitter,
		logger:  log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch emits one menu-action event for a recognized identifier and does
// nothing for any other. Emission failures are dropped.
func (d *Dispatcher) Dispatch(id string) {
	action, ok := menu.ParseAction(id)
	if !ok {
		d.unmapped(id)
		return
	}

	payload := action.String()
	if err := d.emitter.Emit(EventName, payload); err != nil {
		d.logger.Debug("Dispatcher", "menu action not delivered", map[string]interface{}{
			"action": payload,
			"error":  err.Error(),
		})
		return
	}

	d.logger.Debug("Dispatcher", "menu action emitted", map[string]interface{}{
		"action": payload,
	})
}

func (d *Dispatcher) unmapped(id string) {
	fields := map[string]interface{}{"id": id}
	if d.strict {
		d.logger.Warning("Dispatcher", "unmapped menu identifier", fields)
		return
	}
	d.logger.Debug("Dispatcher", "unmapped menu identifier", fields)
}
