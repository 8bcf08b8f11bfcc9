package app

import "gen3d-desktop/internal/dispatch"

func (a *Application) handleMenuClick(id string) {
	a.logger.Debug("Application", "menu item clicked", map[string]interface{}{
		"id": id,
	})
	a.dispatcher.Dispatch(id)
}

func (a *Application) setupSubscribers() {
	a.bus.Subscribe(dispatch.EventName, a.view)
	if a.bridge != nil {
		a.bus.Subscribe(dispatch.EventName, a.bridge)
	}
}
