package app

// registerLifecycle orders teardown in reverse: the bus drains into the
// front-ends before the bridge disconnects its clients.
func (a *Application) registerLifecycle() {
	if a.bridge != nil {
		a.shutdown.Register("bridge", a.bridge)
	}
	a.shutdown.Register("event bus", a.bus)
}
