package app

import (
	"context"
	"fmt"

	"gen3d-desktop/internal/bridge"
	"gen3d-desktop/internal/config"
	"gen3d-desktop/internal/dispatch"
	"gen3d-desktop/internal/events"
	"gen3d-desktop/internal/gui"
	"gen3d-desktop/internal/logger"
	"gen3d-desktop/internal/menu"
	"gen3d-desktop/internal/shutdown"

	"fyne.io/fyne/v2"
)

const AppVersion = "0.1.0"

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     config.Config
	logger     logger.Logger
	bus        *events.Bus
	dispatcher *dispatch.Dispatcher
	view       *gui.MainView
	bridge     *bridge.Server
	shutdown   *shutdown.Manager
}

// NewApplication builds the shell on top of fyneApp. A failure to install
// the menu is returned and is fatal to the caller.
func NewApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	window := fyneApp.NewWindow(cfg.App.Name)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  cfg.Window.Width,
		"window_height": cfg.Window.Height,
		"bridge_addr":   cfg.Bridge.Addr,
	})

	bus := events.NewBus(cfg.Events.BufferSize, log)
	dispatcher := dispatch.New(bus, log, dispatch.WithStrict(cfg.StrictActions))
	view := gui.NewMainView(window, cfg.App.Name, log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		config:     cfg,
		logger:     log,
		bus:        bus,
		dispatcher: dispatcher,
		view:       view,
		shutdown:   shutdown.NewManager(log, cfg.Shutdown.Timeout),
	}

	if cfg.Bridge.Addr != "" {
		application.bridge = bridge.NewServer(cfg.Bridge.Addr, log)
	}

	if err := menu.Install(window, menu.Build(), application.handleMenuClick); err != nil {
		bus.Shutdown()
		return nil, fmt.Errorf("installing application menu: %w", err)
	}

	application.setupSubscribers()
	application.registerLifecycle()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

// Run shows the window and blocks in the Fyne event loop until the window
// closes or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	a.shutdown.Listen()

	if a.bridge != nil {
		go func() {
			if err := a.bridge.ListenAndServe(a.shutdown.Context()); err != nil {
				a.logger.Error("Application", err, map[string]interface{}{
					"bridge_addr": a.config.Bridge.Addr,
				})
			}
		}()
	}

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("Application", "context cancelled, initiating shutdown", nil)
		case <-a.shutdown.Done():
		}
		a.Shutdown()
		fyne.Do(a.fyneApp.Quit)
	}()

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.Shutdown()
		a.window.Close()
	})

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.Shutdown()
	return nil
}

func (a *Application) Shutdown() {
	a.shutdown.Shutdown()
}

func (a *Application) Window() fyne.Window {
	return a.window
}

func (a *Application) Bus() *events.Bus {
	return a.bus
}

func (a *Application) View() *gui.MainView {
	return a.view
}
