// Package gui holds the native front-end shown inside the shell window.
package gui

import (
	"fmt"

	"gen3d-desktop/internal/events"
	"gen3d-desktop/internal/gui/components"
	"gen3d-desktop/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MainView is the window content. It listens on the menu-action channel
// like any other front-end and reports the last action it received.
type MainView struct {
	window        fyne.Window
	logger        logger.Logger
	mainContainer *fyne.Container
	statusBar     *components.StatusBar
	received      int
}

func NewMainView(window fyne.Window, title string, log logger.Logger) *MainView {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	view := &MainView{
		window:    window,
		logger:    log,
		statusBar: components.NewStatusBar(),
	}
	view.buildLayout(title)
	return view
}

func (v *MainView) buildLayout(title string) {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	hint := widget.NewLabelWithStyle(
		"Use the File menu to open settings, logs, import a model or export GLB/STL.",
		fyne.TextAlignCenter,
		fyne.TextStyle{},
	)
	hint.Wrapping = fyne.TextWrapWord

	v.mainContainer = container.NewBorder(
		nil,
		v.statusBar.GetContainer(),
		nil,
		nil,
		container.NewCenter(container.NewVBox(heading, hint)),
	)
}

func (v *MainView) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

// Handle receives menu-action events from the bus worker and applies them on
// the UI goroutine.
func (v *MainView) Handle(event events.Event) {
	fyne.Do(func() {
		v.showAction(event.Payload)
	})
}

func (v *MainView) GetID() string {
	return "main-view"
}

func (v *MainView) showAction(id string) {
	v.received++
	v.statusBar.SetStatus(fmt.Sprintf("Last action: %s", id))
	v.statusBar.SetCount(v.received)

	v.logger.Debug("MainView", "menu action received", map[string]interface{}{
		"action": id,
		"count":  v.received,
	})
}

func (v *MainView) Status() string {
	return v.statusBar.Status()
}

func (v *MainView) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
