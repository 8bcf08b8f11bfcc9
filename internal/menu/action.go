// Package menu describes the application's native menu and renders it onto
// the Fyne host window.
package menu

// Action is the closed set of menu items the shell forwards to the front-end.
type Action int

const (
	Settings Action = iota + 1
	Logs
	Import
	ExportGLB
	ExportSTL
)

// String returns the stable identifier, which is also the event payload.
func (a Action) String() string {
	switch a {
	case Settings:
		return "menu_settings"
	case Logs:
		return "menu_logs"
	case Import:
		return "menu_import"
	case ExportGLB:
		return "menu_export_glb"
	case ExportSTL:
		return "menu_export_stl"
	default:
		return ""
	}
}

func (a Action) Label() string {
	switch a {
	case Settings:
		return "Settings"
	case Logs:
		return "Logs"
	case Import:
		return "Import"
	case ExportGLB:
		return "GLB"
	case ExportSTL:
		return "STL"
	default:
		return ""
	}
}

func (a Action) Valid() bool {
	return a.String() != ""
}

// Actions lists every action in menu order.
func Actions() []Action {
	return []Action{Settings, Logs, Import, ExportGLB, ExportSTL}
}

func ParseAction(id string) (Action, bool) {
	for _, a := range Actions() {
		if a.String() == id {
			return a, true
		}
	}
	return 0, false
}
