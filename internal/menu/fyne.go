package menu

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
)

var ErrNilShell = errors.New("host shell is nil")

// Shell is the host window that displays the main menu. fyne.Window
// satisfies it.
type Shell interface {
	SetMainMenu(menu *fyne.MainMenu)
}

// Render converts the tree into a Fyne main menu. Each leaf calls onClick
// with its identifier.
func Render(tree *Tree, onClick func(id string)) (*fyne.MainMenu, error) {
	if onClick == nil {
		return nil, errors.New("menu click handler is nil")
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}

	menus := make([]*fyne.Menu, 0, len(tree.Menus))
	for _, group := range tree.Menus {
		menus = append(menus, fyne.NewMenu(group.Label, renderItems(group.Children, onClick)...))
	}
	return fyne.NewMainMenu(menus...), nil
}

func renderItems(nodes []*Node, onClick func(id string)) []*fyne.MenuItem {
	items := make([]*fyne.MenuItem, 0, len(nodes))
	for _, n := range nodes {
		if n.IsGroup() {
			item := fyne.NewMenuItem(n.Label, nil)
			item.ChildMenu = fyne.NewMenu("", renderItems(n.Children, onClick)...)
			item.Disabled = !n.Enabled
			items = append(items, item)
			continue
		}

		id := n.Action.String()
		item := fyne.NewMenuItem(n.Label, func() {
			onClick(id)
		})
		item.Disabled = !n.Enabled
		items = append(items, item)
	}
	return items
}

// Install renders the tree and sets it as the shell's main menu.
func Install(shell Shell, tree *Tree, onClick func(id string)) error {
	if shell == nil {
		return ErrNilShell
	}

	mainMenu, err := Render(tree, onClick)
	if err != nil {
		return fmt.Errorf("rendering menu: %w", err)
	}

	shell.SetMainMenu(mainMenu)
	return nil
}
