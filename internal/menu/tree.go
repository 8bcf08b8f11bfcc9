package menu

import (
	"errors"
	"fmt"
)

var ErrInvalidTree = errors.New("invalid menu tree")

// Node is either a group with children or a leaf bound to an Action.
type Node struct {
	Label    string
	Action   Action
	Enabled  bool
	Children []*Node
}

func Group(label string, children ...*Node) *Node {
	return &Node{Label: label, Enabled: true, Children: children}
}

func Item(a Action) *Node {
	return &Node{Label: a.Label(), Action: a, Enabled: true}
}

func (n *Node) IsGroup() bool {
	return n.Children != nil
}

type Tree struct {
	Menus []*Node
}

// Build returns the application menu: File > Settings, Logs, Import, Export > GLB, STL.
func Build() *Tree {
	export := Group("Export",
		Item(ExportGLB),
		Item(ExportSTL),
	)

	file := Group("File",
		Item(Settings),
		Item(Logs),
		Item(Import),
		export,
	)

	return &Tree{Menus: []*Node{file}}
}

// Leaves returns every leaf in depth-first order.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsGroup() {
				walk(n.Children)
				continue
			}
			out = append(out, n)
		}
	}
	walk(t.Menus)
	return out
}

// Find returns the leaf bound to a, if present.
func (t *Tree) Find(a Action) (*Node, bool) {
	for _, leaf := range t.Leaves() {
		if leaf.Action == a {
			return leaf, true
		}
	}
	return nil, false
}

// Validate checks that every top-level entry is a non-empty group and that
// the leaves cover each Action exactly once.
func (t *Tree) Validate() error {
	if t == nil || len(t.Menus) == 0 {
		return fmt.Errorf("%w: no top-level menus", ErrInvalidTree)
	}
	for _, m := range t.Menus {
		if !m.IsGroup() {
			return fmt.Errorf("%w: top-level entry %q is not a group", ErrInvalidTree, m.Label)
		}
	}

	if err := validateNodes(t.Menus); err != nil {
		return err
	}

	seen := make(map[Action]bool)
	for _, leaf := range t.Leaves() {
		if seen[leaf.Action] {
			return fmt.Errorf("%w: duplicate identifier %q", ErrInvalidTree, leaf.Action)
		}
		seen[leaf.Action] = true
	}
	for _, a := range Actions() {
		if !seen[a] {
			return fmt.Errorf("%w: identifier %q has no menu item", ErrInvalidTree, a)
		}
	}
	return nil
}

func validateNodes(nodes []*Node) error {
	for _, n := range nodes {
		if n == nil {
			return fmt.Errorf("%w: nil node", ErrInvalidTree)
		}
		if n.Label == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidTree)
		}
		if n.IsGroup() {
			if len(n.Children) == 0 {
				return fmt.Errorf("%w: group %q is empty", ErrInvalidTree, n.Label)
			}
			if err := validateNodes(n.Children); err != nil {
				return err
			}
			continue
		}
		if !n.Action.Valid() {
			return fmt.Errorf("%w: item %q has unknown identifier", ErrInvalidTree, n.Label)
		}
	}
	return nil
}
