package macros

import "latexref/internal/latex"

// Name returns the macro-like name a node contributes. Macro nodes contribute
// their macro name and environment nodes their environment name; every other
// kind contributes nothing.
func Name(n latex.Node) (string, bool) {
	switch n := n.(type) {
	case *latex.MacroNode:
		return n.Name, true
	case *latex.EnvironmentNode:
		return n.Name, true
	default:
		return "", false
	}
}

// Children returns the child nodes that must be examined for macros. Only math
// and environment regions are descended into. Groups are not, and neither are
// the arguments of a macro: only macro usage is enumerated, not macro structure.
func Children(n latex.Node) ([]latex.Node, bool) {
	switch n := n.(type) {
	case *latex.MathNode:
		return n.Children, true
	case *latex.EnvironmentNode:
		return n.Children, true
	default:
		return nil, false
	}
}
