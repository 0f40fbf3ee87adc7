package macros

import "latexref/internal/latex"

// Collect returns every macro name reachable from nodes by descending into math
// and environment regions. The walk recurses once per nesting level; goroutine
// stacks grow on demand (up to 1 GB on 64-bit platforms by default), so
// realistic documents are nowhere near the limit.
func Collect(nodes []latex.Node) Set {
	found := make(Set)
	collect(nodes, found)
	return found
}

func collect(nodes []latex.Node, found Set) {
	for _, node := range nodes {
		if name, ok := Name(node); ok {
			found.Add(name)
		}

		if children, ok := Children(node); ok {
			collect(children, found)
		}
	}
}
