package behaviour

import "iter"

// Iterate walks the subtree rooted at root, children before parents.
func Iterate(root Behaviour) iter.Seq[Behaviour] {
	return func(yield func(Behaviour) bool) {
		walk(root, yield)
	}
}

func walk(node Behaviour, yield func(Behaviour) bool) bool {
	for _, child := range node.Children() {
		if !walk(child, yield) {
			return false
		}
	}
	return yield(node)
}

// Drain ticks node once and returns every visited node in order.
func Drain(node Behaviour) []Behaviour {
	var visited []Behaviour
	for n := range node.Tick() {
		visited = append(visited, n)
	}
	return visited
}
