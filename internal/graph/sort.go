package graph

// TopologicalOrder returns the Values reachable from root through provenance
// parent edges, each node emitted only after all of its ancestors, root last.
//
// The traversal is a depth-first post-order with a visited set keyed by Value
// identity: two distinct Values with identical buffer contents are distinct
// graph nodes. Only provenance-bearing nodes are expanded and emitted; leaves
// terminate recursion without appearing in the result. The order is
// deterministic for a fixed graph because each Provenance stores its parents
// in application order.
func TopologicalOrder(root *Value) []*Value {
	visited := make(map[*Value]bool)
	var order []*Value

	var visit func(v *Value)
	visit = func(v *Value) {
		if visited[v] || v.prov == nil {
			return
		}
		visited[v] = true
		for _, parent := range v.prov.parents {
			visit(parent)
		}
		order = append(order, v)
	}

	visit(root)
	return order
}
