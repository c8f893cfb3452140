package export

import (
	"errors"
	"fmt"
	"sort"

	"bridge-generator/internal/wrapper"
)

// EmitOrder returns the class and enum nodes an emitter renders as
// compilation units, each after every unit it exposes. Recursive nodes are
// not units. Ties keep pre-order, so the result is deterministic.
func EmitOrder(tree *wrapper.Tree) ([]*wrapper.Node, error) {
	units := tree.Classes()

	index := make(map[wrapper.NodeID]int, len(units))
	for i, n := range units {
		index[n.ID] = i
	}

	order, err := topoSort(len(units), func(i int) []int {
		var deps []int
		for _, id := range exposedUnits(tree, units[i].ID) {
			if j, ok := index[id]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	res := make([]*wrapper.Node, len(order))
	for i, j := range order {
		res[i] = units[j]
	}

	return res, nil
}

// exposedUnits returns the nearest class and enum nodes below id.
func exposedUnits(tree *wrapper.Tree, id wrapper.NodeID) []wrapper.NodeID {
	var res []wrapper.NodeID

	var walk func(wrapper.NodeID)
	walk = func(c wrapper.NodeID) {
		n := tree.Node(c)
		if n == nil {
			return
		}

		if n.Kind.IsClass() || n.Kind.IsEnum() {
			res = append(res, c)
			return
		}

		for _, gc := range tree.Children(c) {
			walk(gc)
		}
	}

	for _, c := range tree.Children(id) {
		walk(c)
	}

	return res
}

// topoSort returns indices in dependency order.
//
// depsFn(i) yields indices that must come before i. When multiple nodes
// are available the smallest index is picked. If a cycle exists, an error
// is returned.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("cycle detected")
	}

	return order, nil
}
