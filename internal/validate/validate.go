package validate

import (
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/wrapper"
)

// Validate checks the structural invariants of a wrapper tree. Only
// ownership edges are walked; back-references are checked for consistency
// but never followed. Every violation is reported in the returned error.
func Validate(tree *wrapper.Tree) error {
	if tree == nil {
		return diagnostic.Newf(diagnostic.CodeMultipleRoots, "", "", "tree is nil")
	}

	v := &validator{
		tree:     tree,
		incoming: make(map[wrapper.NodeID]int, tree.NodeCount()),
		visited:  make(map[wrapper.NodeID]bool, tree.NodeCount()),
	}

	v.countOwnership()
	v.checkRoots()
	v.checkCycles()
	v.checkFields()
	v.checkParents()

	return v.diags.Error()
}

type validator struct {
	tree     *wrapper.Tree
	diags    diagnostic.Diagnostics
	incoming map[wrapper.NodeID]int
	visited  map[wrapper.NodeID]bool
}

func (v *validator) countOwnership() {
	for _, n := range v.tree.Nodes() {
		for _, c := range v.tree.Children(n.ID) {
			if v.tree.Node(c) == nil {
				v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
					"node %d owns missing node %d", n.ID, c)

				continue
			}

			v.incoming[c]++
		}
	}

	for _, n := range v.tree.Nodes() {
		if v.incoming[n.ID] > 1 {
			v.diags.AddError(diagnostic.CodeSharedNode, n.TypeName(), "",
				"node %d (%s) is owned %d times", n.ID, n.Kind, v.incoming[n.ID])
		}
	}
}

// checkRoots requires exactly one node without an ownership edge, and that
// node to be the designated root. A tree where every node is owned has a
// cycle, which checkCycles reports.
func (v *validator) checkRoots() {
	var roots []wrapper.NodeID

	for _, n := range v.tree.Nodes() {
		if v.incoming[n.ID] == 0 {
			roots = append(roots, n.ID)
		}
	}

	root := v.tree.RootNode()

	switch {
	case root == nil:
		v.diags.AddError(diagnostic.CodeMultipleRoots, "", "",
			"no designated root among %d nodes", v.tree.NodeCount())
	case len(roots) > 1:
		v.diags.AddError(diagnostic.CodeMultipleRoots, root.TypeName(), "",
			"%d nodes have no owner: %v", len(roots), roots)
	case root.Kind != wrapper.KindRootClass:
		v.diags.AddError(diagnostic.CodeMultipleRoots, root.TypeName(), "",
			"designated root %d is a %s", root.ID, root.Kind)
	case len(roots) == 1 && roots[0] != root.ID:
		v.diags.AddError(diagnostic.CodeMultipleRoots, root.TypeName(), "",
			"designated root %d is owned, node %d is not", root.ID, roots[0])
	}

	for _, n := range v.tree.Nodes() {
		if n.Kind == wrapper.KindRootClass && (root == nil || n.ID != root.ID) {
			v.diags.AddError(diagnostic.CodeMultipleRoots, n.TypeName(), "",
				"node %d is a root class but not the designated root", n.ID)
		}
	}
}

// checkCycles walks ownership edges from the root, then from every node the
// root does not reach, reporting each edge back to a node on the current walk.
func (v *validator) checkCycles() {
	if v.tree.RootNode() != nil {
		v.walk(v.tree.Root(), map[wrapper.NodeID]bool{})
	}

	for _, n := range v.tree.Nodes() {
		if !v.visited[n.ID] {
			v.walk(n.ID, map[wrapper.NodeID]bool{})
		}
	}
}

func (v *validator) walk(id wrapper.NodeID, onPath map[wrapper.NodeID]bool) {
	v.visited[id] = true
	onPath[id] = true

	for _, c := range v.tree.Children(id) {
		child := v.tree.Node(c)
		if child == nil {
			continue
		}

		if onPath[c] {
			v.diags.AddError(diagnostic.CodeCycle, child.TypeName(), "",
				"ownership edge from node %d back to ancestor %d", id, c)

			continue
		}

		if !v.visited[c] {
			v.walk(c, onPath)
		}
	}

	delete(onPath, id)
}

// checkFields requires every field to be listed by exactly one class, and
// its Owner back-reference to name that class.
func (v *validator) checkFields() {
	container := make(map[wrapper.FieldID]wrapper.NodeID, v.tree.FieldCount())

	for _, n := range v.tree.Nodes() {
		if len(n.Fields) > 0 && !n.Kind.IsClass() {
			v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
				"node %d (%s) cannot own fields", n.ID, n.Kind)
		}

		for _, fid := range n.Fields {
			if v.tree.Field(fid) == nil {
				v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
					"node %d lists missing field %d", n.ID, fid)

				continue
			}

			if prev, ok := container[fid]; ok {
				v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), v.fieldPath(fid),
					"field %d is listed by nodes %d and %d", fid, prev, n.ID)

				continue
			}

			container[fid] = n.ID
		}
	}

	for _, f := range v.tree.AllFields() {
		at, ok := container[f.ID]

		switch {
		case !ok:
			v.diags.AddError(diagnostic.CodeOrphanField, "", v.fieldPath(f.ID),
				"field %d is not attached to any class", f.ID)
		case f.Owner != at:
			v.diags.AddError(diagnostic.CodeOrphanField, v.tree.Node(at).TypeName(), v.fieldPath(f.ID),
				"field %d names owner %d but is contained by %d", f.ID, f.Owner, at)
		}

		if v.tree.Node(f.Target) == nil {
			v.diags.AddError(diagnostic.CodeOrphanField, "", v.fieldPath(f.ID),
				"field %d targets missing node %d", f.ID, f.Target)
		}
	}
}

// checkParents requires every class and enum node below the root to name
// the field it is exposed through, and that field to lead to it.
func (v *validator) checkParents() {
	for _, n := range v.tree.Nodes() {
		if n.Kind == wrapper.KindRootClass {
			if n.Parent != wrapper.NoField {
				v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
					"root node %d has a parent field %d", n.ID, n.Parent)
			}

			continue
		}

		if n.Parent == wrapper.NoField {
			if n.Kind.IsClass() || n.Kind.IsEnum() {
				v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
					"node %d (%s) has no parent field", n.ID, n.Kind)
			}

			continue
		}

		f := v.tree.Field(n.Parent)
		if f == nil {
			v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), "",
				"node %d names missing parent field %d", n.ID, n.Parent)

			continue
		}

		if !v.exposes(f.Target, n.ID, map[wrapper.NodeID]bool{}) {
			v.diags.AddError(diagnostic.CodeOrphanField, n.TypeName(), v.fieldPath(f.ID),
				"parent field %d of node %d does not lead to it", f.ID, n.ID)
		}
	}
}

// exposes reports whether id is target or an element of target reached
// through collection nodes only.
func (v *validator) exposes(target, id wrapper.NodeID, seen map[wrapper.NodeID]bool) bool {
	if target == id {
		return true
	}

	n := v.tree.Node(target)
	if n == nil || seen[target] || !n.Kind.IsCollection() {
		return false
	}

	seen[target] = true

	return v.exposes(n.Key, id, seen) || v.exposes(n.Elem, id, seen)
}

func (v *validator) fieldPath(id wrapper.FieldID) string {
	f := v.tree.Field(id)
	if f == nil {
		return ""
	}

	if owner := v.tree.Node(f.Owner); owner != nil && owner.TypeName() != "" {
		return owner.TypeName() + "." + f.Name()
	}

	return f.Name()
}
