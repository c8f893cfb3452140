// Package wrapper models the output of the bridge generator: a rooted tree
// of wrapper nodes and wrapper fields.
//
// The tree is an arena. Ownership edges point from parent to child:
//   - class → wrapper field (Node.Fields)
//   - wrapper field → exposed node (Field.Target)
//   - array/dictionary → element, key and value nodes (Node.Elem, Node.Key)
//
// Back-references (Node.Parent, Field.Owner) are IDs used only for lookup,
// e.g. to document an owner or to propagate change notifications upward.
// Emitters traverse ownership edges with Walk or Classes and never need the
// back-references to render a class's own fields.
package wrapper
