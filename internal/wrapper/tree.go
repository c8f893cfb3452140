package wrapper

import (
	"fmt"
	"slices"

	"bridge-generator/internal/origin"
)

// NodeID identifies a node in its Tree. The zero value is NoNode.
type NodeID int

// FieldID identifies a wrapper field in its Tree. The zero value is NoField.
type FieldID int

const (
	NoNode  NodeID  = 0
	NoField FieldID = 0
)

// Node is one wrapper node.
//
// Ownership flows through Fields, Elem and Key. Parent is a back-reference
// for lookup only: it is never followed downwards and never counts as
// ownership.
type Node struct {
	ID         NodeID
	Kind       NodeKind
	Resolution Resolution
	// Origin is the bridged origin type: the struct of a class, the enum of
	// an enum node, the primitive of a leaf, the array or dictionary of a
	// collection.
	Origin *origin.Type
	// Parent is the wrapper field this node is exposed through.
	Parent FieldID
	// Fields are the owned wrapper fields of a class, in declaration order.
	Fields []FieldID
	// Elem is the owned element of an array or value of a dictionary.
	Elem NodeID
	// Key is the owned key of a dictionary.
	Key NodeID
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	c.Fields = slices.Clone(n.Fields)

	return &c
}

// TypeName returns the name of the bridged struct or enum, if any.
func (n *Node) TypeName() string {
	if n.Origin == nil {
		return ""
	}

	return n.Origin.Name
}

// Field is one wrapper field: an accessor on a class exposing one origin
// field. Owner is a back-reference for lookup only.
type Field struct {
	ID     FieldID
	Owner  NodeID
	Origin origin.Field
	Shape  ShapeKind
	// Target is the owned node exposing the field's value.
	Target NodeID
}

func (f *Field) clone() *Field {
	if f == nil {
		return nil
	}

	c := *f

	return &c
}

// Name returns the origin field name.
func (f *Field) Name() string {
	return f.Origin.Name
}

// Tree is an arena of wrapper nodes and fields rooted at a single class.
// It is written by one builder and read-only once sealed.
type Tree struct {
	root   NodeID
	nodes  []*Node
	fields []*Field
	sealed bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// AddNode stores a copy of n and returns its ID.
func (t *Tree) AddNode(n Node) NodeID {
	t.mustBeOpen()

	n.ID = NodeID(len(t.nodes) + 1)
	t.nodes = append(t.nodes, &n)

	return n.ID
}

// AddField stores a copy of f and returns its ID. The field is not part of
// its owner until AttachField is called.
func (t *Tree) AddField(f Field) FieldID {
	t.mustBeOpen()

	f.ID = FieldID(len(t.fields) + 1)
	t.fields = append(t.fields, &f)

	return f.ID
}

// AttachField appends field to the ownership list of class.
func (t *Tree) AttachField(class NodeID, field FieldID) {
	t.mustBeOpen()

	n := t.mustNode(class)
	n.Fields = append(n.Fields, field)
}

// SetParent sets the back-reference of node to field.
func (t *Tree) SetParent(node NodeID, field FieldID) {
	t.mustBeOpen()

	t.mustNode(node).Parent = field
}

// SetElem sets the owned element (or dictionary value) of a collection.
func (t *Tree) SetElem(collection, elem NodeID) {
	t.mustBeOpen()

	t.mustNode(collection).Elem = elem
}

// SetKey sets the owned key of a dictionary.
func (t *Tree) SetKey(dictionary, key NodeID) {
	t.mustBeOpen()

	t.mustNode(dictionary).Key = key
}

// SetRoot designates the root class.
func (t *Tree) SetRoot(id NodeID) {
	t.mustBeOpen()

	t.root = id
}

// Seal makes the tree read-only. Later mutations panic.
func (t *Tree) Seal() {
	t.sealed = true
}

// Sealed reports whether Seal was called.
func (t *Tree) Sealed() bool {
	return t.sealed
}

func (t *Tree) mustBeOpen() {
	if t.sealed {
		panic("wrapper: mutation of a sealed tree")
	}
}

func (t *Tree) mustNode(id NodeID) *Node {
	n := t.node(id)
	if n == nil {
		panic(fmt.Sprintf("wrapper: node %d does not exist", id))
	}

	return n
}

// Root returns the designated root node ID.
func (t *Tree) Root() NodeID {
	return t.root
}

// RootNode returns the designated root node, or nil.
func (t *Tree) RootNode() *Node {
	return t.Node(t.root)
}

// Node returns a copy of the node with the given ID, or nil. Changing the
// copy does not change the tree.
func (t *Tree) Node(id NodeID) *Node {
	return t.node(id).clone()
}

// Field returns a copy of the field with the given ID, or nil.
func (t *Tree) Field(id FieldID) *Field {
	return t.field(id).clone()
}

func (t *Tree) node(id NodeID) *Node {
	if id <= NoNode || int(id) > len(t.nodes) {
		return nil
	}

	return t.nodes[id-1]
}

func (t *Tree) field(id FieldID) *Field {
	if id <= NoField || int(id) > len(t.fields) {
		return nil
	}

	return t.fields[id-1]
}

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// FieldCount returns the number of fields.
func (t *Tree) FieldCount() int {
	return len(t.fields)
}

// Nodes returns copies of all nodes in ID order.
func (t *Tree) Nodes() []*Node {
	res := make([]*Node, len(t.nodes))
	for i, n := range t.nodes {
		res[i] = n.clone()
	}

	return res
}

// AllFields returns copies of all fields in ID order.
func (t *Tree) AllFields() []*Field {
	res := make([]*Field, len(t.fields))
	for i, f := range t.fields {
		res[i] = f.clone()
	}

	return res
}

// FieldsOf returns copies of the owned fields of a class in declaration
// order.
func (t *Tree) FieldsOf(id NodeID) []*Field {
	n := t.node(id)
	if n == nil {
		return nil
	}

	res := make([]*Field, 0, len(n.Fields))
	for _, fid := range n.Fields {
		if f := t.field(fid); f != nil {
			res = append(res, f.clone())
		}
	}

	return res
}

// Children returns the nodes owned by id, in order: field targets for
// classes, then key and element for collections.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.node(id)
	if n == nil {
		return nil
	}

	var res []NodeID

	for _, fid := range n.Fields {
		if f := t.field(fid); f != nil && f.Target != NoNode {
			res = append(res, f.Target)
		}
	}

	if n.Key != NoNode {
		res = append(res, n.Key)
	}

	if n.Elem != NoNode {
		res = append(res, n.Elem)
	}

	return res
}

// ParentField returns the field a node is exposed through. Lookup only.
func (t *Tree) ParentField(id NodeID) *Field {
	n := t.node(id)
	if n == nil {
		return nil
	}

	return t.Field(n.Parent)
}

// OwnerOf returns the class owning a field. Lookup only.
func (t *Tree) OwnerOf(id FieldID) *Node {
	f := t.field(id)
	if f == nil {
		return nil
	}

	return t.Node(f.Owner)
}

// Walk visits nodes reachable from the root over ownership edges in
// pre-order. fn receives the node and its depth; returning false skips the
// node's children. Nodes are visited at most once, so Walk terminates even
// on malformed trees.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	visited := make(map[NodeID]bool, len(t.nodes))

	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		n := t.node(id)
		if n == nil || visited[id] {
			return
		}

		visited[id] = true
		if !fn(n.clone(), depth) {
			return
		}

		for _, c := range t.Children(id) {
			walk(c, depth+1)
		}
	}

	walk(t.root, 0)
}

// Classes returns the class and enum nodes the emitter renders as
// compilation units, in pre-order. Recursive nodes are excluded: they
// reuse the unit generated for the same type higher up.
func (t *Tree) Classes() []*Node {
	var res []*Node

	t.Walk(func(n *Node, _ int) bool {
		if (n.Kind.IsClass() || n.Kind.IsEnum()) && n.Resolution != ResolutionRecursive {
			res = append(res, n)
		}

		return true
	})

	return res
}
