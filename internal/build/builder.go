package build

import (
	"errors"
	"io"
	"log/slog"

	"bridge-generator/internal/classify"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/origin"
	"bridge-generator/internal/validate"
	"bridge-generator/internal/wrapper"
)

// DefaultMaxDepth bounds inline struct nesting. Only pointer cycles between
// inline origin types can reach it; named recursion goes through references.
const DefaultMaxDepth = 64

// Config holds the build policy.
type Config struct {
	// RequireFields rejects structs without fields with EmptyStruct.
	RequireFields bool
	// MaxDepth limits the nesting of expanded classes (0 = DefaultMaxDepth).
	MaxDepth int
	// Logger receives build progress. Nil discards.
	Logger *slog.Logger
}

// Option configures a build.
type Option func(*Config)

// WithRequireFields sets whether structs without fields are rejected.
func WithRequireFields(require bool) Option {
	return func(c *Config) {
		c.RequireFields = require
	}
}

// WithMaxDepth sets the maximum nesting of expanded classes.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithLogger sets the logger receiving build progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Builder derives a wrapper tree from one origin schema. A Builder is used
// for a single build; it shares nothing with other builders.
type Builder struct {
	schema     *origin.Schema
	classifier *classify.Classifier
	config     Config
	logger     *slog.Logger
	tree       *wrapper.Tree
}

// NewBuilder creates a Builder for schema.
func NewBuilder(schema *origin.Schema, opts ...Option) *Builder {
	cfg := Config{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Builder{
		schema:     schema,
		classifier: classify.New(schema),
		config:     cfg,
		logger:     logger,
	}
}

// Build derives the wrapper tree of schema's root struct.
func Build(schema *origin.Schema, opts ...Option) (*wrapper.Tree, error) {
	return NewBuilder(schema, opts...).Build()
}

// BuildAndValidate builds the tree, checks its invariants and seals it.
func BuildAndValidate(schema *origin.Schema, opts ...Option) (*wrapper.Tree, error) {
	tree, err := Build(schema, opts...)
	if err != nil {
		return nil, err
	}

	if err := validate.Validate(tree); err != nil {
		return nil, err
	}

	tree.Seal()

	return tree, nil
}

// Build runs the depth-first construction. It can be called once.
func (b *Builder) Build() (*wrapper.Tree, error) {
	if b.tree != nil {
		return nil, errors.New("builder already used")
	}

	root, err := b.schema.RootStruct()
	if err != nil {
		return nil, err
	}

	b.tree = wrapper.NewTree()

	rootID := b.tree.AddNode(wrapper.Node{
		Kind:   wrapper.KindRootClass,
		Origin: root,
	})
	b.tree.SetRoot(rootID)

	if err := b.buildFields(rootID, root, classify.NewPath(root.Name), origin.NewPath(root.Name)); err != nil {
		return nil, err
	}

	b.logger.Info("built wrapper tree",
		"root", root.Name,
		"nodes", b.tree.NodeCount(),
		"fields", b.tree.FieldCount(),
		"classes", len(b.tree.Classes()),
	)

	return b.tree, nil
}

// buildFields creates the wrapper fields of class in declaration order.
// For each field the child subtree is built first, then the field is
// created and attached, then the child's back-reference is set.
func (b *Builder) buildFields(class wrapper.NodeID, st *origin.Type, path classify.Path, at origin.Path) error {
	if len(st.Fields) == 0 && b.config.RequireFields {
		return diagnostic.Newf(diagnostic.CodeEmptyStruct, st.Name, at.String(), "struct has no fields")
	}

	if path.Len() > b.config.MaxDepth {
		return diagnostic.Newf(diagnostic.CodeCycle, st.Name, at.String(),
			"inline nesting exceeds %d levels", b.config.MaxDepth)
	}

	b.logger.Debug("building class", "type", st.Name, "path", at.String(), "fields", len(st.Fields))

	for _, f := range st.Fields {
		fieldAt := at.Field(f.Name)

		cls, err := b.classifier.Classify(f.Type, path)
		if err != nil {
			return locate(err, fieldAt)
		}

		var childAt origin.Path

		switch cls.Shape {
		case wrapper.ShapeTransitiveStructArray, wrapper.ShapeTransitiveEnumArray:
			childAt = fieldAt.Array()
		default:
			childAt = fieldAt
		}

		child, owned, err := b.buildNode(cls.Node, path, childAt)
		if err != nil {
			return err
		}

		fid := b.tree.AddField(wrapper.Field{
			Owner:  class,
			Origin: f,
			Shape:  cls.Shape,
			Target: child,
		})
		b.tree.AttachField(class, fid)

		for _, id := range owned {
			b.tree.SetParent(id, fid)
		}
	}

	return nil
}

// buildNode creates the node described by spec and its owned subtree. It
// returns the node and every class or enum node exposed through the field
// being built, whose back-references the caller sets once the field exists.
func (b *Builder) buildNode(spec classify.NodeSpec, path classify.Path, at origin.Path) (wrapper.NodeID, []wrapper.NodeID, error) {
	id := b.tree.AddNode(wrapper.Node{
		Kind:       spec.Kind,
		Resolution: spec.Resolution,
		Origin:     spec.Origin,
	})

	var exposed []wrapper.NodeID
	if spec.Kind.IsClass() || spec.Kind.IsEnum() {
		exposed = append(exposed, id)
	}

	if spec.Expands() {
		st := spec.Origin
		if err := b.buildFields(id, st, path.Push(st.Name), at); err != nil {
			return wrapper.NoNode, nil, err
		}
	}

	if spec.Key != nil {
		key, keyExposed, err := b.buildNode(*spec.Key, path, at.Dictionary())
		if err != nil {
			return wrapper.NoNode, nil, err
		}

		b.tree.SetKey(id, key)
		exposed = append(exposed, keyExposed...)
	}

	if spec.Elem != nil {
		elemAt := at.Array()
		if spec.Kind == wrapper.KindDictionary {
			elemAt = at.Dictionary()
		}

		elem, elemExposed, err := b.buildNode(*spec.Elem, path, elemAt)
		if err != nil {
			return wrapper.NoNode, nil, err
		}

		b.tree.SetElem(id, elem)
		exposed = append(exposed, elemExposed...)
	}

	return id, exposed, nil
}

// locate fills the field path of a classification error.
func locate(err error, at origin.Path) error {
	var se *diagnostic.SchemaError
	if errors.As(err, &se) && se.FieldPath == "" {
		located := *se
		located.FieldPath = at.String()

		return &located
	}

	return err
}
