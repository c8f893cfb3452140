package analyze

import (
	"fmt"
	"go/ast"
	"go/types"
	"io"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"bridge-generator/internal/origin"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and converts their exported structs and enums
// into origin definitions.
type Analyzer struct {
	packages map[string]*PackageInfo
	defs     map[TypeID]*origin.Type
	// enums holds named basic types with declared constants, in
	// declaration order.
	enums  map[TypeID][]*types.Const
	docs   map[TypeID]string
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger receiving load progress.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		packages: make(map[string]*PackageInfo),
		defs:     make(map[TypeID]*origin.Type),
		enums:    make(map[TypeID][]*types.Const),
		docs:     make(map[TypeID]string),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and converts their types.
// Patterns are standard Go package patterns (e.g., "./examples/rum").
func (a *Analyzer) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors: %v", errs)
	}

	// Register every package first so references across loaded packages
	// resolve regardless of load order.
	for _, pkg := range pkgs {
		a.registerPackage(pkg)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return nil
}

// Packages returns the loaded package paths in sorted order.
func (a *Analyzer) Packages() []string {
	paths := make([]string, 0, len(a.packages))
	for p := range a.packages {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// Package returns information about a loaded package.
func (a *Analyzer) Package(pkgPath string) (*PackageInfo, bool) {
	info, ok := a.packages[pkgPath]
	return info, ok
}

// Definition returns the origin definition of a loaded type.
func (a *Analyzer) Definition(id TypeID) (*origin.Type, bool) {
	t, ok := a.defs[id]
	return t, ok
}

// Schema assembles an origin schema rooted at the named struct of pkgPath.
// Definitions from every loaded package are included; their names must be
// unique.
func (a *Analyzer) Schema(pkgPath, root string) (*origin.Schema, error) {
	rootID := TypeID{PkgPath: pkgPath, Name: root}

	rt, ok := a.defs[rootID]
	if !ok {
		return nil, fmt.Errorf("type %s not found", rootID)
	}

	if rt.Kind != origin.KindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", rootID, rt.Kind)
	}

	ids := make([]TypeID, 0, len(a.defs))
	for id := range a.defs {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	seen := make(map[string]TypeID, len(ids))
	defs := make([]*origin.Type, 0, len(ids))

	for _, id := range ids {
		if prev, ok := seen[id.Name]; ok {
			return nil, fmt.Errorf("type name %s is defined by both %s and %s", id.Name, prev.PkgPath, id.PkgPath)
		}

		seen[id.Name] = id
		defs = append(defs, a.defs[id])
	}

	return origin.NewSchema(rt, defs...), nil
}

// registerPackage records the package and its enum candidates.
func (a *Analyzer) registerPackage(pkg *packages.Package) {
	a.packages[pkg.PkgPath] = &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}

		named, ok := types.Unalias(c.Type()).(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types || !named.Obj().Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: named.Obj().Name()}
		a.enums[id] = append(a.enums[id], c)
	}

	for id, consts := range a.enums {
		if id.PkgPath != pkg.PkgPath {
			continue
		}

		sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil {
					doc = gd.Doc
				}

				if doc != nil {
					a.docs[TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}] = strings.TrimSpace(doc.Text())
				}
			}
		}
	}
}

// processPackage converts the exported structs and enums of a package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	info := a.packages[pkg.PkgPath]

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process exported type names
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		var def *origin.Type

		switch {
		case a.isEnum(id):
			def = a.enumType(id)
		case isStruct(named):
			def = a.structType(name, named.Underlying().(*types.Struct))
		default:
			continue
		}

		def.Comment = a.docs[id]
		a.defs[id] = def
		info.Types = append(info.Types, id)

		a.logger.Debug("analyzed type", "type", id.String(), "kind", def.Kind.String())
	}

	a.logger.Info("analyzed package", "package", pkg.PkgPath, "types", len(info.Types))
}

func (a *Analyzer) isEnum(id TypeID) bool {
	return len(a.enums[id]) > 0
}

// isLoadedNamed reports whether named is an exported struct or enum of a
// loaded package, i.e. whether it becomes a definition.
func (a *Analyzer) isLoadedNamed(named *types.Named) bool {
	obj := named.Obj()
	if obj.Pkg() == nil || !obj.Exported() || named.TypeArgs().Len() > 0 {
		return false
	}

	if _, ok := a.packages[obj.Pkg().Path()]; !ok {
		return false
	}

	return isStruct(named) || a.isEnum(TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()})
}

func isStruct(named *types.Named) bool {
	_, ok := named.Underlying().(*types.Struct)
	return ok
}
