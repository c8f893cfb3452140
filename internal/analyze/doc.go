// Package analyze provides package loading and origin schema extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to convert
// the exported types of Go packages into origin definitions:
//   - structs become structs of their exported fields, named by json tag
//   - named basic types with declared constants become enums
//   - other named types of loaded packages bridge as their underlying type
//   - types from other packages (time.Time, interfaces) are opaque
package analyze
