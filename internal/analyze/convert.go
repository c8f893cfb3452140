package analyze

import (
	"go/constant"
	"go/types"
	"reflect"
	"unicode"
	"unicode/utf8"

	"bridge-generator/internal/origin"
)

// structType converts the exported fields of a struct. owner names the
// struct and prefixes the names of anonymous structs declared in it.
func (a *Analyzer) structType(owner string, st *types.Struct) *origin.Type {
	out := &origin.Type{Kind: origin.KindStruct, Name: owner}

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		// Only exported fields are bridged
		if !field.Exported() {
			continue
		}

		tag := parseFieldTag(field.Name(), reflect.StructTag(st.Tag(i)))
		if tag.skip {
			continue
		}

		ft := field.Type()

		optional := tag.omitEmpty
		if ptr, ok := ft.(*types.Pointer); ok {
			optional = true
			ft = ptr.Elem()
		}

		out.Fields = append(out.Fields, origin.Field{
			Name:     tag.name,
			Type:     a.typeOf(ft, owner+exported(field.Name())),
			Optional: optional,
			Mutable:  true,
		})
	}

	return out
}

// enumType converts a named basic type and its constants. Constant names
// are the case labels; their values are the raw values.
func (a *Analyzer) enumType(id TypeID) *origin.Type {
	out := &origin.Type{Kind: origin.KindEnum, Name: id.Name}

	for _, c := range a.enums[id] {
		out.Cases = append(out.Cases, origin.EnumCase{
			Label:    c.Name(),
			RawValue: constValue(c.Val()),
		})
	}

	return out
}

// typeOf converts a field, element, key or value type. inlineName names an
// anonymous struct found at this position.
func (a *Analyzer) typeOf(t types.Type, inlineName string) *origin.Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		if a.isLoadedNamed(tt) {
			return origin.Ref(tt.Obj().Name())
		}

		if tt.Obj().Pkg() == nil {
			// error and other universe types
			return origin.NoBridge(origin.PrimitiveAny)
		}

		if _, ok := a.packages[tt.Obj().Pkg().Path()]; ok {
			// Named slices, maps and basics of loaded packages bridge as
			// their underlying type.
			return a.typeOf(tt.Underlying(), inlineName)
		}

		return origin.NoBridge(origin.PrimitiveAny)

	case *types.Basic:
		return basicType(tt)

	case *types.Pointer:
		return a.typeOf(tt.Elem(), inlineName)

	case *types.Slice:
		return origin.ArrayOf(a.typeOf(tt.Elem(), inlineName))

	case *types.Array:
		return origin.ArrayOf(a.typeOf(tt.Elem(), inlineName))

	case *types.Map:
		return origin.DictionaryOf(a.typeOf(tt.Key(), inlineName+"Key"), a.typeOf(tt.Elem(), inlineName))

	case *types.Struct:
		return a.structType(inlineName, tt)

	default:
		// Interfaces, channels, functions, etc. are opaque
		return origin.NoBridge(origin.PrimitiveAny)
	}
}

func basicType(b *types.Basic) *origin.Type {
	switch b.Kind() {
	case types.Bool, types.UntypedBool:
		return origin.Bool()
	case types.Int, types.Int8, types.Int16, types.Int32,
		types.Uint, types.Uint8, types.Uint16, types.Uint32, types.UntypedInt, types.UntypedRune:
		return origin.Int()
	case types.Int64, types.Uint64, types.Uintptr:
		return origin.NoBridge(origin.PrimitiveInt64)
	case types.Float32, types.Float64, types.UntypedFloat:
		return origin.Double()
	case types.String, types.UntypedString:
		return origin.String()
	default:
		return origin.NoBridge(origin.PrimitiveAny)
	}
}

func constValue(v constant.Value) string {
	if v.Kind() == constant.String {
		return constant.StringVal(v)
	}

	return v.ExactString()
}

// exported upper-cases the first letter of a field name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
