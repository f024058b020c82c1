package swift

import (
	"fmt"
	"strings"

	language "github.com/hanpama/swiftgraph/internal/language"
)

// builtInScalars maps the GraphQL built-in scalars onto Swift types.
var builtInScalars = map[string]string{
	"String":  "String",
	"Int":     "Int",
	"Float":   "Double",
	"Boolean": "Bool",
	"ID":      "GraphQLID",
}

// typeName resolves a GraphQL type expression into the exposed Swift type.
// bareName, when non-empty, overrides named-type resolution; composite
// fields pass the generated nested record name through it, because composite
// types map to the record compiled for their selection set rather than to
// the schema type. List nesting and optionality are preserved level by
// level, so "[[T?]]?" style expressions round-trip exactly.
func (g *generator) typeName(typ *language.Type, bareName string) string {
	var name string
	switch {
	case typ.NamedType == "":
		name = "[" + g.typeName(typ.Elem, bareName) + "]"
	case bareName != "":
		name = bareName
	default:
		name = g.bareTypeName(typ.NamedType)
	}
	if !typ.NonNull {
		name += "?"
	}
	return name
}

func (g *generator) bareTypeName(named string) string {
	if builtin, ok := builtInScalars[named]; ok {
		return builtin
	}
	switch g.doc.TypeKinds[named] {
	case language.Scalar:
		if g.opts.PassthroughCustomScalars {
			return "String"
		}
		return g.opts.CustomScalarsPrefix + named
	case language.Enum, language.InputObject:
		return named
	default:
		// Composite types must be resolved through their generated record;
		// reaching this point means the caller lost track of one.
		panic(fmt.Sprintf("swift: no Swift type for %q", named))
	}
}

// storageTypeName is the Swift type a value takes inside the untyped result
// map: composite records collapse to ResultMap, everything else is stored as
// its exposed type.
func (g *generator) storageTypeName(typ *language.Type, composite bool) string {
	if composite {
		return g.typeName(typ, "ResultMap")
	}
	return g.typeName(typ, "")
}

// mapExpression applies transform to every element of a possibly optional,
// possibly nested list value, preserving the optional structure at each
// level without double-wrapping. fromType and toType render the value's
// Swift type before and after the transform at a given nesting level; expr
// is the expression being transformed.
func mapExpression(typ *language.Type, fromType, toType func(*language.Type) string, transform func(string) string, expr string) string {
	if typ.NamedType != "" {
		if typ.NonNull {
			return transform(expr)
		}
		return expr + ".flatMap { (value: " + nonOptional(fromType(typ)) + ") -> " + nonOptional(toType(typ)) + " in " + transform("value") + " }"
	}
	elemExpr := mapExpression(typ.Elem, fromType, toType, transform, "value")
	mapped := ".map { (value: " + fromType(typ.Elem) + ") -> " + toType(typ.Elem) + " in " + elemExpr + " }"
	if typ.NonNull {
		return expr + mapped
	}
	return expr + ".flatMap { (value: " + nonOptional(fromType(typ)) + ") -> " + nonOptional(toType(typ)) + " in value" + mapped + " }"
}

func nonOptional(typeName string) string {
	return strings.TrimSuffix(typeName, "?")
}

// isList reports whether the type expression has a list at any level.
func isList(typ *language.Type) bool {
	return typ.NamedType == ""
}
