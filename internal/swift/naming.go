package swift

import (
	"strings"

	"github.com/go-openapi/inflect"

	ir "github.com/hanpama/swiftgraph/internal/ir"
)

// reservedKeywords are Swift keywords that cannot appear as bare identifiers.
var reservedKeywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true,
	"extension": true, "fileprivate": true, "func": true, "import": true,
	"init": true, "inout": true, "internal": true, "let": true, "open": true,
	"operator": true, "private": true, "protocol": true, "public": true,
	"static": true, "struct": true, "subscript": true, "typealias": true,
	"var": true, "break": true, "case": true, "continue": true,
	"default": true, "defer": true, "do": true, "else": true,
	"fallthrough": true, "for": true, "guard": true, "if": true, "in": true,
	"repeat": true, "return": true, "switch": true, "where": true,
	"while": true, "as": true, "catch": true, "false": true, "is": true,
	"nil": true, "rethrows": true, "super": true, "self": true, "Self": true,
	"throw": true, "throws": true, "true": true, "try": true,
	"associativity": true, "convenience": true, "dynamic": true,
	"didSet": true, "final": true, "get": true, "infix": true,
	"indirect": true, "lazy": true, "mutating": true, "none": true,
	"nonmutating": true, "optional": true, "override": true, "postfix": true,
	"precedence": true, "prefix": true, "required": true, "set": true,
	"Type": true, "unowned": true, "weak": true, "willSet": true,
}

func escapeIdentifierIfNeeded(name string) string {
	if reservedKeywords[name] {
		return "`" + name + "`"
	}
	return name
}

// propertyName maps a GraphQL response key onto a Swift property identifier.
func propertyName(responseKey string) string {
	return escapeIdentifierIfNeeded(responseKey)
}

// structNameForPropertyName derives the nested record name for a composite
// field from its response key. Plural keys are singularized, so a "friends"
// list is backed by a Friend record.
func structNameForPropertyName(responseKey string) string {
	return inflect.Camelize(inflect.Singularize(responseKey))
}

// structNameForTypeCondition derives the nested record name for a type
// condition; distinct conditions within a scope yield distinct names because
// possible type names are unique per schema.
func structNameForTypeCondition(typeName string) string {
	return "As" + inflect.Camelize(typeName)
}

func structNameForFragmentName(fragmentName string) string {
	return inflect.Camelize(fragmentName)
}

// propertyNameForTypeCondition names the narrowing accessor for a type
// condition ("asDog" for type Dog).
func propertyNameForTypeCondition(typeName string) string {
	return "as" + inflect.Camelize(typeName)
}

func propertyNameForFragmentName(fragmentName string) string {
	return escapeIdentifierIfNeeded(inflect.CamelizeDownFirst(fragmentName))
}

// operationClassName names the generated class for an operation, suffixing
// the operation kind unless the author already did.
func operationClassName(op *ir.Operation) string {
	name := inflect.Camelize(op.Name)
	var suffix string
	switch op.Kind {
	case ir.OperationMutation:
		suffix = "Mutation"
	default:
		suffix = "Query"
	}
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}

// factoryName names the per-possible-type factory of a polymorphic record.
func factoryName(typeName string) string {
	return "make" + inflect.Camelize(typeName)
}

// enumCaseName converts a SCREAMING_SNAKE_CASE enum value to a Swift case
// identifier.
func enumCaseName(value string) string {
	return escapeIdentifierIfNeeded(inflect.CamelizeDownFirst(strings.ToLower(value)))
}
