package swift

import (
	"fmt"
	"strconv"
	"strings"

	language "github.com/hanpama/swiftgraph/internal/language"
)

// renderArguments converts a field's argument list into a Swift dictionary
// literal, preserving argument order.
func renderArguments(args language.ArgumentList) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, strconv.Quote(arg.Name)+": "+renderValue(arg.Value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderValue converts a GraphQL value into a Swift expression. Operation
// variable references become GraphQLVariable wrappers so the data-access
// layer can substitute them at request time.
func renderValue(v *language.Value) string {
	switch v.Kind {
	case language.Variable:
		return `GraphQLVariable("` + v.Raw + `")`
	case language.IntValue, language.FloatValue, language.BooleanValue:
		return v.Raw
	case language.StringValue, language.BlockValue, language.EnumValue:
		return strconv.Quote(v.Raw)
	case language.NullValue:
		return "nil"
	case language.ListValue:
		if len(v.Children) == 0 {
			return "[]"
		}
		parts := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			parts = append(parts, renderValue(child.Value))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case language.ObjectValue:
		if len(v.Children) == 0 {
			return "[:]"
		}
		parts := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			parts = append(parts, strconv.Quote(child.Name)+": "+renderValue(child.Value))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		panic(fmt.Sprintf("swift: unexpected value kind %d", v.Kind))
	}
}
