package ir

import (
	language "github.com/hanpama/swiftgraph/internal/language"
)

// TypenameField is the meta field carrying the concrete type name of a
// composite value at runtime.
const TypenameField = "__typename"

// Document is the fully resolved input to code generation: every operation
// and fragment with its selection sets, plus the named types they reference.
type Document struct {
	Operations   []*Operation
	Fragments    []*Fragment
	Enums        []*EnumType
	InputObjects []*InputObjectType

	// TypeKinds maps every named type reachable from the document to its
	// schema kind. Generators consult it to distinguish scalars from enums
	// and composites when resolving type expressions.
	TypeKinds map[string]language.DefinitionKind
}

// Fragment returns the named fragment, or nil when the document does not
// define it.
func (d *Document) Fragment(name string) *Fragment {
	for _, f := range d.Fragments {
		if f.Name == name {
			return f
		}
	}
	return nil
}

type OperationKind string

const (
	OperationQuery    OperationKind = "query"
	OperationMutation OperationKind = "mutation"
)

type Operation struct {
	Name      string
	Kind      OperationKind
	Variables []*Variable

	// Source is the operation rendered back to GraphQL source text, with
	// meta fields injected, for embedding into the generated output.
	Source string

	// OperationID is the content hash over the operation source and every
	// transitively referenced fragment source.
	OperationID string

	// ReferencedFragments lists fragments reachable from the operation's
	// selection set, in first-reference order, deduplicated.
	ReferencedFragments []string

	RootType     string
	SelectionSet *SelectionSet
}

type Variable struct {
	Name string
	Type *language.Type
}

type Fragment struct {
	Name          string
	TypeCondition string
	Source        string
	SelectionSet  *SelectionSet
}

// SelectionSet is an ordered sequence of selections plus the concrete object
// types it can apply to at runtime.
type SelectionSet struct {
	PossibleTypes []string
	Selections    []Selection
}

// Selection is one of *Field, *TypeCondition, *FragmentSpread or
// *BooleanCondition.
type Selection interface {
	isSelection()
}

type Field struct {
	Name        string
	Alias       string
	Arguments   language.ArgumentList
	Type        *language.Type
	Description string

	// SelectionSet is non-nil exactly when the field's type is composite.
	SelectionSet *SelectionSet
}

// ResponseKey is the key the field's value is stored under in a response.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// IsTypename reports whether the field is the concrete-type meta field.
func (f *Field) IsTypename() bool {
	return f.Name == TypenameField
}

// TypeCondition is a selection scoped to one concrete type within a
// polymorphic selection set.
type TypeCondition struct {
	TypeName     string
	SelectionSet *SelectionSet
}

// FragmentSpread references a named fragment. The fragment's own fields stay
// with its definition; the spread carries just enough for generators to emit
// the reference and the typed view over the shared response data.
type FragmentSpread struct {
	Name          string
	PossibleTypes []string
}

// BooleanCondition guards the nested selections behind an operation variable,
// produced from @include and @skip directives. Inverted is true for @skip.
type BooleanCondition struct {
	VariableName string
	Inverted     bool
	Selections   []Selection
}

func (*Field) isSelection()            {}
func (*TypeCondition) isSelection()    {}
func (*FragmentSpread) isSelection()   {}
func (*BooleanCondition) isSelection() {}

type EnumType struct {
	Name        string
	Description string
	Values      []*EnumValue
}

type EnumValue struct {
	Name        string
	Description string
}

type InputObjectType struct {
	Name        string
	Description string
	Fields      []*InputField
}

type InputField struct {
	Name        string
	Type        *language.Type
	Description string
}
