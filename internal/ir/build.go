package ir

import (
	"fmt"

	language "github.com/hanpama/swiftgraph/internal/language"
)

// typenameFieldDefinition backs the injected meta field; the parser leaves
// meta fields unresolved, so the definition is supplied here.
var typenameFieldDefinition = &language.FieldDefinition{
	Name: TypenameField,
	Type: language.NonNullNamedType("String", nil),
}

type builder struct {
	schema *language.Schema

	enums        []*EnumType
	inputObjects []*InputObjectType
	typeKinds    map[string]language.DefinitionKind
	seenTypes    map[string]bool
}

// Build turns a validated executable document into the code-generation IR.
// The document is expected to come from language.LoadQuery, so every field,
// type and fragment reference is already resolved; a missing reference here
// is reported as a fatal input error.
//
// Build mutates the document's selection sets to inject the __typename meta
// field everywhere except operation roots, so that the embedded source text
// and the IR agree on the selections the client will request.
func Build(schema *language.Schema, doc *language.QueryDocument) (*Document, error) {
	b := &builder{
		schema:    schema,
		typeKinds: map[string]language.DefinitionKind{},
		seenTypes: map[string]bool{},
	}

	for _, op := range doc.Operations {
		addTypenameToChildren(op.SelectionSet)
	}
	for _, frag := range doc.Fragments {
		frag.SelectionSet = addTypename(frag.SelectionSet)
	}

	d := &Document{}
	for _, opDef := range doc.Operations {
		op, err := b.buildOperation(opDef)
		if err != nil {
			return nil, err
		}
		d.Operations = append(d.Operations, op)
	}
	for _, fragDef := range doc.Fragments {
		frag, err := b.buildFragment(fragDef)
		if err != nil {
			return nil, err
		}
		d.Fragments = append(d.Fragments, frag)
	}

	for _, op := range d.Operations {
		sources := make([]string, 0, len(op.ReferencedFragments))
		for _, name := range op.ReferencedFragments {
			frag := d.Fragment(name)
			if frag == nil {
				return nil, fmt.Errorf("operation %q references undeclared fragment %q", op.Name, name)
			}
			sources = append(sources, frag.Source)
		}
		op.OperationID = operationID(op.Source, sources)
	}

	d.Enums = b.enums
	d.InputObjects = b.inputObjects
	d.TypeKinds = b.typeKinds
	return d, nil
}

func (b *builder) buildOperation(def *language.OperationDefinition) (*Operation, error) {
	var kind OperationKind
	switch def.Operation {
	case language.Query:
		kind = OperationQuery
	case language.Mutation:
		kind = OperationMutation
	default:
		return nil, fmt.Errorf("operation %q: unsupported operation kind %q", def.Name, def.Operation)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("unnamed %s operation: generated declarations require a name", kind)
	}

	var rootDef *language.Definition
	switch kind {
	case OperationQuery:
		rootDef = b.schema.Query
	case OperationMutation:
		rootDef = b.schema.Mutation
	}
	if rootDef == nil {
		return nil, fmt.Errorf("operation %q: schema does not declare a %s root type", def.Name, kind)
	}

	variables := make([]*Variable, 0, len(def.VariableDefinitions))
	for _, vd := range def.VariableDefinitions {
		b.recordTypeUse(vd.Type)
		variables = append(variables, &Variable{Name: vd.Variable, Type: vd.Type})
	}

	ss, err := b.buildSelectionSet(rootDef, def.SelectionSet)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", def.Name, err)
	}

	return &Operation{
		Name:                def.Name,
		Kind:                kind,
		Variables:           variables,
		Source:              formatSource(&language.QueryDocument{Operations: language.OperationList{def}}),
		ReferencedFragments: referencedFragmentNames(def.SelectionSet),
		RootType:            rootDef.Name,
		SelectionSet:        ss,
	}, nil
}

func (b *builder) buildFragment(def *language.FragmentDefinition) (*Fragment, error) {
	condDef := def.Definition
	if condDef == nil {
		condDef = b.schema.Types[def.TypeCondition]
	}
	if condDef == nil {
		return nil, fmt.Errorf("fragment %q: unknown type condition %q", def.Name, def.TypeCondition)
	}
	ss, err := b.buildSelectionSet(condDef, def.SelectionSet)
	if err != nil {
		return nil, fmt.Errorf("fragment %q: %w", def.Name, err)
	}
	return &Fragment{
		Name:          def.Name,
		TypeCondition: def.TypeCondition,
		Source:        formatSource(&language.QueryDocument{Fragments: language.FragmentList{def}}),
		SelectionSet:  ss,
	}, nil
}

func (b *builder) buildSelectionSet(parentDef *language.Definition, sels language.SelectionSet) (*SelectionSet, error) {
	selections, err := b.buildSelections(parentDef, sels)
	if err != nil {
		return nil, err
	}
	return &SelectionSet{
		PossibleTypes: b.possibleTypes(parentDef),
		Selections:    selections,
	}, nil
}

func (b *builder) buildSelections(parentDef *language.Definition, sels language.SelectionSet) ([]Selection, error) {
	var out []Selection
	for _, sel := range sels {
		switch s := sel.(type) {
		case *language.Field:
			field, err := b.buildField(s)
			if err != nil {
				return nil, err
			}
			out = append(out, wrapConditions(s.Directives, field)...)

		case *language.InlineFragment:
			if s.TypeCondition == "" || s.TypeCondition == parentDef.Name {
				// A type condition matching the enclosing type adds no
				// narrowing; its selections are inlined directly.
				inner, err := b.buildSelections(parentDef, s.SelectionSet)
				if err != nil {
					return nil, err
				}
				out = append(out, wrapConditions(s.Directives, dropTypenameFields(inner)...)...)
				continue
			}
			condDef := b.schema.Types[s.TypeCondition]
			if condDef == nil {
				return nil, fmt.Errorf("unknown type condition %q", s.TypeCondition)
			}
			child, err := b.buildSelectionSet(condDef, s.SelectionSet)
			if err != nil {
				return nil, err
			}
			tc := &TypeCondition{TypeName: s.TypeCondition, SelectionSet: child}
			out = append(out, wrapConditions(s.Directives, tc)...)

		case *language.FragmentSpread:
			if s.Definition == nil {
				return nil, fmt.Errorf("undeclared fragment %q", s.Name)
			}
			condDef := s.Definition.Definition
			if condDef == nil {
				condDef = b.schema.Types[s.Definition.TypeCondition]
			}
			if condDef == nil {
				return nil, fmt.Errorf("fragment %q: unknown type condition %q", s.Name, s.Definition.TypeCondition)
			}
			spread := &FragmentSpread{Name: s.Name, PossibleTypes: b.possibleTypes(condDef)}
			out = append(out, wrapConditions(s.Directives, spread)...)

		default:
			panic(fmt.Sprintf("ir: unexpected selection type %T", sel))
		}
	}
	return out, nil
}

func (b *builder) buildField(s *language.Field) (*Field, error) {
	def := s.Definition
	if def == nil {
		if s.Name == TypenameField {
			def = typenameFieldDefinition
		} else {
			return nil, fmt.Errorf("field %q: unresolved definition", s.Name)
		}
	}
	b.recordTypeUse(def.Type)

	field := &Field{
		Name:        s.Name,
		Arguments:   s.Arguments,
		Type:        def.Type,
		Description: def.Description,
	}
	if s.Alias != "" && s.Alias != s.Name {
		field.Alias = s.Alias
	}

	if len(s.SelectionSet) > 0 {
		childDef := b.schema.Types[def.Type.Name()]
		if childDef == nil {
			return nil, fmt.Errorf("field %q: unknown type %q", s.Name, def.Type.Name())
		}
		child, err := b.buildSelectionSet(childDef, s.SelectionSet)
		if err != nil {
			return nil, err
		}
		field.SelectionSet = child
	}
	return field, nil
}

// possibleTypes returns the concrete object types a composite definition can
// resolve to, in schema declaration order.
func (b *builder) possibleTypes(def *language.Definition) []string {
	switch def.Kind {
	case language.Object:
		return []string{def.Name}
	case language.Interface, language.Union:
		defs := b.schema.GetPossibleTypes(def)
		names := make([]string, 0, len(defs))
		for _, d := range defs {
			names = append(names, d.Name)
		}
		return names
	default:
		return nil
	}
}

// recordTypeUse registers the named type behind a type expression, collecting
// enum and input-object declarations (transitively through input fields) in
// first-use order.
func (b *builder) recordTypeUse(t *language.Type) {
	named := t.Name()
	if b.seenTypes[named] {
		return
	}
	b.seenTypes[named] = true

	def := b.schema.Types[named]
	if def == nil {
		return
	}
	b.typeKinds[named] = def.Kind

	switch def.Kind {
	case language.Enum:
		enum := &EnumType{Name: def.Name, Description: def.Description}
		for _, v := range def.EnumValues {
			enum.Values = append(enum.Values, &EnumValue{Name: v.Name, Description: v.Description})
		}
		b.enums = append(b.enums, enum)
	case language.InputObject:
		input := &InputObjectType{Name: def.Name, Description: def.Description}
		for _, f := range def.Fields {
			input.Fields = append(input.Fields, &InputField{Name: f.Name, Type: f.Type, Description: f.Description})
			b.recordTypeUse(f.Type)
		}
		b.inputObjects = append(b.inputObjects, input)
	}
}

// wrapConditions nests selections behind boolean conditions derived from
// @include and @skip directives, outermost directive first. Conditions with
// literal values are resolved immediately.
func wrapConditions(directives language.DirectiveList, sels ...Selection) []Selection {
	wrapped := sels
	for i := len(directives) - 1; i >= 0; i-- {
		d := directives[i]
		var inverted bool
		switch d.Name {
		case "include":
		case "skip":
			inverted = true
		default:
			continue
		}
		arg := d.Arguments.ForName("if")
		if arg == nil || arg.Value == nil {
			continue
		}
		switch arg.Value.Kind {
		case language.Variable:
			wrapped = []Selection{&BooleanCondition{
				VariableName: arg.Value.Raw,
				Inverted:     inverted,
				Selections:   wrapped,
			}}
		case language.BooleanValue:
			if (arg.Value.Raw == "true") == inverted {
				return nil
			}
		}
	}
	return wrapped
}

// dropTypenameFields removes meta fields that became redundant when a type
// condition was inlined into a set that already carries one.
func dropTypenameFields(sels []Selection) []Selection {
	out := sels[:0]
	for _, sel := range sels {
		if f, ok := sel.(*Field); ok && f.IsTypename() {
			continue
		}
		out = append(out, sel)
	}
	return out
}

func referencedFragmentNames(sels language.SelectionSet) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(language.SelectionSet)
	walk = func(sels language.SelectionSet) {
		for _, sel := range sels {
			switch s := sel.(type) {
			case *language.Field:
				walk(s.SelectionSet)
			case *language.InlineFragment:
				walk(s.SelectionSet)
			case *language.FragmentSpread:
				if seen[s.Name] {
					continue
				}
				seen[s.Name] = true
				names = append(names, s.Name)
				if s.Definition != nil {
					walk(s.Definition.SelectionSet)
				}
			}
		}
	}
	walk(sels)
	return names
}

// addTypename prepends the __typename meta field to the selection set and
// every nested one.
func addTypename(sels language.SelectionSet) language.SelectionSet {
	addTypenameToChildren(sels)
	for _, sel := range sels {
		if f, ok := sel.(*language.Field); ok && f.Name == TypenameField {
			return sels
		}
	}
	meta := &language.Field{
		Name:       TypenameField,
		Alias:      TypenameField,
		Definition: typenameFieldDefinition,
	}
	return append(language.SelectionSet{meta}, sels...)
}

// addTypenameToChildren injects meta fields below but not into the given
// set; operation roots keep their selections as written.
func addTypenameToChildren(sels language.SelectionSet) {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *language.Field:
			if len(s.SelectionSet) > 0 {
				s.SelectionSet = addTypename(s.SelectionSet)
			}
		case *language.InlineFragment:
			s.SelectionSet = addTypename(s.SelectionSet)
		}
	}
}

func formatSource(doc *language.QueryDocument) string {
	return trimTrailingNewlines(language.FormatQueryDocument(doc))
}

func trimTrailingNewlines(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s
}
