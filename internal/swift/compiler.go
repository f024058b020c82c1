package swift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hanpama/swiftgraph/internal/ir"
	language "github.com/hanpama/swiftgraph/internal/language"
)

// generator carries the document-wide state shared by every emitted
// declaration.
type generator struct {
	opts *Options
	doc  *ir.Document
	p    *printer
}

// structDeclarationForSelectionSet emits the record struct compiled from a
// selection set: static metadata, the untyped storage, initializers per the
// type case, typed accessors in selection order, and the nested records.
// preamble, when non-nil, runs right after the declaration opens.
func (g *generator) structDeclarationForSelectionSet(name string, ss *ir.SelectionSet, adopts []string, preamble func()) error {
	g.p.Blank()
	g.p.BeginDeclaration("struct", name, adopts)
	if preamble != nil {
		preamble()
	}
	g.possibleTypesProperty(ss)
	g.selectionsProperty(ss)
	g.resultMapStorage()
	g.initializers(ss)
	spreads := g.propertyDeclarations(ss)
	if err := g.nestedDeclarations(ss, spreads); err != nil {
		return err
	}
	g.p.EndDeclaration()
	return nil
}

func (g *generator) possibleTypesProperty(ss *ir.SelectionSet) {
	g.p.Blank()
	g.p.Linef("public static let possibleTypes: [String] = [%s]", quotedList(ss.PossibleTypes))
}

func quotedList(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, strconv.Quote(n))
	}
	return strings.Join(parts, ", ")
}

func (g *generator) selectionsProperty(ss *ir.SelectionSet) {
	g.p.Blank()
	g.p.Line("public static let selections: [GraphQLSelection] = [")
	g.p.Indent()
	g.selectionDescriptors(ss.Selections)
	g.p.Outdent()
	g.p.Line("]")
}

func (g *generator) selectionDescriptors(sels []ir.Selection) {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ir.Field:
			g.p.Line(g.fieldDescriptor(s) + ",")
		case *ir.TypeCondition:
			g.p.Linef("GraphQLTypeCondition(%s.self),", structNameForTypeCondition(s.TypeName))
		case *ir.FragmentSpread:
			g.p.Linef("GraphQLFragmentSpread(%s.self),", structNameForFragmentName(s.Name))
		case *ir.BooleanCondition:
			g.p.Linef("GraphQLBooleanCondition(variableName: %q, inverted: %t, selections: [", s.VariableName, s.Inverted)
			g.p.Indent()
			g.selectionDescriptors(s.Selections)
			g.p.Outdent()
			g.p.Line("]),")
		}
	}
}

func (g *generator) fieldDescriptor(f *ir.Field) string {
	parts := []string{strconv.Quote(f.Name)}
	if f.Alias != "" {
		parts = append(parts, "alias: "+strconv.Quote(f.Alias))
	}
	if len(f.Arguments) > 0 {
		parts = append(parts, "arguments: "+renderArguments(f.Arguments))
	}
	var structName string
	if f.SelectionSet != nil {
		structName = structNameForPropertyName(f.ResponseKey())
	}
	parts = append(parts, "type: "+g.fieldTypeTag(f.Type, structName))
	return "GraphQLField(" + strings.Join(parts, ", ") + ")"
}

// fieldTypeTag renders the runtime type tag mirroring the field's GraphQL
// type expression, e.g. ".nonNull(.list(.scalar(String.self)))". Composite
// fields point at their nested record's selections.
func (g *generator) fieldTypeTag(typ *language.Type, structName string) string {
	var tag string
	switch {
	case typ.NamedType == "":
		tag = ".list(" + g.fieldTypeTag(typ.Elem, structName) + ")"
	case structName != "":
		tag = ".object(" + structName + ".selections)"
	default:
		tag = ".scalar(" + g.bareTypeName(typ.NamedType) + ".self)"
	}
	if typ.NonNull {
		tag = ".nonNull(" + tag + ")"
	}
	return tag
}

func (g *generator) resultMapStorage() {
	g.p.Blank()
	g.p.Line("public private(set) var resultMap: ResultMap")
	g.p.Blank()
	g.p.BeginBlock("public init(unsafeResultMap: ResultMap)")
	g.p.Line("self.resultMap = unsafeResultMap")
	g.p.EndBlock()
}

// initializers emits either one memberwise initializer, when every possible
// type shares the same field set, or one static factory per possible type.
func (g *generator) initializers(ss *ir.SelectionSet) {
	records := typeCaseForSelectionSet(ss)
	if len(records) == 1 && len(records[0].possibleTypes) == 1 {
		g.memberwiseInitializer(records[0])
		return
	}
	for _, rec := range records {
		for _, typeName := range rec.possibleTypes {
			g.factoryFunction(typeName, rec)
		}
	}
}

func (g *generator) memberwiseInitializer(rec record) {
	g.p.Blank()
	g.p.BeginBlock("public init(" + g.parameterList(rec.fields) + ")")
	g.p.Linef("self.init(unsafeResultMap: [%s])", g.storageLiteral(rec.possibleTypes[0], rec.fields))
	g.p.EndBlock()
}

func (g *generator) factoryFunction(typeName string, rec record) {
	g.p.Blank()
	self := g.p.ScopeName()
	g.p.BeginBlock(fmt.Sprintf("public static func %s(%s) -> %s", factoryName(typeName), g.parameterList(rec.fields), self))
	g.p.Linef("return %s(unsafeResultMap: [%s])", self, g.storageLiteral(typeName, rec.fields))
	g.p.EndBlock()
}

func (g *generator) parameterList(fields []recordField) string {
	parts := make([]string, 0, len(fields))
	for _, rf := range fields {
		typeName := g.typeName(effectiveType(rf.field.Type, rf.conditional), rf.structName())
		param := propertyName(rf.field.ResponseKey()) + ": " + typeName
		if strings.HasSuffix(typeName, "?") {
			param += " = nil"
		}
		parts = append(parts, param)
	}
	return strings.Join(parts, ", ")
}

// storageLiteral builds the result-map dictionary literal an initializer
// seeds, starting with the concrete type name under the meta key.
func (g *generator) storageLiteral(typeName string, fields []recordField) string {
	parts := []string{strconv.Quote(ir.TypenameField) + ": " + strconv.Quote(typeName)}
	for _, rf := range fields {
		parts = append(parts, strconv.Quote(rf.field.ResponseKey())+": "+g.storageValue(rf))
	}
	return strings.Join(parts, ", ")
}

// storageValue converts an initializer parameter into its stored form.
// Composite values collapse to their result maps, through every list and
// optional level of the field's type.
func (g *generator) storageValue(rf recordField) string {
	name := propertyName(rf.field.ResponseKey())
	if rf.field.SelectionSet == nil {
		return name
	}
	structName := rf.structName()
	typ := effectiveType(rf.field.Type, rf.conditional)
	exposed := func(t *language.Type) string { return g.typeName(t, structName) }
	stored := func(t *language.Type) string { return g.typeName(t, "ResultMap") }
	unwrap := func(expr string) string { return expr + ".resultMap" }
	return mapExpression(typ, exposed, stored, unwrap, name)
}

// effectiveType is the field's type as exposed by the record: fields behind
// boolean conditions lose their outer non-null.
func effectiveType(typ *language.Type, conditional bool) *language.Type {
	if !conditional || !typ.NonNull {
		return typ
	}
	clone := *typ
	clone.NonNull = false
	return &clone
}

// propertyDeclarations emits the typed accessors in selection order and
// returns the fragment spreads found along the way.
func (g *generator) propertyDeclarations(ss *ir.SelectionSet) []*ir.FragmentSpread {
	var spreads []*ir.FragmentSpread
	g.propertiesForSelections(ss.Selections, false, &spreads)
	if len(spreads) > 0 {
		g.fragmentsProperty()
	}
	return spreads
}

func (g *generator) propertiesForSelections(sels []ir.Selection, conditional bool, spreads *[]*ir.FragmentSpread) {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ir.Field:
			if s.IsTypename() {
				continue
			}
			g.fieldProperty(s, conditional)
		case *ir.TypeCondition:
			g.typeConditionProperty(s)
		case *ir.FragmentSpread:
			*spreads = append(*spreads, s)
		case *ir.BooleanCondition:
			g.propertiesForSelections(s.Selections, true, spreads)
		}
	}
}

func (g *generator) fieldProperty(f *ir.Field, conditional bool) {
	key := f.ResponseKey()
	typ := effectiveType(f.Type, conditional)
	g.p.Blank()
	if f.Description != "" {
		g.docComment(f.Description)
	}
	if f.SelectionSet == nil {
		g.leafFieldProperty(key, typ)
		return
	}
	g.compositeFieldProperty(key, typ)
}

func (g *generator) leafFieldProperty(key string, typ *language.Type) {
	exposed := g.typeName(typ, "")
	g.p.BeginProperty(propertyName(key), exposed)
	g.p.Get(func() {
		if typ.NonNull {
			g.p.Linef("return resultMap[%q]! as! %s", key, exposed)
		} else {
			g.p.Linef("return resultMap[%q] as? %s", key, nonOptional(exposed))
		}
	})
	g.p.Set(func() {
		g.p.Linef("resultMap.updateValue(newValue, forKey: %q)", key)
	})
	g.p.EndBlock()
}

func (g *generator) compositeFieldProperty(key string, typ *language.Type) {
	structName := structNameForPropertyName(key)
	exposed := func(t *language.Type) string { return g.typeName(t, structName) }
	stored := func(t *language.Type) string { return g.typeName(t, "ResultMap") }
	storage := g.storageTypeName(typ, true)

	g.p.BeginProperty(propertyName(key), exposed(typ))
	g.p.Get(func() {
		var base string
		if typ.NonNull {
			base = fmt.Sprintf("resultMap[%q]! as! %s", key, storage)
			if isList(typ) {
				base = "(" + base + ")"
			}
		} else {
			base = fmt.Sprintf("(resultMap[%q] as? %s)", key, nonOptional(storage))
		}
		wrap := func(expr string) string { return structName + "(unsafeResultMap: " + expr + ")" }
		g.p.Line("return " + mapExpression(typ, stored, exposed, wrap, base))
	})
	g.p.Set(func() {
		unwrap := func(expr string) string { return expr + ".resultMap" }
		g.p.Linef("resultMap.updateValue(%s, forKey: %q)", mapExpression(typ, exposed, stored, unwrap, "newValue"), key)
	})
	g.p.EndBlock()
}

// typeConditionProperty narrows the record to one concrete possible type,
// returning nil when the stored type name falls outside the condition.
func (g *generator) typeConditionProperty(tc *ir.TypeCondition) {
	structName := structNameForTypeCondition(tc.TypeName)
	g.p.Blank()
	g.p.BeginProperty(propertyNameForTypeCondition(tc.TypeName), structName+"?")
	g.p.Get(func() {
		g.p.Linef("if !%s.possibleTypes.contains(resultMap[%q]! as! String) { return nil }", structName, ir.TypenameField)
		g.p.Linef("return %s(unsafeResultMap: resultMap)", structName)
	})
	g.p.Set(func() {
		g.p.Line("guard let newValue = newValue else { return }")
		g.p.Line("resultMap = newValue.resultMap")
	})
	g.p.EndBlock()
}

func (g *generator) fragmentsProperty() {
	g.p.Blank()
	g.p.BeginProperty("fragments", "Fragments")
	g.p.Get(func() {
		g.p.Line("return Fragments(unsafeResultMap: resultMap)")
	})
	g.p.Set(func() {
		g.p.Line("resultMap = newValue.resultMap")
	})
	g.p.EndBlock()
}

// nestedDeclarations emits the nested record structs for composite fields
// and type conditions, then the Fragments view when the selection set
// spreads any fragments.
func (g *generator) nestedDeclarations(ss *ir.SelectionSet, spreads []*ir.FragmentSpread) error {
	if err := g.nestedForSelections(ss.Selections); err != nil {
		return err
	}
	if len(spreads) > 0 {
		g.fragmentsDeclaration(ss, spreads)
	}
	return nil
}

func (g *generator) nestedForSelections(sels []ir.Selection) error {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ir.Field:
			if s.SelectionSet == nil {
				continue
			}
			name := structNameForPropertyName(s.ResponseKey())
			if err := g.structDeclarationForSelectionSet(name, s.SelectionSet, []string{"GraphQLSelectionSet"}, nil); err != nil {
				return err
			}
		case *ir.TypeCondition:
			name := structNameForTypeCondition(s.TypeName)
			if err := g.structDeclarationForSelectionSet(name, s.SelectionSet, []string{"GraphQLSelectionSet"}, nil); err != nil {
				return err
			}
		case *ir.BooleanCondition:
			if err := g.nestedForSelections(s.Selections); err != nil {
				return err
			}
		}
	}
	return nil
}

// fragmentsDeclaration emits the Fragments struct sharing the record's
// result map. A spread whose fragment applies to every possible type of the
// selection set gets a non-optional view; otherwise the view is optional and
// checks the stored type name.
func (g *generator) fragmentsDeclaration(ss *ir.SelectionSet, spreads []*ir.FragmentSpread) {
	g.p.Blank()
	g.p.BeginDeclaration("struct", "Fragments", nil)
	g.resultMapStorage()
	for _, spread := range spreads {
		structName := structNameForFragmentName(spread.Name)
		always := isTypeSuperset(spread.PossibleTypes, ss.PossibleTypes)
		g.p.Blank()
		if always {
			g.p.BeginProperty(propertyNameForFragmentName(spread.Name), structName)
			g.p.Get(func() {
				g.p.Linef("return %s(unsafeResultMap: resultMap)", structName)
			})
			g.p.Set(func() {
				g.p.Line("resultMap = newValue.resultMap")
			})
		} else {
			g.p.BeginProperty(propertyNameForFragmentName(spread.Name), structName+"?")
			g.p.Get(func() {
				g.p.Linef("if !%s.possibleTypes.contains(resultMap[%q]! as! String) { return nil }", structName, ir.TypenameField)
				g.p.Linef("return %s(unsafeResultMap: resultMap)", structName)
			})
			g.p.Set(func() {
				g.p.Line("guard let newValue = newValue else { return }")
				g.p.Line("resultMap = newValue.resultMap")
			})
		}
		g.p.EndBlock()
	}
	g.p.EndDeclaration()
}

func (g *generator) docComment(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		g.p.Line(strings.TrimRight("/// "+line, " "))
	}
}
