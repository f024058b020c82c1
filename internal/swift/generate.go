package swift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hanpama/swiftgraph/internal/ir"
)

// Generate renders the document as a single Swift source file: enums and
// input objects first, then one class per operation, then the fragment
// records. Output depends only on the document and options.
func Generate(doc *ir.Document, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}
	g := &generator{opts: opts, doc: doc, p: newPrinter()}
	if err := g.generate(); err != nil {
		return "", err
	}
	return g.p.String(), nil
}

func (g *generator) generate() error {
	g.p.Line("// This file was automatically generated and should not be edited.")
	g.p.Blank()
	g.p.Line("import SwiftGraph")
	if g.opts.Namespace == "" {
		return g.declarations()
	}
	g.p.Blank()
	g.p.BeginDeclaration("enum", g.opts.Namespace, nil)
	if err := g.declarations(); err != nil {
		return err
	}
	g.p.EndDeclaration()
	return nil
}

func (g *generator) declarations() error {
	for _, e := range g.doc.Enums {
		g.enumDeclaration(e)
	}
	for _, io := range g.doc.InputObjects {
		g.inputObjectDeclaration(io)
	}
	for _, op := range g.doc.Operations {
		if err := g.operationDeclaration(op); err != nil {
			return err
		}
	}
	for _, frag := range g.doc.Fragments {
		if err := g.fragmentDeclaration(frag); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) enumDeclaration(e *ir.EnumType) {
	g.p.Blank()
	if e.Description != "" {
		g.docComment(e.Description)
	}
	g.p.BeginDeclaration("enum", e.Name, []string{"String", "Equatable", "CaseIterable"})
	for _, v := range e.Values {
		if v.Description != "" {
			g.docComment(v.Description)
		}
		g.p.Linef("case %s = %q", enumCaseName(v.Name), v.Name)
	}
	g.p.EndDeclaration()
}

func (g *generator) inputObjectDeclaration(io *ir.InputObjectType) {
	g.p.Blank()
	if io.Description != "" {
		g.docComment(io.Description)
	}
	g.p.BeginDeclaration("struct", io.Name, []string{"GraphQLMapConvertible"})
	g.p.Line("public var graphQLMap: GraphQLMap")
	g.p.Blank()
	params := make([]string, 0, len(io.Fields))
	pairs := make([]string, 0, len(io.Fields))
	for _, f := range io.Fields {
		name := propertyName(f.Name)
		typeName := g.typeName(f.Type, "")
		param := name + ": " + typeName
		if strings.HasSuffix(typeName, "?") {
			param += " = nil"
		}
		params = append(params, param)
		pairs = append(pairs, strconv.Quote(f.Name)+": "+name)
	}
	g.p.BeginBlock("public init(" + strings.Join(params, ", ") + ")")
	g.p.Linef("graphQLMap = [%s]", strings.Join(pairs, ", "))
	g.p.EndBlock()
	for _, f := range io.Fields {
		g.inputFieldProperty(f)
	}
	g.p.EndDeclaration()
}

func (g *generator) inputFieldProperty(f *ir.InputField) {
	typeName := g.typeName(f.Type, "")
	g.p.Blank()
	if f.Description != "" {
		g.docComment(f.Description)
	}
	g.p.BeginProperty(propertyName(f.Name), typeName)
	g.p.Get(func() {
		if f.Type.NonNull {
			g.p.Linef("return graphQLMap[%q] as! %s", f.Name, typeName)
		} else {
			g.p.Linef("return graphQLMap[%q] as? %s", f.Name, nonOptional(typeName))
		}
	})
	g.p.Set(func() {
		g.p.Linef("graphQLMap.updateValue(newValue, forKey: %q)", f.Name)
	})
	g.p.EndBlock()
}

func (g *generator) operationDeclaration(op *ir.Operation) error {
	var protocol string
	switch op.Kind {
	case ir.OperationQuery:
		protocol = "GraphQLQuery"
	case ir.OperationMutation:
		protocol = "GraphQLMutation"
	default:
		return fmt.Errorf("operation %q: unsupported operation kind %q", op.Name, op.Kind)
	}
	g.p.Blank()
	g.p.BeginDeclaration("final class", operationClassName(op), []string{protocol})
	g.p.Line("public let operationDefinition: String =")
	g.p.Indent()
	g.p.MultilineString(op.Source)
	g.p.Outdent()
	g.p.Blank()
	g.p.Linef("public let operationName: String = %q", op.Name)
	if g.opts.GenerateOperationIDs {
		g.p.Blank()
		g.p.Linef("public let operationIdentifier: String? = %q", op.OperationID)
	}
	if len(op.ReferencedFragments) > 0 {
		g.p.Blank()
		g.p.BeginBlock("public var queryDocument: String")
		g.p.Line("var document: String = operationDefinition")
		for _, name := range op.ReferencedFragments {
			g.p.Linef(`document.append("\n" + %s.fragmentDefinition)`, structNameForFragmentName(name))
		}
		g.p.Line("return document")
		g.p.EndBlock()
	}
	g.operationVariables(op.Variables)
	if err := g.structDeclarationForSelectionSet("Data", op.SelectionSet, []string{"GraphQLSelectionSet"}, nil); err != nil {
		return err
	}
	g.p.EndDeclaration()
	return nil
}

func (g *generator) operationVariables(vars []*ir.Variable) {
	if len(vars) == 0 {
		g.p.Blank()
		g.p.Line("public init() {}")
		return
	}
	g.p.Blank()
	for _, v := range vars {
		g.p.Linef("public var %s: %s", propertyName(v.Name), g.typeName(v.Type, ""))
	}
	g.p.Blank()
	g.p.BeginBlock("public init(" + g.variableParameterList(vars) + ")")
	for _, v := range vars {
		g.p.Linef("self.%s = %s", propertyName(v.Name), propertyName(v.Name))
	}
	g.p.EndBlock()
	g.p.Blank()
	g.p.BeginBlock("public var variables: GraphQLMap?")
	pairs := make([]string, 0, len(vars))
	for _, v := range vars {
		pairs = append(pairs, strconv.Quote(v.Name)+": "+propertyName(v.Name))
	}
	g.p.Linef("return [%s]", strings.Join(pairs, ", "))
	g.p.EndBlock()
}

func (g *generator) variableParameterList(vars []*ir.Variable) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		param := propertyName(v.Name) + ": " + g.typeName(v.Type, "")
		if !v.Type.NonNull {
			param += " = nil"
		}
		parts = append(parts, param)
	}
	return strings.Join(parts, ", ")
}

func (g *generator) fragmentDeclaration(frag *ir.Fragment) error {
	name := structNameForFragmentName(frag.Name)
	return g.structDeclarationForSelectionSet(name, frag.SelectionSet, []string{"GraphQLFragment"}, func() {
		g.p.Line("public static let fragmentDefinition: String =")
		g.p.Indent()
		g.p.MultilineString(frag.Source)
		g.p.Outdent()
	})
}
