package swift

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterDeclarationsAndBlocks(t *testing.T) {
	p := newPrinter()
	p.BeginDeclaration("struct", "Hero", []string{"GraphQLSelectionSet"})
	p.Line("public private(set) var resultMap: ResultMap")
	p.Blank()
	p.BeginBlock("public init(unsafeResultMap: ResultMap)")
	p.Line("self.resultMap = unsafeResultMap")
	p.EndBlock()
	p.EndDeclaration()

	want := `public struct Hero: GraphQLSelectionSet {
  public private(set) var resultMap: ResultMap

  public init(unsafeResultMap: ResultMap) {
    self.resultMap = unsafeResultMap
  }
}
`
	if diff := cmp.Diff(want, p.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinterCollapsesBlankLines(t *testing.T) {
	p := newPrinter()
	p.Blank() // leading blank is dropped
	p.Line("a")
	p.Blank()
	p.Blank()
	p.Line("b")
	assert.Equal(t, "a\n\nb\n", p.String())
}

func TestPrinterPropertyAccessors(t *testing.T) {
	p := newPrinter()
	p.BeginProperty("name", "String")
	p.Get(func() {
		p.Line(`return resultMap["name"]! as! String`)
	})
	p.Set(func() {
		p.Line(`resultMap.updateValue(newValue, forKey: "name")`)
	})
	p.EndBlock()

	want := `public var name: String {
  get {
    return resultMap["name"]! as! String
  }
  set {
    resultMap.updateValue(newValue, forKey: "name")
  }
}
`
	assert.Equal(t, want, p.String())
}

func TestPrinterScopeNames(t *testing.T) {
	p := newPrinter()
	p.BeginDeclaration("final class", "HeroQuery", []string{"GraphQLQuery"})
	p.BeginDeclaration("struct", "Data", []string{"GraphQLSelectionSet"})
	assert.Equal(t, "Data", p.ScopeName())
	assert.Equal(t, "HeroQuery.Data.Hero", p.QualifiedName("Hero"))
	p.EndDeclaration()
	assert.Equal(t, "HeroQuery", p.ScopeName())
	p.EndDeclaration()

	require.Panics(t, func() { p.ScopeName() })
	require.Panics(t, func() { p.EndDeclaration() })
}

func TestPrinterMultilineString(t *testing.T) {
	p := newPrinter()
	p.Indent()
	p.MultilineString("query Hero {\n  hero {\n    name\n  }\n}")
	p.Outdent()

	want := "  \"\"\"\n" +
		"  query Hero {\n" +
		"    hero {\n" +
		"      name\n" +
		"    }\n" +
		"  }\n" +
		"  \"\"\"\n"
	assert.Equal(t, want, p.String())
}
