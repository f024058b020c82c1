package swift

import (
	"fmt"
	"strings"
)

// printer is a scoped emitter over a single growing buffer. It tracks the
// current indentation depth, a deferred blank-line flag so spacing between
// declarations is idempotent regardless of emission order, and the stack of
// enclosing declaration names used to qualify nested type references.
type printer struct {
	buf          strings.Builder
	indent       int
	pendingBlank bool
	scope        []string
}

func newPrinter() *printer {
	return &printer{}
}

const indentUnit = "  "

// Line emits one logical line at the current indentation. A deferred blank
// line, if any, is materialized first; consecutive blanks collapse.
func (p *printer) Line(s string) {
	if p.pendingBlank {
		if p.buf.Len() > 0 {
			p.buf.WriteByte('\n')
		}
		p.pendingBlank = false
	}
	if s != "" {
		p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

func (p *printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Blank requests a blank line before whatever is emitted next.
func (p *printer) Blank() {
	p.pendingBlank = true
}

// Indent and Outdent adjust nesting for bracketed constructs that are not
// brace blocks, such as array literals.
func (p *printer) Indent() {
	p.indent++
}

func (p *printer) Outdent() {
	if p.indent == 0 {
		panic("swift: Outdent without matching Indent")
	}
	p.indent--
}

// BeginDeclaration opens a named declaration block and pushes its name onto
// the scope stack.
func (p *printer) BeginDeclaration(keyword, name string, adopts []string) {
	sig := "public " + keyword + " " + name
	if len(adopts) > 0 {
		sig += ": " + strings.Join(adopts, ", ")
	}
	p.Line(sig + " {")
	p.indent++
	p.scope = append(p.scope, name)
}

func (p *printer) EndDeclaration() {
	if len(p.scope) == 0 {
		panic("swift: EndDeclaration without matching BeginDeclaration")
	}
	p.scope = p.scope[:len(p.scope)-1]
	p.indent--
	p.Line("}")
}

// BeginBlock opens an anonymous brace block (function body, accessor body).
func (p *printer) BeginBlock(header string) {
	p.Line(header + " {")
	p.indent++
}

func (p *printer) EndBlock() {
	if p.indent == 0 {
		panic("swift: EndBlock without matching BeginBlock")
	}
	p.indent--
	p.Line("}")
}

// BeginProperty opens a computed property with explicit accessor blocks.
func (p *printer) BeginProperty(name, typeName string) {
	p.BeginBlock("public var " + name + ": " + typeName)
}

func (p *printer) Get(body func()) {
	p.BeginBlock("get")
	body()
	p.EndBlock()
}

func (p *printer) Set(body func()) {
	p.BeginBlock("set")
	body()
	p.EndBlock()
}

// ScopeName is the name of the innermost open declaration.
func (p *printer) ScopeName() string {
	if len(p.scope) == 0 {
		panic("swift: ScopeName outside any declaration")
	}
	return p.scope[len(p.scope)-1]
}

// QualifiedName joins the scope path with the given name, producing a
// reference usable from sibling contexts.
func (p *printer) QualifiedName(name string) string {
	return strings.Join(append(append([]string{}, p.scope...), name), ".")
}

// MultilineString emits a Swift multi-line string literal. Backslashes and
// embedded triple quotes are escaped; the closing delimiter's indentation
// strips the leading whitespace at compile time.
func (p *printer) MultilineString(s string) {
	p.Line(`"""`)
	for _, line := range strings.Split(s, "\n") {
		escaped := strings.ReplaceAll(line, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"""`, `\"\"\"`)
		p.Line(escaped)
	}
	p.Line(`"""`)
}

func (p *printer) String() string {
	return p.buf.String()
}
