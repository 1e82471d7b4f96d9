// Package ast contains definitions for the in-memory representation of a
// parsed Vue template.
package ast

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// Node represents any singular piece of a template.  For example, a sequence
// of static text or an interpolation.
type Node interface {
	String() string // String returns the template source representation of this node.
	Position() Pos  // byte position of start of node in full original input string
}

// ParentNode is any Node that has descendent nodes.
type ParentNode interface {
	Node
	Children() []Node
}

// Pos represents a byte position in the original input text from which this
// template was parsed.  It is useful to construct helpful error messages.
type Pos int

// Position returns this position.  It is implemented as a method so that Nodes
// may embed a Pos and fulfill this part of the Node interface for free.
func (p Pos) Position() Pos {
	return p
}

// TemplateNode represents one template source file.
type TemplateNode struct {
	Name string // name provided for the input, typically the filename
	Text string // the full original source text
	Body []Node
}

func (n *TemplateNode) Position() Pos { return 0 }

func (n *TemplateNode) Children() []Node { return n.Body }

func (n *TemplateNode) String() string {
	var b bytes.Buffer
	for _, child := range n.Body {
		fmt.Fprint(&b, child)
	}
	return b.String()
}

// ListNode holds a sequence of nodes.
type ListNode struct {
	Pos
	Nodes []Node // The element nodes in lexical order.
}

func (n *ListNode) String() string {
	b := new(bytes.Buffer)
	for _, child := range n.Nodes {
		fmt.Fprint(b, child)
	}
	return b.String()
}

func (n *ListNode) Children() []Node { return n.Nodes }

// TextNode holds static text, after entity decoding and whitespace
// condensing.
type TextNode struct {
	Pos
	Text string
}

func (n *TextNode) String() string { return n.Text }

// InterpolationNode is a {{ expr }} text interpolation.
type InterpolationNode struct {
	Pos
	Expr Node
}

func (n *InterpolationNode) String() string { return "{{ " + n.Expr.String() + " }}" }

func (n *InterpolationNode) Children() []Node { return []Node{n.Expr} }

// CommentNode is an HTML comment.  Comments are preserved by default so the
// runtime can use them as anchors.
type CommentNode struct {
	Pos
	Text string
}

func (n *CommentNode) String() string { return "<!--" + n.Text + "-->" }

// ElementNode is an element or component tag, together with its attributes,
// directives, and children.
type ElementNode struct {
	Pos
	Tag         string
	Attrs       []*AttrNode
	Directives  []*DirectiveNode
	Children    []Node
	SelfClosing bool
	IsVoid      bool // void HTML element, e.g. <br>, <img>
}

func (n *ElementNode) String() string {
	var b bytes.Buffer
	b.WriteString("<" + n.Tag)
	for _, attr := range n.Attrs {
		b.WriteString(" " + attr.String())
	}
	for _, dir := range n.Directives {
		b.WriteString(" " + dir.String())
	}
	if n.SelfClosing {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteString(">")
	if n.IsVoid {
		return b.String()
	}
	for _, child := range n.Children {
		fmt.Fprint(&b, child)
	}
	b.WriteString("</" + n.Tag + ">")
	return b.String()
}

// ChildNodes returns attributes, directives and child nodes, so that generic
// tree walks see the whole element.  (Children is taken by the struct field.)
func (n *ElementNode) ChildNodes() []Node {
	var nodes []Node
	for _, attr := range n.Attrs {
		nodes = append(nodes, attr)
	}
	for _, dir := range n.Directives {
		nodes = append(nodes, dir)
	}
	return append(nodes, n.Children...)
}

// AttrNode is a static attribute, e.g. id="app" or disabled.
type AttrNode struct {
	Pos
	Name  string
	Value string
	Bare  bool // true if the attribute has no value at all
}

func (n *AttrNode) String() string {
	if n.Bare {
		return n.Name
	}
	return fmt.Sprintf("%s=%q", n.Name, n.Value)
}

// DirectiveNode is a v- directive, e.g. v-if="cond", :title="t", @click.stop="go".
type DirectiveNode struct {
	Pos
	Name      string   // canonical name without the v- prefix, e.g. "bind", "on", "if"
	Arg       string   // static argument, e.g. "title" in :title - empty if none/dynamic
	DynArg    Node     // dynamic argument expression, e.g. :[key] - nil if static
	Modifiers []string // e.g. ["stop", "prevent"]
	Expr      Node     // parsed expression value - nil for bare directives like v-pre
	RawExpr   string   // the expression source text as written
}

func (n *DirectiveNode) String() string {
	var b strings.Builder
	switch n.Name {
	case "bind":
		b.WriteString(":")
	case "on":
		b.WriteString("@")
	case "slot":
		b.WriteString("#")
	default:
		b.WriteString("v-" + n.Name)
	}
	switch {
	case n.DynArg != nil:
		if !strings.HasSuffix(b.String(), ":") && n.Name != "on" && n.Name != "slot" {
			b.WriteString(":")
		}
		b.WriteString("[" + n.DynArg.String() + "]")
	case n.Arg != "":
		if n.Name != "bind" && n.Name != "on" && n.Name != "slot" {
			b.WriteString(":")
		}
		b.WriteString(n.Arg)
	}
	for _, mod := range n.Modifiers {
		b.WriteString("." + mod)
	}
	if n.RawExpr != "" {
		b.WriteString(fmt.Sprintf("=%q", n.RawExpr))
	}
	return b.String()
}

func (n *DirectiveNode) Children() []Node {
	var nodes []Node
	if n.DynArg != nil {
		nodes = append(nodes, n.DynArg)
	}
	if n.Expr != nil {
		nodes = append(nodes, n.Expr)
	}
	return nodes
}

// ForExprNode is the parsed form of a v-for expression:
//	(value, key, index) in source
type ForExprNode struct {
	Pos
	Value  string // the value alias; may be a destructuring pattern
	Key    string // optional key alias
	Index  string // optional index alias
	Source Node
	Of     bool // "of" was used rather than "in"
}

func (n *ForExprNode) String() string {
	var aliases = n.Value
	if n.Key != "" {
		aliases = "(" + n.Value + ", " + n.Key
		if n.Index != "" {
			aliases += ", " + n.Index
		}
		aliases += ")"
	}
	var sep = " in "
	if n.Of {
		sep = " of "
	}
	return aliases + sep + n.Source.String()
}

func (n *ForExprNode) Children() []Node { return []Node{n.Source} }

// Aliases returns the identifiers introduced into scope by the loop.  A
// destructuring value alias contributes each bound name.
func (n *ForExprNode) Aliases() []string {
	var names []string
	for _, alias := range []string{n.Value, n.Key, n.Index} {
		if alias == "" {
			continue
		}
		names = append(names, patternNames(alias)...)
	}
	return names
}

// patternNames extracts the identifier names from an alias, which is either
// a bare identifier or a destructuring pattern like { id, title }.
func patternNames(s string) []string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "{[") {
		return []string{s}
	}
	var names []string
	var start = -1
	for i, r := range s {
		switch {
		case start == -1 && (r == '_' || r == '$' || unicode.IsLetter(r)):
			start = i
		case start != -1 && !(r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)):
			names = append(names, s[start:i])
			start = -1
		}
	}
	if start != -1 {
		names = append(names, s[start:])
	}
	return names
}

// ChildNodes returns the children of any node, handling ElementNode (whose
// Children method is shadowed by its struct field) as well as ParentNodes.
func ChildNodes(node Node) []Node {
	switch node := node.(type) {
	case *ElementNode:
		return node.ChildNodes()
	case ParentNode:
		return node.Children()
	}
	return nil
}
