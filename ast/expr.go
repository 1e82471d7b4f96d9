package ast

import (
	"strconv"
	"strings"
)

// Expression nodes model the Javascript subset allowed in template bindings.

// Values ----------

type NullNode struct {
	Pos
}

func (n *NullNode) String() string { return "null" }

type UndefinedNode struct {
	Pos
}

func (n *UndefinedNode) String() string { return "undefined" }

type BoolNode struct {
	Pos
	True bool
}

func (n *BoolNode) String() string {
	if n.True {
		return "true"
	}
	return "false"
}

type IntNode struct {
	Pos
	Value int64
}

func (n *IntNode) String() string { return strconv.FormatInt(n.Value, 10) }

type FloatNode struct {
	Pos
	Value float64
}

func (n *FloatNode) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

type StringNode struct {
	Pos
	Quoted string // e.g. 'hello\tworld'
	Value  string // e.g. hello	world
}

func (n *StringNode) String() string { return n.Quoted }

// IdentNode is a bare identifier.  Whether it refers to component state, a
// scope variable introduced by v-for/v-slot, or an allowed Javascript global
// is decided during transformation.
type IdentNode struct {
	Pos
	Name string
}

func (n *IdentNode) String() string { return n.Name }

// ListLiteralNode is a Javascript array literal.
type ListLiteralNode struct {
	Pos
	Items []Node
}

func (n *ListLiteralNode) String() string {
	var items = make([]string, len(n.Items))
	for i, item := range n.Items {
		items[i] = item.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (n *ListLiteralNode) Children() []Node { return n.Items }

// MapLiteralNode is a Javascript object literal.  Entries are kept in source
// order so that generated code is deterministic.
type MapLiteralNode struct {
	Pos
	Items []*MapEntryNode
}

func (n *MapLiteralNode) String() string {
	if len(n.Items) == 0 {
		return "{}"
	}
	var items = make([]string, len(n.Items))
	for i, item := range n.Items {
		items[i] = item.String()
	}
	return "{ " + strings.Join(items, ", ") + " }"
}

func (n *MapLiteralNode) Children() []Node {
	var nodes = make([]Node, len(n.Items))
	for i, item := range n.Items {
		nodes[i] = item
	}
	return nodes
}

// MapEntryNode is a single key: value entry of an object literal.  Either Key
// is set (static, possibly quoted) or KeyExpr is set (computed key).
type MapEntryNode struct {
	Pos
	Key     string
	KeyExpr Node
	Value   Node
}

func (n *MapEntryNode) String() string {
	if n.KeyExpr != nil {
		return "[" + n.KeyExpr.String() + "]: " + n.Value.String()
	}
	return n.Key + ": " + n.Value.String()
}

func (n *MapEntryNode) Children() []Node {
	if n.KeyExpr != nil {
		return []Node{n.KeyExpr, n.Value}
	}
	return []Node{n.Value}
}

// Access ----------

// PropertyNode is member access by static key: obj.key or obj?.key
type PropertyNode struct {
	Pos
	Obj      Node
	Key      string
	NullSafe bool
}

func (n *PropertyNode) String() string {
	if n.NullSafe {
		return primaryString(n.Obj) + "?." + n.Key
	}
	return primaryString(n.Obj) + "." + n.Key
}

func (n *PropertyNode) Children() []Node { return []Node{n.Obj} }

// IndexNode is member access by computed key: obj[expr] or obj?.[expr]
type IndexNode struct {
	Pos
	Obj      Node
	Index    Node
	NullSafe bool
}

func (n *IndexNode) String() string {
	if n.NullSafe {
		return primaryString(n.Obj) + "?.[" + n.Index.String() + "]"
	}
	return primaryString(n.Obj) + "[" + n.Index.String() + "]"
}

func (n *IndexNode) Children() []Node { return []Node{n.Obj, n.Index} }

// CallNode is a function or method invocation.
type CallNode struct {
	Pos
	Callee Node
	Args   []Node
}

func (n *CallNode) String() string {
	var args = make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return primaryString(n.Callee) + "(" + strings.Join(args, ", ") + ")"
}

func (n *CallNode) Children() []Node { return append([]Node{n.Callee}, n.Args...) }

// Operators ----------

type NotNode struct {
	Pos
	Arg Node
}

func (n *NotNode) String() string { return "!" + unaryString(n.Arg) }

func (n *NotNode) Children() []Node { return []Node{n.Arg} }

type NegateNode struct {
	Pos
	Arg Node
}

func (n *NegateNode) String() string { return "-" + unaryString(n.Arg) }

func (n *NegateNode) Children() []Node { return []Node{n.Arg} }

type BinaryOpNode struct {
	Name string
	Pos
	Arg1, Arg2 Node
}

// opPrec assigns each binary operator its precedence, used to re-render
// expressions with the minimal parentheses that preserve their structure.
var opPrec = map[string]int{
	"??": 1, "||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "===": 3, "!==": 3,
	">": 4, ">=": 4, "<": 4, "<=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

// binaryExpr is satisfied by BinaryOpNode and all its wrapper types.
type binaryExpr interface {
	binaryOp() (name string, prec int)
}

func (n *BinaryOpNode) binaryOp() (string, int) { return n.Name, opPrec[n.Name] }

// OpName returns the operator symbol, e.g. "+".
func (n *BinaryOpNode) OpName() string { return n.Name }

// Args returns the operands.  Together with SetArgs it lets rewriting passes
// handle every operator wrapper type uniformly.
func (n *BinaryOpNode) Args() (Node, Node) { return n.Arg1, n.Arg2 }

// SetArgs replaces the operands.
func (n *BinaryOpNode) SetArgs(arg1, arg2 Node) { n.Arg1, n.Arg2 = arg1, arg2 }

func (n *BinaryOpNode) String() string {
	var prec = opPrec[n.Name]
	return n.operand(n.Arg1, prec, false) + " " + n.Name + " " + n.operand(n.Arg2, prec, true)
}

// operand renders one side of a binary operator.  The operators here are all
// left-associative, so an equal-precedence operand needs parentheses only on
// the right.
func (n *BinaryOpNode) operand(arg Node, prec int, right bool) string {
	var parens = false
	switch a := arg.(type) {
	case binaryExpr:
		_, q := a.binaryOp()
		parens = q < prec || (right && q == prec)
	case *TernNode, *AssignNode:
		parens = true
	}
	if parens {
		return "(" + arg.String() + ")"
	}
	return arg.String()
}

func (n *BinaryOpNode) Children() []Node { return []Node{n.Arg1, n.Arg2} }

type (
	MulNode         struct{ BinaryOpNode }
	DivNode         struct{ BinaryOpNode }
	ModNode         struct{ BinaryOpNode }
	AddNode         struct{ BinaryOpNode }
	SubNode         struct{ BinaryOpNode }
	EqNode          struct{ BinaryOpNode }
	NotEqNode       struct{ BinaryOpNode }
	StrictEqNode    struct{ BinaryOpNode }
	StrictNotEqNode struct{ BinaryOpNode }
	GtNode          struct{ BinaryOpNode }
	GteNode         struct{ BinaryOpNode }
	LtNode          struct{ BinaryOpNode }
	LteNode         struct{ BinaryOpNode }
	AndNode         struct{ BinaryOpNode }
	OrNode          struct{ BinaryOpNode }
	NullishNode     struct{ BinaryOpNode }
)

type TernNode struct {
	Pos
	Arg1, Arg2, Arg3 Node
}

func (n *TernNode) String() string {
	var cond = n.Arg1.String()
	switch n.Arg1.(type) {
	case *TernNode, *AssignNode:
		cond = "(" + cond + ")"
	}
	return cond + " ? " + n.Arg2.String() + " : " + n.Arg3.String()
}

func (n *TernNode) Children() []Node { return []Node{n.Arg1, n.Arg2, n.Arg3} }

// AssignNode appears in inline handlers, e.g. @click="count = count + 1".
type AssignNode struct {
	Pos
	Op            string // "=", "+=", "-="
	Target, Value Node
}

func (n *AssignNode) String() string {
	return n.Target.String() + " " + n.Op + " " + n.Value.String()
}

func (n *AssignNode) Children() []Node { return []Node{n.Target, n.Value} }

// UpdateNode appears in inline handlers, e.g. @click="count++".
type UpdateNode struct {
	Pos
	Op     string // "++" or "--"
	Prefix bool
	Arg    Node
}

func (n *UpdateNode) String() string {
	if n.Prefix {
		return n.Op + primaryString(n.Arg)
	}
	return primaryString(n.Arg) + n.Op
}

func (n *UpdateNode) Children() []Node { return []Node{n.Arg} }

// RawExprNode holds a fragment of already-rendered Javascript source.  It is
// produced by transformation passes (e.g. identifier prefixing) rather than
// the parser.
type RawExprNode struct {
	Pos
	Src string
}

func (n *RawExprNode) String() string { return n.Src }

// QuoteJS returns s as a single-quoted Javascript string literal.
func QuoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\', '\'':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// BindingNames returns the identifiers bound when the expression is used as
// a binding pattern, e.g. v-slot="{ item, index }" binds item and index.
func BindingNames(n Node) []string {
	switch n := n.(type) {
	case *IdentNode:
		return []string{n.Name}
	case *MapLiteralNode:
		var names []string
		for _, entry := range n.Items {
			names = append(names, BindingNames(entry.Value)...)
		}
		return names
	case *ListLiteralNode:
		var names []string
		for _, item := range n.Items {
			names = append(names, BindingNames(item)...)
		}
		return names
	}
	return nil
}

// primaryString renders an operand of member access, indexing, a call, or an
// update operator, parenthesizing anything that binds less tightly.
func primaryString(n Node) string {
	switch n.(type) {
	case *NotNode, *NegateNode, *TernNode, *AssignNode, *UpdateNode:
		return "(" + n.String() + ")"
	}
	if _, ok := n.(binaryExpr); ok {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// unaryString renders the operand of ! or unary minus.
func unaryString(n Node) string {
	switch n.(type) {
	case *TernNode, *AssignNode:
		return "(" + n.String() + ")"
	}
	if _, ok := n.(binaryExpr); ok {
		return "(" + n.String() + ")"
	}
	return n.String()
}
