package transform

import (
	"sort"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/bytecode"
	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/ir"
)

// jsGlobals are identifiers that always refer to Javascript globals and are
// never rewritten to _ctx lookups.
var jsGlobals = map[string]bool{}

func init() {
	const names = "Infinity,undefined,NaN,isFinite,isNaN,parseFloat,parseInt," +
		"decodeURI,decodeURIComponent,encodeURI,encodeURIComponent," +
		"Math,Number,Date,Array,Object,Boolean,String,RegExp,Map,Set,JSON," +
		"Intl,BigInt,console"
	for _, name := range strings.Split(names, ",") {
		jsGlobals[name] = true
	}
}

// expr renders a binding expression as Javascript.  Constant expressions
// fold to their literal value; otherwise free identifiers are rewritten to
// _ctx lookups when prefixing is enabled.
func (t *transformer) expr(node ast.Node) ir.Expr {
	if value, err := bytecode.Evaluate(node); err == nil {
		return ir.StaticExpr(jsLiteral(value))
	}
	return t.dynExpr(node)
}

// dynExpr renders an expression without attempting constant folding.
func (t *transformer) dynExpr(node ast.Node) ir.Expr {
	if !t.opts.PrefixIdentifiers {
		return ir.DynExpr(node.String())
	}
	return ir.DynExpr(t.prefixed(node).String())
}

// free reports whether an identifier refers to component state, i.e. it is
// not bound by an enclosing v-for or v-slot and is not a known global.
func (t *transformer) free(name string) bool {
	return !t.scope.has(name) && !jsGlobals[name] && !t.globals[name] && name != "$event"
}

// prefixed returns the expression with every free identifier rewritten to a
// _ctx lookup.  The input is shared with other consumers of the AST, so
// rewritten nodes are rebuilt rather than modified.
func (t *transformer) prefixed(node ast.Node) ast.Node {
	switch n := node.(type) {
	case *ast.IdentNode:
		if t.free(n.Name) {
			return &ast.RawExprNode{Pos: n.Pos, Src: "_ctx." + n.Name}
		}
		return n
	case *ast.PropertyNode:
		return &ast.PropertyNode{Pos: n.Pos, Obj: t.prefixed(n.Obj), Key: n.Key, NullSafe: n.NullSafe}
	case *ast.IndexNode:
		return &ast.IndexNode{Pos: n.Pos, Obj: t.prefixed(n.Obj), Index: t.prefixed(n.Index), NullSafe: n.NullSafe}
	case *ast.CallNode:
		var args = make([]ast.Node, len(n.Args))
		for i, arg := range n.Args {
			args[i] = t.prefixed(arg)
		}
		return &ast.CallNode{Pos: n.Pos, Callee: t.prefixed(n.Callee), Args: args}
	case *ast.NotNode:
		return &ast.NotNode{Pos: n.Pos, Arg: t.prefixed(n.Arg)}
	case *ast.NegateNode:
		return &ast.NegateNode{Pos: n.Pos, Arg: t.prefixed(n.Arg)}
	case *ast.TernNode:
		return &ast.TernNode{Pos: n.Pos, Arg1: t.prefixed(n.Arg1), Arg2: t.prefixed(n.Arg2), Arg3: t.prefixed(n.Arg3)}
	case *ast.AssignNode:
		return &ast.AssignNode{Pos: n.Pos, Op: n.Op, Target: t.prefixed(n.Target), Value: t.prefixed(n.Value)}
	case *ast.UpdateNode:
		return &ast.UpdateNode{Pos: n.Pos, Op: n.Op, Prefix: n.Prefix, Arg: t.prefixed(n.Arg)}
	case *ast.ListLiteralNode:
		var items = make([]ast.Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = t.prefixed(item)
		}
		return &ast.ListLiteralNode{Pos: n.Pos, Items: items}
	case *ast.MapLiteralNode:
		var entries = make([]*ast.MapEntryNode, len(n.Items))
		for i, entry := range n.Items {
			var keyExpr ast.Node
			if entry.KeyExpr != nil {
				keyExpr = t.prefixed(entry.KeyExpr)
			}
			entries[i] = &ast.MapEntryNode{Pos: entry.Pos, Key: entry.Key, KeyExpr: keyExpr, Value: t.prefixed(entry.Value)}
		}
		return &ast.MapLiteralNode{Pos: n.Pos, Items: entries}
	case interface {
		OpName() string
		Args() (ast.Node, ast.Node)
		Position() ast.Pos
	}:
		// all the binary operator wrappers render identically through the
		// generic node, so the wrapper type need not be preserved
		var arg1, arg2 = n.Args()
		return &ast.BinaryOpNode{Name: n.OpName(), Pos: n.Position(), Arg1: t.prefixed(arg1), Arg2: t.prefixed(arg2)}
	}
	return node
}

// jsLiteral renders a data value as a Javascript literal.
func jsLiteral(value data.Value) string {
	switch value := value.(type) {
	case data.Undefined:
		return "undefined"
	case data.Null:
		return "null"
	case data.Bool, data.Int, data.Float:
		return value.String()
	case data.String:
		return ast.QuoteJS(string(value))
	case data.List:
		var items = make([]string, len(value))
		for i, item := range value {
			items[i] = jsLiteral(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case data.Map:
		if len(value) == 0 {
			return "{}"
		}
		var keys = make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var entries = make([]string, len(keys))
		for i, key := range keys {
			entries[i] = keySrc(key) + ": " + jsLiteral(value[key])
		}
		return "{ " + strings.Join(entries, ", ") + " }"
	}
	return "undefined"
}

// keySrc renders an object key, quoting it unless it is a valid identifier.
func keySrc(key string) string {
	if isJSIdent(key) {
		return key
	}
	return ast.QuoteJS(key)
}

func isJSIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		var ok = r == '_' || r == '$' ||
			'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
			i > 0 && '0' <= r && r <= '9'
		if !ok {
			return false
		}
	}
	return true
}

// camelize converts kebab-case to camelCase.
func camelize(s string) string {
	var b strings.Builder
	var upper = false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// capitalize upper-cases the first rune.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
