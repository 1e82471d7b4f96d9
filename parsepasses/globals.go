package parsepasses

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/template"
)

// SetGlobals replaces identifiers matching the given compile-time globals
// with their values, in every expression of every template in the registry.
// Identifiers shadowed by v-for aliases or v-slot bindings are left alone.
func SetGlobals(reg *template.Registry, globals data.Map) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(runtime.Error); ok {
				panic(e)
			}
			err = e.(error)
		}
	}()
	for _, tmpl := range reg.Templates {
		var s = &substituter{globals: globals}
		s.walkList(tmpl.Doc.Body)
	}
	return nil
}

type substituter struct {
	globals data.Map
	scope   []map[string]bool
}

func (s *substituter) walkList(nodes []ast.Node) {
	for _, node := range nodes {
		switch node := node.(type) {
		case *ast.InterpolationNode:
			node.Expr = s.rewrite(node.Expr)
		case *ast.ElementNode:
			s.walkElement(node)
		}
	}
}

func (s *substituter) walkElement(el *ast.ElementNode) {
	var scope = make(map[string]bool)
	for _, dir := range el.Directives {
		if fe, ok := dir.Expr.(*ast.ForExprNode); ok && dir.Name == "for" {
			for _, name := range fe.Aliases() {
				scope[name] = true
			}
		}
		if dir.Name == "slot" && dir.Expr != nil {
			for _, name := range ast.BindingNames(dir.Expr) {
				scope[name] = true
			}
		}
	}
	s.scope = append(s.scope, scope)
	defer func() { s.scope = s.scope[:len(s.scope)-1] }()

	for _, dir := range el.Directives {
		if dir.DynArg != nil {
			dir.DynArg = s.rewrite(dir.DynArg)
		}
		if dir.Expr != nil {
			dir.Expr = s.rewrite(dir.Expr)
		}
	}
	s.walkList(el.Children)
}

// binaryNode matches ast.BinaryOpNode and all its operator wrapper types.
type binaryNode interface {
	ast.Node
	Args() (ast.Node, ast.Node)
	SetArgs(arg1, arg2 ast.Node)
}

// rewrite returns the expression with globals substituted.  Subtrees are
// updated in place; only matched identifiers produce new nodes.
func (s *substituter) rewrite(node ast.Node) ast.Node {
	switch node := node.(type) {
	case *ast.IdentNode:
		if s.shadowed(node.Name) {
			return node
		}
		if value, ok := s.globals[node.Name]; ok {
			return valueNode(value, node.Position())
		}
	case *ast.PropertyNode:
		node.Obj = s.rewrite(node.Obj)
	case *ast.IndexNode:
		node.Obj = s.rewrite(node.Obj)
		node.Index = s.rewrite(node.Index)
	case *ast.CallNode:
		node.Callee = s.rewrite(node.Callee)
		for i := range node.Args {
			node.Args[i] = s.rewrite(node.Args[i])
		}
	case *ast.NotNode:
		node.Arg = s.rewrite(node.Arg)
	case *ast.NegateNode:
		node.Arg = s.rewrite(node.Arg)
	case *ast.TernNode:
		node.Arg1 = s.rewrite(node.Arg1)
		node.Arg2 = s.rewrite(node.Arg2)
		node.Arg3 = s.rewrite(node.Arg3)
	case *ast.AssignNode:
		// a bare identifier target names component state, never a global
		if _, ok := node.Target.(*ast.IdentNode); !ok {
			node.Target = s.rewrite(node.Target)
		}
		node.Value = s.rewrite(node.Value)
	case *ast.ListLiteralNode:
		for i := range node.Items {
			node.Items[i] = s.rewrite(node.Items[i])
		}
	case *ast.MapLiteralNode:
		for _, entry := range node.Items {
			if entry.KeyExpr != nil {
				entry.KeyExpr = s.rewrite(entry.KeyExpr)
			}
			entry.Value = s.rewrite(entry.Value)
		}
	case *ast.ForExprNode:
		node.Source = s.rewrite(node.Source)
	case binaryNode:
		var arg1, arg2 = node.Args()
		node.SetArgs(s.rewrite(arg1), s.rewrite(arg2))
	}
	return node
}

func (s *substituter) shadowed(name string) bool {
	for _, scope := range s.scope {
		if scope[name] {
			return true
		}
	}
	return false
}

// valueNode converts a data value to the expression node for its literal.
func valueNode(value data.Value, pos ast.Pos) ast.Node {
	switch value := value.(type) {
	case data.Undefined:
		return &ast.UndefinedNode{Pos: pos}
	case data.Null:
		return &ast.NullNode{Pos: pos}
	case data.Bool:
		return &ast.BoolNode{Pos: pos, True: bool(value)}
	case data.Int:
		return &ast.IntNode{Pos: pos, Value: int64(value)}
	case data.Float:
		return &ast.FloatNode{Pos: pos, Value: float64(value)}
	case data.String:
		return &ast.StringNode{Pos: pos, Quoted: ast.QuoteJS(string(value)), Value: string(value)}
	case data.List:
		var items = make([]ast.Node, len(value))
		for i, item := range value {
			items[i] = valueNode(item, pos)
		}
		return &ast.ListLiteralNode{Pos: pos, Items: items}
	case data.Map:
		var keys = make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var entries = make([]*ast.MapEntryNode, len(keys))
		for i, key := range keys {
			entries[i] = &ast.MapEntryNode{Pos: pos, Key: ast.QuoteJS(key), KeyExpr: nil, Value: valueNode(value[key], pos)}
		}
		return &ast.MapLiteralNode{Pos: pos, Items: entries}
	}
	panic(fmt.Errorf("global of type %T has no literal representation", value))
}
