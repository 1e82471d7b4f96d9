package ssr

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/data"
)

// eval computes the value of an expression node, restoring the error
// position afterwards.
func (s *state) eval(n ast.Node) data.Value {
	var prev = s.node
	s.at(n)
	var val = s.evalNode(n)
	s.node = prev
	return val
}

func (s *state) evalNode(n ast.Node) data.Value {
	switch n := n.(type) {
	// Values ----------
	case *ast.NullNode:
		return data.Null{}
	case *ast.UndefinedNode:
		return data.Undefined{}
	case *ast.BoolNode:
		return data.Bool(n.True)
	case *ast.IntNode:
		return data.Int(n.Value)
	case *ast.FloatNode:
		return data.Float(n.Value)
	case *ast.StringNode:
		return data.String(n.Value)
	case *ast.IdentNode:
		return s.evalIdent(n)
	case *ast.ListLiteralNode:
		var items = make(data.List, len(n.Items))
		for i, item := range n.Items {
			items[i] = s.eval(item)
		}
		return items
	case *ast.MapLiteralNode:
		var items = make(data.Map, len(n.Items))
		for _, entry := range n.Items {
			var key = entry.Key
			if entry.KeyExpr != nil {
				key = s.eval(entry.KeyExpr).String()
			}
			items[key] = s.eval(entry.Value)
		}
		return items

	// Access ----------
	case *ast.PropertyNode:
		return s.access(n.Obj, data.String(n.Key), n.NullSafe)
	case *ast.IndexNode:
		return s.access(n.Obj, s.eval(n.Index), n.NullSafe)
	case *ast.CallNode:
		return s.call(n)

	// Operators ----------
	case *ast.NotNode:
		return data.Bool(!s.eval(n.Arg).Truthy())
	case *ast.NegateNode:
		switch arg := s.eval(n.Arg).(type) {
		case data.Int:
			return data.Int(-arg)
		case data.Float:
			return data.Float(-arg)
		default:
			s.errorf("can not negate non-number: %q", arg.String())
		}
	case *ast.TernNode:
		if s.eval(n.Arg1).Truthy() {
			return s.eval(n.Arg2)
		}
		return s.eval(n.Arg3)
	case *ast.AssignNode, *ast.UpdateNode:
		s.errorf("expression %q has side effects and is not evaluated during server rendering", n.String())
	case *ast.RawExprNode:
		s.errorf("cannot evaluate compiled expression %q", n.Src)
	}

	if op, ok := n.(interface {
		OpName() string
		Args() (ast.Node, ast.Node)
	}); ok {
		var arg1, arg2 = op.Args()
		return s.binaryOp(op.OpName(), arg1, arg2)
	}
	s.errorf("unknown expression node: %T", n)
	panic("unreachable")
}

func (s *state) evalIdent(n *ast.IdentNode) data.Value {
	if v, ok := s.context.lookup(n.Name); ok {
		return v
	}
	if v, ok := s.globals[n.Name]; ok {
		return v
	}
	switch n.Name {
	case "undefined":
		return data.Undefined{}
	case "NaN":
		return data.Float(math.NaN())
	case "Infinity":
		return data.Float(math.Inf(1))
	}
	return data.Undefined{}
}

// access resolves member access on the value of objNode.
func (s *state) access(objNode ast.Node, key data.Value, nullSafe bool) data.Value {
	var obj = s.eval(objNode)
	switch obj := obj.(type) {
	case data.Undefined, data.Null:
		if nullSafe {
			return data.Undefined{}
		}
		s.errorf("%q is null or undefined", objNode.String())
	case data.List:
		if i, ok := key.(data.Int); ok {
			return obj.Index(int(i))
		}
		if key.String() == "length" {
			return data.Int(len(obj))
		}
		return data.Undefined{}
	case data.Map:
		return obj.Key(key.String())
	case data.String:
		if key.String() == "length" {
			return data.Int(len([]rune(string(obj))))
		}
		if i, ok := key.(data.Int); ok {
			var runes = []rune(string(obj))
			if 0 <= int(i) && int(i) < len(runes) {
				return data.String(string(runes[i]))
			}
			return data.Undefined{}
		}
		return data.Undefined{}
	default:
		s.errorf("cannot access %q on %q", key.String(), objNode.String())
	}
	panic("unreachable")
}

// call invokes a function from the renderer's table.  Arbitrary method calls
// are not available server-side.
func (s *state) call(node *ast.CallNode) data.Value {
	var name = node.Callee.String()
	var fn, ok = s.funcs[name]
	if !ok {
		s.errorf("function %q is not available during server rendering", name)
	}
	if fn.ValidArgLengths != nil && !checkNumArgs(fn.ValidArgLengths, len(node.Args)) {
		s.errorf("function %q called with %v args, expected one of: %v",
			name, len(node.Args), fn.ValidArgLengths)
	}
	var args = make([]data.Value, len(node.Args))
	for i, arg := range node.Args {
		args[i] = s.eval(arg)
	}
	defer func() {
		if err := recover(); err != nil {
			s.errorf("panic in %s(%v): %v\n%v", name, args, err, string(debug.Stack()))
		}
	}()
	var r = fn.Apply(args)
	if r == nil {
		return data.Null{}
	}
	return r
}

func (s *state) binaryOp(op string, n1, n2 ast.Node) data.Value {
	// short-circuiting operators yield operand values, as in Javascript
	switch op {
	case "&&":
		if v := s.eval(n1); !v.Truthy() {
			return v
		}
		return s.eval(n2)
	case "||":
		if v := s.eval(n1); v.Truthy() {
			return v
		}
		return s.eval(n2)
	case "??":
		switch v := s.eval(n1); v.(type) {
		case data.Undefined, data.Null:
			return s.eval(n2)
		default:
			return v
		}
	}

	var arg1, arg2 = s.eval(n1), s.eval(n2)
	switch op {
	case "+":
		switch {
		case isInt(arg1) && isInt(arg2):
			return data.Int(arg1.(data.Int) + arg2.(data.Int))
		case isString(arg1) || isString(arg2):
			return data.String(arg1.String() + arg2.String())
		default:
			return data.Float(toFloat(arg1) + toFloat(arg2))
		}
	case "-":
		if isInt(arg1) && isInt(arg2) {
			return data.Int(arg1.(data.Int) - arg2.(data.Int))
		}
		return data.Float(toFloat(arg1) - toFloat(arg2))
	case "*":
		if isInt(arg1) && isInt(arg2) {
			return data.Int(arg1.(data.Int) * arg2.(data.Int))
		}
		return data.Float(toFloat(arg1) * toFloat(arg2))
	case "/":
		return data.Float(toFloat(arg1) / toFloat(arg2))
	case "%":
		// x % 0 is NaN, via math.Mod
		if isInt(arg1) && isInt(arg2) && arg2.(data.Int) != 0 {
			return data.Int(arg1.(data.Int) % arg2.(data.Int))
		}
		return data.Float(math.Mod(toFloat(arg1), toFloat(arg2)))
	case "==":
		return data.Bool(arg1.Equals(arg2))
	case "!=":
		return data.Bool(!arg1.Equals(arg2))
	case "===":
		return data.Bool(strictEquals(arg1, arg2))
	case "!==":
		return data.Bool(!strictEquals(arg1, arg2))
	case "<":
		if isString(arg1) && isString(arg2) {
			return data.Bool(arg1.String() < arg2.String())
		}
		return data.Bool(toFloat(arg1) < toFloat(arg2))
	case "<=":
		if isString(arg1) && isString(arg2) {
			return data.Bool(arg1.String() <= arg2.String())
		}
		return data.Bool(toFloat(arg1) <= toFloat(arg2))
	case ">":
		if isString(arg1) && isString(arg2) {
			return data.Bool(arg1.String() > arg2.String())
		}
		return data.Bool(toFloat(arg1) > toFloat(arg2))
	case ">=":
		if isString(arg1) && isString(arg2) {
			return data.Bool(arg1.String() >= arg2.String())
		}
		return data.Bool(toFloat(arg1) >= toFloat(arg2))
	}
	s.errorf("unknown operator: %q", op)
	panic("unreachable")
}

// strictEquals implements ===: no null/undefined coercion, numbers compare
// numerically across Int and Float.
func strictEquals(a, b data.Value) bool {
	switch a.(type) {
	case data.Undefined:
		var _, ok = b.(data.Undefined)
		return ok
	case data.Null:
		var _, ok = b.(data.Null)
		return ok
	}
	switch b.(type) {
	case data.Undefined, data.Null:
		return false
	}
	return a.Equals(b)
}

func isInt(v data.Value) bool {
	_, ok := v.(data.Int)
	return ok
}

func isString(v data.Value) bool {
	_, ok := v.(data.String)
	return ok
}

func toFloat(v data.Value) float64 {
	switch v := v.(type) {
	case data.Int:
		return float64(v)
	case data.Float:
		return float64(v)
	case data.Bool:
		if v {
			return 1
		}
		return 0
	case data.Null:
		return 0
	case data.Undefined:
		panic("not a number: undefined")
	default:
		panic(fmt.Sprintf("not a number: %v (%T)", v, v))
	}
}
