package bytecode

import (
	"errors"
	"fmt"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/data"
)

// ErrNotConst reports that an expression refers to runtime state and cannot
// be compiled.
var ErrNotConst = errors.New("expression is not compile-time constant")

// Program is a compiled constant expression.
type Program struct {
	Instrs []Instr
	Consts []data.Value
}

// Compile compiles a constant expression.  It returns ErrNotConst if the
// expression depends on anything beyond literals.
func Compile(node ast.Node) (prog *Program, err error) {
	defer func() {
		if e := recover(); e != nil {
			prog = nil
			var ok bool
			if err, ok = e.(error); !ok {
				panic(e)
			}
		}
	}()
	var c compiler
	c.compile(node)
	return &Program{c.instrs, c.consts}, nil
}

type compiler struct {
	instrs []Instr
	consts []data.Value
}

func (c *compiler) emit(op Op, arg int) {
	c.instrs = append(c.instrs, Instr{op, arg})
}

func (c *compiler) emitConst(value data.Value) {
	c.consts = append(c.consts, value)
	c.emit(OpConst, len(c.consts)-1)
}

var binaryOps = map[string]Op{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpMod,
	"==": OpEq, "!=": OpNotEq, "===": OpStrictEq, "!==": OpStrictNotEq,
	">": OpGt, ">=": OpGte, "<": OpLt, "<=": OpLte,
	"&&": OpAnd, "||": OpOr, "??": OpNullish,
}

func (c *compiler) compile(node ast.Node) {
	switch node := node.(type) {
	case *ast.NullNode:
		c.emitConst(data.Null{})
	case *ast.UndefinedNode:
		c.emitConst(data.Undefined{})
	case *ast.BoolNode:
		c.emitConst(data.Bool(node.True))
	case *ast.IntNode:
		c.emitConst(data.Int(node.Value))
	case *ast.FloatNode:
		c.emitConst(data.Float(node.Value))
	case *ast.StringNode:
		c.emitConst(data.String(node.Value))
	case *ast.NotNode:
		c.compile(node.Arg)
		c.emit(OpNot, 0)
	case *ast.NegateNode:
		c.compile(node.Arg)
		c.emit(OpNegate, 0)
	case *ast.TernNode:
		c.compile(node.Arg1)
		c.compile(node.Arg2)
		c.compile(node.Arg3)
		c.emit(OpSelect, 0)
	case *ast.IndexNode:
		c.compile(node.Obj)
		c.compile(node.Index)
		c.emit(OpIndex, 0)
	case *ast.ListLiteralNode:
		for _, item := range node.Items {
			c.compile(item)
		}
		c.emit(OpBuildList, len(node.Items))
	case *ast.MapLiteralNode:
		for _, entry := range node.Items {
			if entry.KeyExpr != nil {
				panic(fmt.Errorf("computed key: %w", ErrNotConst))
			}
			c.emitConst(data.String(unquoteKey(entry.Key)))
			c.compile(entry.Value)
		}
		c.emit(OpBuildMap, len(node.Items))
	case interface {
		OpName() string
		Args() (ast.Node, ast.Node)
	}:
		var op, ok = binaryOps[node.OpName()]
		if !ok {
			panic(fmt.Errorf("operator %q: %w", node.OpName(), ErrNotConst))
		}
		var arg1, arg2 = node.Args()
		c.compile(arg1)
		c.compile(arg2)
		c.emit(op, 0)
	default:
		panic(fmt.Errorf("%T: %w", node, ErrNotConst))
	}
}

// unquoteKey strips the quotes from an object key stored as written.
func unquoteKey(key string) string {
	if len(key) >= 2 && (key[0] == '\'' || key[0] == '"') {
		return key[1 : len(key)-1]
	}
	return key
}
