package bytecode

import (
	"fmt"
	"math"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/data"
)

// Evaluate compiles and runs a constant expression.
func Evaluate(node ast.Node) (data.Value, error) {
	var prog, err = Compile(node)
	if err != nil {
		return nil, err
	}
	return prog.Run()
}

// Run executes the program and returns the value it leaves on the stack.
func (p *Program) Run() (result data.Value, err error) {
	defer func() {
		if e := recover(); e != nil {
			var ok bool
			if err, ok = e.(error); !ok {
				panic(e)
			}
		}
	}()

	var stack []data.Value
	var push = func(v data.Value) { stack = append(stack, v) }
	var pop = func() data.Value {
		var v = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for _, instr := range p.Instrs {
		switch instr.Op {
		case OpConst:
			push(p.Consts[instr.Arg])
		case OpNot:
			push(data.Bool(!pop().Truthy()))
		case OpNegate:
			switch v := pop().(type) {
			case data.Int:
				push(data.Int(-v))
			case data.Float:
				push(data.Float(-v))
			default:
				panic(fmt.Errorf("cannot negate %T", v))
			}
		case OpAdd:
			var b, a = pop(), pop()
			push(add(a, b))
		case OpSub, OpMul, OpDiv, OpMod:
			var b, a = pop(), pop()
			push(arith(instr.Op, a, b))
		case OpEq:
			var b, a = pop(), pop()
			push(data.Bool(a.Equals(b)))
		case OpNotEq:
			var b, a = pop(), pop()
			push(data.Bool(!a.Equals(b)))
		case OpStrictEq:
			var b, a = pop(), pop()
			push(data.Bool(strictEquals(a, b)))
		case OpStrictNotEq:
			var b, a = pop(), pop()
			push(data.Bool(!strictEquals(a, b)))
		case OpGt, OpGte, OpLt, OpLte:
			var b, a = pop(), pop()
			push(compare(instr.Op, a, b))
		case OpAnd:
			var b, a = pop(), pop()
			if a.Truthy() {
				push(b)
			} else {
				push(a)
			}
		case OpOr:
			var b, a = pop(), pop()
			if a.Truthy() {
				push(a)
			} else {
				push(b)
			}
		case OpNullish:
			var b, a = pop(), pop()
			if isNullish(a) {
				push(b)
			} else {
				push(a)
			}
		case OpIndex:
			var index, obj = pop(), pop()
			push(indexValue(obj, index))
		case OpSelect:
			var elseV, thenV, cond = pop(), pop(), pop()
			if cond.Truthy() {
				push(thenV)
			} else {
				push(elseV)
			}
		case OpBuildList:
			var list = make(data.List, instr.Arg)
			for i := instr.Arg - 1; i >= 0; i-- {
				list[i] = pop()
			}
			push(list)
		case OpBuildMap:
			var m = make(data.Map, instr.Arg)
			var pairs = stack[len(stack)-2*instr.Arg:]
			stack = stack[:len(stack)-2*instr.Arg]
			for i := 0; i < len(pairs); i += 2 {
				m[string(pairs[i].(data.String))] = pairs[i+1]
			}
			push(m)
		default:
			panic(fmt.Errorf("unknown op %v", instr.Op))
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("corrupt program: %d values on stack", len(stack))
	}
	return stack[0], nil
}

// add implements the Javascript + operator: string concatenation when either
// operand is a string, numeric addition otherwise.
func add(a, b data.Value) data.Value {
	var _, aStr = a.(data.String)
	var _, bStr = b.(data.String)
	if aStr || bStr {
		return data.String(a.String() + b.String())
	}
	if ai, bi, ok := bothInt(a, b); ok {
		return data.Int(ai + bi)
	}
	return data.Float(toFloat(a) + toFloat(b))
}

func arith(op Op, a, b data.Value) data.Value {
	if ai, bi, ok := bothInt(a, b); ok {
		switch op {
		case OpSub:
			return data.Int(ai - bi)
		case OpMul:
			return data.Int(ai * bi)
		case OpMod:
			if bi == 0 {
				panic(fmt.Errorf("modulo by zero"))
			}
			return data.Int(ai % bi)
		}
	}
	var af, bf = toFloat(a), toFloat(b)
	switch op {
	case OpSub:
		return data.Float(af - bf)
	case OpMul:
		return data.Float(af * bf)
	case OpDiv:
		return data.Float(af / bf)
	case OpMod:
		return data.Float(math.Mod(af, bf))
	}
	panic(fmt.Errorf("unknown arithmetic op %v", op))
}

func compare(op Op, a, b data.Value) data.Value {
	if as, ok := a.(data.String); ok {
		if bs, ok := b.(data.String); ok {
			switch op {
			case OpGt:
				return data.Bool(as > bs)
			case OpGte:
				return data.Bool(as >= bs)
			case OpLt:
				return data.Bool(as < bs)
			case OpLte:
				return data.Bool(as <= bs)
			}
		}
	}
	var af, bf = toFloat(a), toFloat(b)
	switch op {
	case OpGt:
		return data.Bool(af > bf)
	case OpGte:
		return data.Bool(af >= bf)
	case OpLt:
		return data.Bool(af < bf)
	case OpLte:
		return data.Bool(af <= bf)
	}
	panic(fmt.Errorf("unknown comparison op %v", op))
}

func strictEquals(a, b data.Value) bool {
	switch a.(type) {
	case data.Int, data.Float:
		switch b.(type) {
		case data.Int, data.Float:
			return toFloat(a) == toFloat(b)
		}
		return false
	case data.String:
		bs, ok := b.(data.String)
		return ok && a.(data.String) == bs
	case data.Bool:
		bb, ok := b.(data.Bool)
		return ok && a.(data.Bool) == bb
	case data.Null:
		_, ok := b.(data.Null)
		return ok
	case data.Undefined:
		_, ok := b.(data.Undefined)
		return ok
	}
	return a.Equals(b)
}

func isNullish(v data.Value) bool {
	switch v.(type) {
	case data.Null, data.Undefined:
		return true
	}
	return false
}

func indexValue(obj, index data.Value) data.Value {
	switch obj := obj.(type) {
	case data.List:
		var i, ok = index.(data.Int)
		if !ok {
			panic(fmt.Errorf("list index must be an integer, got %s", index))
		}
		return obj.Index(int(i))
	case data.Map:
		return obj.Key(index.String())
	case data.String:
		var i, ok = index.(data.Int)
		if !ok || int(i) < 0 || int(i) >= len(obj) {
			return data.Undefined{}
		}
		return data.String(obj[i : i+1])
	}
	panic(fmt.Errorf("cannot index %T", obj))
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
	}
	panic(fmt.Errorf("%s is not a number", v))
}

func bothInt(a, b data.Value) (int64, int64, bool) {
	var ai, aok = a.(data.Int)
	var bi, bok = b.(data.Int)
	return int64(ai), int64(bi), aok && bok
}
