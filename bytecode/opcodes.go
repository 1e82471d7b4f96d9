// Package bytecode compiles constant binding expressions to a compact
// instruction stream and evaluates them.  The transform package uses it to
// fold expressions whose value is known at compile time.
package bytecode

// Op is a bytecode operation.
type Op byte

const (
	// OpConst pushes constants[Arg].
	OpConst Op = iota

	// Unary: pop one value, push the result.
	OpNot
	OpNegate

	// Binary: pop two values, push the result.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpStrictEq
	OpStrictNotEq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAnd
	OpOr
	OpNullish
	OpIndex

	// OpSelect pops an else value, a then value, and a condition, pushing
	// one of the two values.
	OpSelect

	// OpBuildList pops Arg values and pushes a list of them.
	OpBuildList
	// OpBuildMap pops Arg key/value pairs and pushes a map.
	OpBuildMap
)

var opNames = [...]string{
	OpConst:       "const",
	OpNot:         "not",
	OpNegate:      "negate",
	OpAdd:         "add",
	OpSub:         "sub",
	OpMul:         "mul",
	OpDiv:         "div",
	OpMod:         "mod",
	OpEq:          "eq",
	OpNotEq:       "noteq",
	OpStrictEq:    "stricteq",
	OpStrictNotEq: "strictnoteq",
	OpGt:          "gt",
	OpGte:         "gte",
	OpLt:          "lt",
	OpLte:         "lte",
	OpAnd:         "and",
	OpOr:          "or",
	OpNullish:     "nullish",
	OpIndex:       "index",
	OpSelect:      "select",
	OpBuildList:   "buildlist",
	OpBuildMap:    "buildmap",
}

func (op Op) String() string { return opNames[op] }

// Instr is one instruction.  Arg is used by OpConst, OpBuildList and
// OpBuildMap.
type Instr struct {
	Op  Op
	Arg int
}
