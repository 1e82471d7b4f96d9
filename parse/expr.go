package parse

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/errortypes"
)

// exprParser parses one binding expression using its own lexer.  doc and base
// relate positions within the expression back to the enclosing template
// source for error messages.
type exprParser struct {
	name      string
	doc       string
	base      ast.Pos
	lex       *lexer
	token     [2]item
	peekCount int
}

func parseExpr(name, doc, text string, base ast.Pos) (node ast.Node, err error) {
	var p = &exprParser{name: name, doc: doc, base: base, lex: lexExpr(name, text)}
	defer p.recover(&err)
	node = p.parseAssign()
	p.expect(itemEOF, "expression")
	return node, nil
}

// binaryPrec assigns each binary operator its precedence level.
var binaryPrec = map[itemType]int{
	itemNullish: 1,
	itemOr:      1,
	itemAnd:     2,

	itemEq:          3,
	itemNotEq:       3,
	itemStrictEq:    3,
	itemStrictNotEq: 3,

	itemGt:  4,
	itemGte: 4,
	itemLt:  4,
	itemLte: 4,

	itemAdd: 5,
	itemSub: 5,

	itemMul: 6,
	itemDiv: 6,
	itemMod: 6,
}

// parseAssign parses an assignment, the lowest-precedence expression form.
// Assignments appear in inline handlers, e.g. @click="count = count + 1".
func (p *exprParser) parseAssign() ast.Node {
	var lhs = p.parseTernary()
	switch tok := p.next(); tok.typ {
	case itemAssign, itemAddAssign, itemSubAssign:
		if !isRefExpr(lhs) {
			p.errorf(tok.pos, "invalid assignment target: %s", lhs)
		}
		return &ast.AssignNode{Pos: lhs.Position(), Op: tok.typ.String(), Target: lhs, Value: p.parseAssign()}
	default:
		p.backup()
		return lhs
	}
}

func (p *exprParser) parseTernary() ast.Node {
	var cond = p.parseBinary(1)
	if p.peek().typ != itemTernIf {
		return cond
	}
	p.next()
	var a = p.parseAssign()
	p.expect(itemColon, "ternary expression")
	var b = p.parseAssign()
	return &ast.TernNode{Pos: cond.Position(), Arg1: cond, Arg2: a, Arg3: b}
}

// parseBinary parses binary operator expressions by precedence climbing.
// All the supported binary operators are left-associative.
func (p *exprParser) parseBinary(prec int) ast.Node {
	var n = p.parseUnary()
	for {
		var tok = p.next()
		var q, ok = binaryPrec[tok.typ]
		if !ok || q < prec {
			p.backup()
			return n
		}
		n = newBinaryNode(tok, n, p.parseBinary(q+1))
	}
}

func (p *exprParser) parseUnary() ast.Node {
	switch tok := p.next(); tok.typ {
	case itemNot:
		return &ast.NotNode{Pos: p.at(tok), Arg: p.parseUnary()}
	case itemNegate:
		return &ast.NegateNode{Pos: p.at(tok), Arg: p.parseUnary()}
	case itemIncrement, itemDecrement:
		var arg = p.parseUnary()
		if !isRefExpr(arg) {
			p.errorf(tok.pos, "invalid %v target: %s", tok.typ, arg)
		}
		return &ast.UpdateNode{Pos: p.at(tok), Op: tok.typ.String(), Prefix: true, Arg: arg}
	default:
		p.backup()
		return p.parsePostfix()
	}
}

// parsePostfix parses member access, indexing, calls, and postfix update
// operators, which all bind tighter than any unary or binary operator.
func (p *exprParser) parsePostfix() ast.Node {
	var n = p.parsePrimary()
	for {
		switch tok := p.next(); tok.typ {
		case itemDot:
			n = &ast.PropertyNode{Pos: n.Position(), Obj: n, Key: p.parsePropertyKey(), NullSafe: false}
		case itemQuestionDot:
			if p.peek().typ == itemLeftBracket {
				p.next()
				var index = p.parseAssign()
				p.expect(itemRightBracket, "index expression")
				n = &ast.IndexNode{Pos: n.Position(), Obj: n, Index: index, NullSafe: true}
			} else {
				n = &ast.PropertyNode{Pos: n.Position(), Obj: n, Key: p.parsePropertyKey(), NullSafe: true}
			}
		case itemLeftBracket:
			var index = p.parseAssign()
			p.expect(itemRightBracket, "index expression")
			n = &ast.IndexNode{Pos: n.Position(), Obj: n, Index: index, NullSafe: false}
		case itemLeftParen:
			n = &ast.CallNode{Pos: n.Position(), Callee: n, Args: p.parseCallArgs()}
		case itemIncrement, itemDecrement:
			if !isRefExpr(n) {
				p.errorf(tok.pos, "invalid %v target: %s", tok.typ, n)
			}
			n = &ast.UpdateNode{Pos: n.Position(), Op: tok.typ.String(), Prefix: false, Arg: n}
		default:
			p.backup()
			return n
		}
	}
}

// parsePropertyKey consumes a property name, which may coincide with a
// keyword, e.g. item.in
func (p *exprParser) parsePropertyKey() string {
	switch tok := p.next(); tok.typ {
	case itemIdent, itemNull, itemUndefined, itemBool, itemIn, itemOf:
		return tok.val
	default:
		p.unexpected(tok, "property access")
	}
	return ""
}

func (p *exprParser) parseCallArgs() []ast.Node {
	if p.peek().typ == itemRightParen {
		p.next()
		return nil
	}
	var args []ast.Node
	for {
		args = append(args, p.parseAssign())
		switch tok := p.next(); tok.typ {
		case itemComma:
		case itemRightParen:
			return args
		default:
			p.unexpected(tok, "call arguments")
		}
	}
}

func (p *exprParser) parsePrimary() ast.Node {
	switch tok := p.next(); tok.typ {
	case itemNull:
		return &ast.NullNode{Pos: p.at(tok)}
	case itemUndefined:
		return &ast.UndefinedNode{Pos: p.at(tok)}
	case itemBool:
		return &ast.BoolNode{Pos: p.at(tok), True: tok.val == "true"}
	case itemInteger:
		var value, err = strconv.ParseInt(tok.val, 0, 64)
		if err != nil {
			p.errorf(tok.pos, "invalid integer: %s", tok.val)
		}
		return &ast.IntNode{Pos: p.at(tok), Value: value}
	case itemFloat:
		var value, err = strconv.ParseFloat(tok.val, 64)
		if err != nil {
			p.errorf(tok.pos, "invalid number: %s", tok.val)
		}
		return &ast.FloatNode{Pos: p.at(tok), Value: value}
	case itemString:
		var value, err = unquoteString(tok.val)
		if err != nil {
			p.errorf(tok.pos, "%v", err)
		}
		return &ast.StringNode{Pos: p.at(tok), Quoted: tok.val, Value: value}
	case itemIdent:
		return &ast.IdentNode{Pos: p.at(tok), Name: tok.val}
	case itemLeftParen:
		var n = p.parseAssign()
		p.expect(itemRightParen, "parenthesized expression")
		return n
	case itemLeftBracket:
		return p.parseListLiteral(tok)
	case itemLeftBrace:
		return p.parseMapLiteral(tok)
	default:
		p.unexpected(tok, "expression")
	}
	return nil
}

func (p *exprParser) parseListLiteral(open item) ast.Node {
	if p.peek().typ == itemRightBracket {
		p.next()
		return &ast.ListLiteralNode{Pos: p.at(open), Items: nil}
	}
	var items []ast.Node
	for {
		items = append(items, p.parseAssign())
		switch tok := p.next(); tok.typ {
		case itemComma:
			if p.peek().typ == itemRightBracket { // trailing comma
				p.next()
				return &ast.ListLiteralNode{Pos: p.at(open), Items: items}
			}
		case itemRightBracket:
			return &ast.ListLiteralNode{Pos: p.at(open), Items: items}
		default:
			p.unexpected(tok, "list literal")
		}
	}
}

// parseMapLiteral parses an object literal.  Keys may be identifiers, string
// or integer literals (stored as written), or computed [expr] keys.
// Shorthand properties are expanded, i.e. { a } becomes { a: a }.
func (p *exprParser) parseMapLiteral(open item) ast.Node {
	if p.peek().typ == itemRightBrace {
		p.next()
		return &ast.MapLiteralNode{Pos: p.at(open), Items: nil}
	}
	var entries []*ast.MapEntryNode
	for {
		var entry = &ast.MapEntryNode{}
		switch tok := p.next(); tok.typ {
		case itemIdent:
			entry.Pos, entry.Key = p.at(tok), tok.val
			if typ := p.peek().typ; typ == itemComma || typ == itemRightBrace {
				entry.Value = &ast.IdentNode{Pos: p.at(tok), Name: tok.val}
			}
		case itemString, itemInteger:
			entry.Pos, entry.Key = p.at(tok), tok.val
		case itemLeftBracket:
			entry.Pos = p.at(tok)
			entry.KeyExpr = p.parseAssign()
			p.expect(itemRightBracket, "computed object key")
		default:
			p.unexpected(tok, "object literal")
		}
		if entry.Value == nil {
			p.expect(itemColon, "object literal")
			entry.Value = p.parseAssign()
		}
		entries = append(entries, entry)
		switch tok := p.next(); tok.typ {
		case itemComma:
			if p.peek().typ == itemRightBrace { // trailing comma
				p.next()
				return &ast.MapLiteralNode{Pos: p.at(open), Items: entries}
			}
		case itemRightBrace:
			return &ast.MapLiteralNode{Pos: p.at(open), Items: entries}
		default:
			p.unexpected(tok, "object literal")
		}
	}
}

// newBinaryNode returns the typed wrapper for a binary operator token.
func newBinaryNode(tok item, arg1, arg2 ast.Node) ast.Node {
	var bin = ast.BinaryOpNode{Name: tok.typ.String(), Pos: arg1.Position(), Arg1: arg1, Arg2: arg2}
	switch tok.typ {
	case itemMul:
		return &ast.MulNode{BinaryOpNode: bin}
	case itemDiv:
		return &ast.DivNode{BinaryOpNode: bin}
	case itemMod:
		return &ast.ModNode{BinaryOpNode: bin}
	case itemAdd:
		return &ast.AddNode{BinaryOpNode: bin}
	case itemSub:
		return &ast.SubNode{BinaryOpNode: bin}
	case itemEq:
		return &ast.EqNode{BinaryOpNode: bin}
	case itemNotEq:
		return &ast.NotEqNode{BinaryOpNode: bin}
	case itemStrictEq:
		return &ast.StrictEqNode{BinaryOpNode: bin}
	case itemStrictNotEq:
		return &ast.StrictNotEqNode{BinaryOpNode: bin}
	case itemGt:
		return &ast.GtNode{BinaryOpNode: bin}
	case itemGte:
		return &ast.GteNode{BinaryOpNode: bin}
	case itemLt:
		return &ast.LtNode{BinaryOpNode: bin}
	case itemLte:
		return &ast.LteNode{BinaryOpNode: bin}
	case itemAnd:
		return &ast.AndNode{BinaryOpNode: bin}
	case itemOr:
		return &ast.OrNode{BinaryOpNode: bin}
	case itemNullish:
		return &ast.NullishNode{BinaryOpNode: bin}
	}
	panic("unimplemented binary operator: " + tok.val)
}

// isRefExpr reports whether node may be the target of an assignment or
// update operator.
func isRefExpr(node ast.Node) bool {
	switch node.(type) {
	case *ast.IdentNode, *ast.PropertyNode, *ast.IndexNode:
		return true
	}
	return false
}

// Helpers ----------

func (p *exprParser) at(tok item) ast.Pos {
	return p.base + tok.pos
}

func (p *exprParser) next() item {
	if p.peekCount > 0 {
		p.peekCount--
	} else {
		p.token[0] = p.lex.nextItem()
	}
	return p.token[p.peekCount]
}

func (p *exprParser) backup() {
	p.peekCount++
}

func (p *exprParser) peek() item {
	if p.peekCount > 0 {
		return p.token[p.peekCount-1]
	}
	p.peekCount = 1
	p.token[0] = p.lex.nextItem()
	return p.token[0]
}

func (p *exprParser) expect(expected itemType, context string) item {
	var tok = p.next()
	if tok.typ != expected {
		p.unexpected(tok, context)
	}
	return tok
}

func (p *exprParser) unexpected(tok item, context string) {
	if tok.typ == itemError {
		p.errorf(tok.pos, "%s", tok.val)
	}
	p.errorf(tok.pos, "unexpected %v in %s", tok, context)
}

func (p *exprParser) errorf(pos ast.Pos, format string, args ...interface{}) {
	var abs = p.base + pos
	if int(abs) > len(p.doc) {
		abs = ast.Pos(len(p.doc))
	}
	var line = 1 + strings.Count(p.doc[:abs], "\n")
	var lineStart = strings.LastIndex(p.doc[:abs], "\n")
	if lineStart == -1 {
		lineStart = 0
	}
	panic(errortypes.NewErrSourcePosf(p.name, line, int(abs)-lineStart, format, args...))
}

func (p *exprParser) recover(errp *error) {
	if e := recover(); e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}
