package parse

import "testing"

type lexTest struct {
	name  string
	input string
	items []item
}

func tok(typ itemType, val string) item {
	return item{typ, 0, val}
}

var tEOF = tok(itemEOF, "")
var tErr = tok(itemError, "")
var tGT = tok(itemRightDelim, ">")
var tEq = tok(itemEquals, "=")

var lexTests = []lexTest{
	{"empty", "", []item{tEOF}},
	{"text", "hello", []item{tok(itemText, "hello"), tEOF}},
	{"lone lt", "a < b", []item{tok(itemText, "a < b"), tEOF}},
	{"interpolation", "a {{ b }} c", []item{
		tok(itemText, "a "),
		tok(itemInterpolation, "b"),
		tok(itemText, " c"),
		tEOF,
	}},
	{"comment", "x<!-- note -->", []item{
		tok(itemText, "x"),
		tok(itemComment, " note "),
		tEOF,
	}},
	{"element", `<p class="big">hi</p>`, []item{
		tok(itemLeftDelim, "p"),
		tok(itemAttrName, "class"), tEq, tok(itemAttrValue, "big"),
		tGT,
		tok(itemText, "hi"),
		tok(itemLeftDelimEnd, "p"),
		tEOF,
	}},
	{"self-closing component", `<MyWidget :msg="m"/>`, []item{
		tok(itemLeftDelim, "MyWidget"),
		tok(itemAttrName, ":msg"), tEq, tok(itemAttrValue, "m"),
		tok(itemRightDelimEnd, "/>"),
		tEOF,
	}},
	{"bare attr and shorthand", `<input disabled @change.once="f">`, []item{
		tok(itemLeftDelim, "input"),
		tok(itemAttrName, "disabled"),
		tok(itemAttrName, "@change.once"), tEq, tok(itemAttrValue, "f"),
		tGT,
		tEOF,
	}},
	{"dynamic argument", `<a v-bind:[key]="v"></a>`, []item{
		tok(itemLeftDelim, "a"),
		tok(itemAttrName, "v-bind:[key]"), tEq, tok(itemAttrValue, "v"),
		tGT,
		tok(itemLeftDelimEnd, "a"),
		tEOF,
	}},
	{"unquoted value", `<a href=/home>x</a>`, []item{
		tok(itemLeftDelim, "a"),
		tok(itemAttrName, "href"), tEq, tok(itemAttrValue, "/home"),
		tGT,
		tok(itemText, "x"),
		tok(itemLeftDelimEnd, "a"),
		tEOF,
	}},
	{"unclosed interpolation", "{{ x", []item{tErr}},
	{"unclosed comment", "<!-- x", []item{tErr}},
	{"unclosed tag", "<div foo", []item{
		tok(itemLeftDelim, "div"), tok(itemAttrName, "foo"), tErr,
	}},
}

var lexExprTests = []lexTest{
	{"access chain", "a.b?.c ?? -1", []item{
		tok(itemIdent, "a"), tok(itemDot, "."), tok(itemIdent, "b"),
		tok(itemQuestionDot, "?."), tok(itemIdent, "c"),
		tok(itemNullish, "??"), tok(itemInteger, "-1"),
		tEOF,
	}},
	{"comparison", "x === 3 && !y", []item{
		tok(itemIdent, "x"), tok(itemStrictEq, "==="), tok(itemInteger, "3"),
		tok(itemAnd, "&&"), tok(itemNot, "!"), tok(itemIdent, "y"),
		tEOF,
	}},
	{"call", "f(x, 10.5)", []item{
		tok(itemIdent, "f"), tok(itemLeftParen, "("),
		tok(itemIdent, "x"), tok(itemComma, ","), tok(itemFloat, "10.5"),
		tok(itemRightParen, ")"),
		tEOF,
	}},
	{"update", "count++", []item{
		tok(itemIdent, "count"), tok(itemIncrement, "++"), tEOF,
	}},
	{"subtraction", "a - 1", []item{
		tok(itemIdent, "a"), tok(itemSub, "-"), tok(itemInteger, "1"), tEOF,
	}},
	{"leading dot float", ".5 + x.y", []item{
		tok(itemFloat, ".5"), tok(itemAdd, "+"),
		tok(itemIdent, "x"), tok(itemDot, "."), tok(itemIdent, "y"),
		tEOF,
	}},
	{"dot after value is access", "a.1", []item{
		tok(itemIdent, "a"), tok(itemDot, "."), tok(itemInteger, "1"), tEOF,
	}},
	{"string escape", `'it\'s'`, []item{tok(itemString, `'it\'s'`), tEOF}},
	{"hex", "0x1F", []item{tok(itemInteger, "0x1F"), tEOF}},
	{"keywords", "null undefined true in", []item{
		tok(itemNull, "null"), tok(itemUndefined, "undefined"),
		tok(itemBool, "true"), tok(itemIn, "in"),
		tEOF,
	}},
	{"arrow rejected", "a => b", []item{tok(itemIdent, "a"), tErr}},
	{"backtick rejected", "`x`", []item{tErr}},
}

// collect gathers the emitted items into a slice.
func collect(l *lexer) (items []item) {
	for {
		item := l.nextItem()
		items = append(items, item)
		if item.typ == itemEOF || item.typ == itemError {
			return
		}
	}
}

// equal compares the token streams, ignoring positions and the text of
// error items.
func equal(i1, i2 []item) bool {
	if len(i1) != len(i2) {
		return false
	}
	for k := range i1 {
		if i1[k].typ != i2[k].typ {
			return false
		}
		if i1[k].typ != itemError && i1[k].val != i2[k].val {
			return false
		}
	}
	return true
}

func TestLex(t *testing.T) {
	for _, test := range lexTests {
		items := collect(lex(test.name, test.input))
		if !equal(items, test.items) {
			t.Errorf("%s: got\n\t%v\nexpected\n\t%v", test.name, items, test.items)
		}
	}
}

func TestLexExpr(t *testing.T) {
	for _, test := range lexExprTests {
		items := collect(lexExpr(test.name, test.input))
		if !equal(items, test.items) {
			t.Errorf("%s: got\n\t%v\nexpected\n\t%v", test.name, items, test.items)
		}
	}
}
