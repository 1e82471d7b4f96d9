package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vuet/vuet/ast"
)

// Lexer design from text/template

// Tokens ---------------------------------------------------------------------

// item represents a token or text string returned from the scanner.
type item struct {
	typ itemType // The type of this item.
	pos ast.Pos  // The starting position, in bytes, of this item in the input string.
	val string   // The value of this item.
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOF"
	case i.typ == itemError:
		return i.val
	case len(i.val) > 10:
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

// itemType identifies the type of lexical items.
type itemType int

// All items.
const (
	itemInvalid itemType = iota // not used
	itemEOF                     // EOF
	itemError                   // error occurred; value is text of error

	// Markup items
	itemText          // plain text
	itemInterpolation // the inner expression text of a {{ ... }}
	itemComment       // the inner text of a <!-- ... -->
	itemLeftDelim     // <tag - the value is the tag name
	itemLeftDelimEnd  // </tag> - the value is the tag name
	itemRightDelim    // >
	itemRightDelimEnd // />
	itemAttrName      // attribute or directive name, as written
	itemEquals        // =
	itemAttrValue     // attribute value, without surrounding quotes

	// Expression values
	itemNull      // null
	itemUndefined // undefined
	itemBool      // true, false
	itemInteger   // e.g. 42, 0x1A
	itemFloat     // e.g. 1.0, 6.02e23
	itemString    // e.g. 'hello world'
	itemIdent     // identifier

	itemComma        // ,
	itemColon        // :
	itemDot          // .
	itemQuestionDot  // ?.
	itemLeftBracket  // [
	itemRightBracket // ]
	itemLeftParen    // (
	itemRightParen   // )
	itemLeftBrace    // {
	itemRightBrace   // }

	// Expression operations
	itemNegate      // - (unary)
	itemNot         // !
	itemMul         // *
	itemDiv         // /
	itemMod         // %
	itemAdd         // +
	itemSub         // - (binary)
	itemEq          // ==
	itemNotEq       // !=
	itemStrictEq    // ===
	itemStrictNotEq // !==
	itemGt          // >
	itemGte         // >=
	itemLt          // <
	itemLte         // <=
	itemAnd         // &&
	itemOr          // ||
	itemNullish     // ??
	itemTernIf      // ?
	itemAssign      // =
	itemAddAssign   // +=
	itemSubAssign   // -=
	itemIncrement   // ++
	itemDecrement   // --

	// Expression keywords
	itemIn // in (v-for)
	itemOf // of (v-for)
)

// isOp returns true if the item is an expression operation
func (t itemType) isOp() bool {
	return itemNegate <= t && t <= itemDecrement
}

var keywords = map[string]itemType{
	"null":      itemNull,
	"undefined": itemUndefined,
	"true":      itemBool,
	"false":     itemBool,
	"in":        itemIn,
	"of":        itemOf,
}

var symbolItems = map[string]itemType{
	"*":   itemMul,
	"/":   itemDiv,
	"%":   itemMod,
	"+":   itemAdd,
	"-":   itemSub,
	"==":  itemEq,
	"!=":  itemNotEq,
	"===": itemStrictEq,
	"!==": itemStrictNotEq,
	">":   itemGt,
	">=":  itemGte,
	"<":   itemLt,
	"<=":  itemLte,
	"&&":  itemAnd,
	"||":  itemOr,
	"??":  itemNullish,
	"?":   itemTernIf,
	"?.":  itemQuestionDot,
	"!":   itemNot,
	"=":   itemAssign,
	"+=":  itemAddAssign,
	"-=":  itemSubAssign,
	"++":  itemIncrement,
	"--":  itemDecrement,
	":":   itemColon,
	",":   itemComma,
	".":   itemDot,
	"(":   itemLeftParen,
	")":   itemRightParen,
	"[":   itemLeftBracket,
	"]":   itemRightBracket,
	"{":   itemLeftBrace,
	"}":   itemRightBrace,
}

// String converts the itemType into a display string.
// It is fantastically inefficient and should only be used for error messages.
func (t itemType) String() string {
	for k, v := range keywords {
		if v == t {
			return k
		}
	}
	for k, v := range symbolItems {
		if v == t {
			return k
		}
	}
	var r, ok = map[itemType]string{
		itemEOF:           "<eof>",
		itemError:         "<error>",
		itemText:          "<text>",
		itemInterpolation: "<interpolation>",
		itemComment:       "<comment>",
		itemLeftDelim:     "<tag",
		itemLeftDelimEnd:  "</tag>",
		itemRightDelim:    ">",
		itemRightDelimEnd: "/>",
		itemAttrName:      "<attr name>",
		itemEquals:        "=",
		itemAttrValue:     "<attr value>",
		itemIdent:         "<ident>",
		itemInteger:       "<integer>",
		itemFloat:         "<float>",
		itemString:        "<string>",
		itemNegate:        "- (unary)",
	}[t]
	if ok {
		return r
	}
	return fmt.Sprintf("item(%d)", t)
}

// Lexer ----------------------------------------------------------------------

const (
	eof       = -1
	decDigits = "0123456789"
	hexDigits = "0123456789abcdefABCDEF"
)

// stateFn represents the state of the lexer as a function that returns the
// next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the lexical scanning.
//
// Based on the lexer from the "text/template" package.
// See http://www.youtube.com/watch?v=HxaD_trXwRE
type lexer struct {
	name     string    // the name of the input; used only during errors.
	input    string    // the string being scanned.
	state    stateFn   // the next lexing function to enter.
	pos      ast.Pos   // current position in the input.
	start    ast.Pos   // start position of this item.
	width    int       // width of last rune read from input.
	items    chan item // channel of scanned items.
	lastEmit item      // most recent item emitted.
}

// nextItem returns the next item from the input.
func (l *lexer) nextItem() item {
	return <-l.items
}

// lex creates a new scanner for template markup.
func lex(name, input string) *lexer {
	l := &lexer{
		name:  name,
		input: input,
		items: make(chan item),
		state: lexText,
	}
	go l.run()
	return l
}

// lexExpr creates a new scanner for a single binding expression.
func lexExpr(name, input string) *lexer {
	l := &lexer{
		name:  name,
		input: input,
		items: make(chan item),
		state: lexInsideExpr,
	}
	go l.run()
	return l
}

// run runs the state machine for the lexer.
func (l *lexer) run() {
	for l.state != nil {
		l.state = l.state(l)
	}
	close(l.items)
}

// next returns the next rune in the input.
func (l *lexer) next() (r rune) {
	if l.pos >= ast.Pos(len(l.input)) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += ast.Pos(l.width)
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= ast.Pos(l.width)
}

// emit passes an item back to the client.
func (l *lexer) emit(t itemType) {
	l.emitValue(t, l.input[l.start:l.pos])
}

// emitValue passes an item with the given value back to the client.
func (l *lexer) emitValue(t itemType, value string) {
	l.lastEmit = item{t, l.start, value}
	l.items <- l.lastEmit
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) bool {
	pos := l.pos
	for strings.IndexRune(valid, l.next()) >= 0 {
	}
	l.backup()
	return l.pos > pos
}

// lineNumber reports which line we're on. Doing it this way
// means we don't have to worry about peek double counting.
func (l *lexer) lineNumber(pos ast.Pos) int {
	return 1 + strings.Count(l.input[:pos], "\n")
}

// columnNumber reports which column in the current line we're on.
func (l *lexer) columnNumber(pos ast.Pos) int {
	n := strings.LastIndex(l.input[:pos], "\n")
	if n == -1 {
		n = 0
	}
	return int(pos) - n
}

// errorf returns an error item and terminates the scan by passing
// back a nil pointer that will be the next state, terminating l.nextItem.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items <- item{itemError, l.pos, fmt.Sprintf(format, args...)}
	return nil
}

// Markup state functions -----------------------------------------------------

// maybeEmitText emits the pending input as text if any has accumulated.
// Whitespace-only runs are emitted too; whether they survive depends on
// context (e.g. <pre>) that only the parser knows.
func maybeEmitText(l *lexer, backup int) {
	if l.pos-ast.Pos(backup) > l.start {
		l.pos -= ast.Pos(backup)
		l.emit(itemText)
		l.pos += ast.Pos(backup)
	}
}

// lexText scans until a tag opening "<" or an interpolation "{{".
func lexText(l *lexer) stateFn {
	for {
		switch r := l.next(); r {
		case '{':
			if l.peek() == '{' {
				maybeEmitText(l, 1)
				l.next()
				l.ignore()
				return lexInterpolation
			}
		case '<':
			switch r2 := l.peek(); {
			case r2 == '!':
				if strings.HasPrefix(l.input[l.pos:], "!--") {
					maybeEmitText(l, 1)
					l.pos += 3
					l.ignore()
					return lexComment
				}
			case r2 == '/':
				maybeEmitText(l, 1)
				l.next()
				l.ignore()
				return lexEndTag
			case isTagNameStart(r2):
				maybeEmitText(l, 1)
				l.ignore()
				return lexTagName
			}
			// a lone "<" is literal text
		case eof:
			l.backup()
			maybeEmitText(l, 0)
			l.emit(itemEOF)
			return nil
		}
	}
}

// lexInterpolation scans the inside of a {{ ... }} and emits the raw
// expression text.  "{{" has just been consumed.
func lexInterpolation(l *lexer) stateFn {
	var i = strings.Index(l.input[l.pos:], "}}")
	if i == -1 {
		return l.errorf("unclosed interpolation")
	}
	l.pos += ast.Pos(i)
	l.emitValue(itemInterpolation, strings.TrimSpace(l.input[l.start:l.pos]))
	l.pos += 2
	l.ignore()
	return lexText
}

// lexComment scans the inside of an HTML comment.  "<!--" has been consumed.
func lexComment(l *lexer) stateFn {
	var i = strings.Index(l.input[l.pos:], "-->")
	if i == -1 {
		return l.errorf("unclosed comment")
	}
	l.pos += ast.Pos(i)
	l.emit(itemComment)
	l.pos += 3
	l.ignore()
	return lexText
}

// lexTagName scans a tag name.  "<" has been consumed and ignored.
func lexTagName(l *lexer) stateFn {
	l.next()
	for isTagNameChar(l.next()) {
	}
	l.backup()
	l.emit(itemLeftDelim)
	return lexInsideTag
}

// lexEndTag scans "</tag >".  "</" has been consumed and ignored.
func lexEndTag(l *lexer) stateFn {
	for isTagNameChar(l.next()) {
	}
	l.backup()
	var name = l.input[l.start:l.pos]
	if name == "" {
		return l.errorf("malformed end tag")
	}
	l.emitValue(itemLeftDelimEnd, name)
	for isSpaceEOL(l.peek()) {
		l.next()
	}
	if l.next() != '>' {
		return l.errorf("malformed end tag </%s", name)
	}
	l.ignore()
	return lexText
}

// lexInsideTag is called repeatedly to scan attributes inside an open tag.
func lexInsideTag(l *lexer) stateFn {
	switch r := l.next(); {
	case isSpaceEOL(r):
		l.ignore()
	case r == '>':
		l.emit(itemRightDelim)
		return lexText
	case r == '/':
		if l.next() != '>' {
			return l.errorf("expected > after / in tag")
		}
		l.emit(itemRightDelimEnd)
		return lexText
	case r == eof:
		return l.errorf("unclosed tag")
	case r == '=':
		l.emit(itemEquals)
		return lexAttrValue
	case isAttrNameChar(r):
		return lexAttrName
	default:
		return l.errorf("unexpected character in tag: %#U", r)
	}
	return lexInsideTag
}

// lexAttrName scans an attribute or directive name.  Directive names may
// include a bracketed dynamic argument, e.g. :[key].
func lexAttrName(l *lexer) stateFn {
	var brackets = 0
	for {
		switch r := l.next(); {
		case r == '[':
			brackets++
		case r == ']':
			brackets--
		case isAttrNameChar(r) || (brackets > 0 && r != eof && r != '>'):
			// absorb
		default:
			l.backup()
			if brackets != 0 {
				return l.errorf("unclosed [ in attribute name")
			}
			l.emit(itemAttrName)
			return lexInsideTag
		}
	}
}

// lexAttrValue scans an attribute value, which may be quoted with ' or " or
// be a run of unquoted characters.  itemEquals has just been emitted.
func lexAttrValue(l *lexer) stateFn {
	switch r := l.next(); {
	case r == '"', r == '\'':
		l.ignore()
		for {
			switch l.next() {
			case r:
				l.backup()
				l.emit(itemAttrValue)
				l.next()
				l.ignore()
				return lexInsideTag
			case eof:
				return l.errorf("unclosed attribute value")
			}
		}
	case r == eof, r == '>':
		return l.errorf("missing attribute value")
	default:
		for {
			switch r := l.next(); {
			case isSpaceEOL(r), r == '>', r == eof:
				l.backup()
				l.emit(itemAttrValue)
				return lexInsideTag
			}
		}
	}
}

// Expression state functions -------------------------------------------------

// lexInsideExpr is called repeatedly to scan binding expression tokens.
func lexInsideExpr(l *lexer) stateFn {
	switch r := l.next(); {
	case isSpaceEOL(r):
		l.ignore()
	case r == eof:
		l.emit(itemEOF)
		return nil
	case r == '`':
		return l.errorf("template literals are not supported in binding expressions")
	case r == '"' || r == '\'':
		return stringLexer(r)
	case r >= '0' && r <= '9':
		l.backup()
		return lexNumber
	case r == '-':
		return lexMinus
	case r == '.':
		// After a value (ident, call, index) a dot is member access even
		// when a digit follows; elsewhere ".5" starts a float literal.
		var lastType = l.lastEmit.typ
		var postfix = lastType == itemIdent ||
			lastType == itemRightParen ||
			lastType == itemRightBracket
		if isDigit(l.peek()) && !postfix {
			l.backup()
			return lexNumber
		}
		l.emit(itemDot)
	case isIdentStart(r):
		l.backup()
		return lexIdent
	case r == '=':
		if l.peek() == '>' {
			return l.errorf("arrow functions are not supported in binding expressions")
		}
		return lexSymbol
	case strings.ContainsRune("*/%+<>!&|?~^:,()[]{}", r):
		return lexSymbol
	default:
		return l.errorf("unrecognized character in expression: %#U", r)
	}
	return lexInsideExpr
}

// lexMinus disambiguates negative numbers, unary negation, binary
// subtraction, "-=" and "--".  "-" has just been read.
func lexMinus(l *lexer) stateFn {
	switch l.peek() {
	case '-':
		l.next()
		l.emit(itemDecrement)
		return lexInsideExpr
	case '=':
		l.next()
		l.emit(itemSubAssign)
		return lexInsideExpr
	}
	var lastType = l.lastEmit.typ
	var unary = lastType == itemInvalid ||
		lastType.isOp() ||
		lastType == itemComma ||
		lastType == itemColon ||
		lastType == itemLeftParen ||
		lastType == itemLeftBracket ||
		lastType == itemLeftBrace
	if unary {
		if isDigit(l.peek()) {
			l.backup()
			return lexNumber
		}
		l.emit(itemNegate)
	} else {
		l.emit(itemSub)
	}
	return lexInsideExpr
}

// lexSymbol scans a (possibly multi-rune) punctuation token.  The first rune
// has already been read.
func lexSymbol(l *lexer) stateFn {
	// extend the symbol as long as it remains recognized; this matches the
	// longest symbols first (e.g. === before ==).
	for {
		var sym = l.input[l.start:l.pos]
		var next = sym + string(l.peek())
		if _, ok := symbolItems[next]; !ok {
			// special-case ?. which shares no prefix item with ?? extension
			if sym == "?" && l.peek() == '.' {
				l.next()
				continue
			}
			if typ, ok := symbolItems[sym]; ok {
				l.emit(typ)
				return lexInsideExpr
			}
			return l.errorf("unexpected symbol: %s", sym)
		}
		l.next()
	}
}

// stringLexer returns a stateFn that lexes strings surrounded by the given
// quote character.
func stringLexer(quoteChar rune) stateFn {
	// the quote char has already been read.
	return func(l *lexer) stateFn {
		for {
			switch l.next() {
			case eof:
				return l.errorf("unexpected eof while scanning string")
			case '\\':
				l.next() // skip escape sequences
			case quoteChar:
				l.emit(itemString)
				return lexInsideExpr
			}
		}
	}
}

// lexIdent scans an identifier or keyword.
func lexIdent(l *lexer) stateFn {
	for isIdentChar(l.next()) {
	}
	l.backup()
	var word = l.input[l.start:l.pos]
	if typ, ok := keywords[word]; ok {
		l.emit(typ)
	} else {
		l.emit(itemIdent)
	}
	return lexInsideExpr
}

// lexNumber scans a number: a float or integer (which can be decimal or hex).
func lexNumber(l *lexer) stateFn {
	typ, ok := scanNumber(l)
	if !ok {
		return l.errorf("bad number syntax: %q", l.input[l.start:l.pos])
	}
	// Emits itemFloat or itemInteger.
	l.emit(typ)
	return lexInsideExpr
}

// scanNumber scans a Javascript numeric literal: decimal or 0x hex integers,
// and decimal floats with an optional exponent.
func scanNumber(l *lexer) (typ itemType, ok bool) {
	typ = itemInteger
	// Optional leading sign.
	l.accept("-")
	if strings.HasPrefix(l.input[l.pos:], "0x") || strings.HasPrefix(l.input[l.pos:], "0X") {
		// Hexadecimal.
		l.pos += 2
		if !l.acceptRun(hexDigits) {
			// Requires at least one digit.
			return
		}
		if l.accept(".") {
			// No dots for hexadecimals.
			return
		}
	} else {
		// Decimal.
		l.acceptRun(decDigits)
		if l.accept(".") {
			if !l.acceptRun(decDigits) {
				// Requires a digit after the dot.
				return
			}
			typ = itemFloat
		}
		if l.accept("eE") {
			l.accept("+-")
			if !l.acceptRun(decDigits) {
				// A digit is required after the scientific notation.
				return
			}
			typ = itemFloat
		}
	}
	// Next thing must not be alphanumeric.
	if isIdentChar(l.peek()) {
		l.next()
		return
	}
	ok = true
	return
}

// Helpers --------------------------------------------------------------------

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isEndOfLine reports whether r is an end-of-line character.
func isEndOfLine(r rune) bool {
	return r == '\r' || r == '\n'
}

// isSpaceEOL returns true if r is space or end of line.
func isSpaceEOL(r rune) bool {
	return isSpace(r) || isEndOfLine(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isTagNameStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isTagNameChar(r rune) bool {
	return isTagNameStart(r) || isDigit(r) || r == '-' || r == '_' || r == '.'
}

// isAttrNameChar permits ordinary attribute names plus the directive
// shorthand prefixes and separators: v-bind:title, :title, @click.stop,
// #default.
func isAttrNameChar(r rune) bool {
	return isTagNameChar(r) || r == ':' || r == '@' || r == '#'
}

// allSpaceWithNewline returns true if the entire string consists of
// whitespace, with at least one newline.
func allSpaceWithNewline(str string) bool {
	var seenNewline = false
	for _, ch := range str {
		if !unicode.IsSpace(ch) {
			return false
		}
		if isEndOfLine(ch) {
			seenNewline = true
		}
	}
	return seenNewline
}
