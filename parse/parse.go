// Package parse implements the lexer and parser for template markup and the
// Javascript subset allowed in binding expressions.  It produces the AST
// consumed by the transform and render packages.
package parse

import (
	"html"
	"runtime"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/errortypes"
)

// tree is the parse state for a single template file.
type tree struct {
	name      string
	text      string
	root      *ast.TemplateNode
	lex       *lexer
	token     [2]item // two-token lookahead for parser
	peekCount int
	pre       int // depth of elements under v-pre
	preserve  int // depth of elements preserving whitespace, e.g. <pre>
}

// Parse parses the given template source and returns its AST.  The name is
// used in error messages, typically the source filename.
func Parse(name, text string) (node *ast.TemplateNode, err error) {
	var t = &tree{name: name, text: text, lex: lex(name, text)}
	defer t.recover(&err)
	t.root = &ast.TemplateNode{Name: name, Text: text, Body: t.itemList()}
	return t.root, nil
}

// ParseExpr parses a single binding expression, e.g. the contents of an
// interpolation or a directive value.
func ParseExpr(str string) (node ast.Node, err error) {
	return parseExpr("expression", str, str, 0)
}

// itemList parses nodes until EOF.
func (t *tree) itemList() []ast.Node {
	var nodes []ast.Node
	for {
		var token = t.next()
		switch token.typ {
		case itemEOF:
			return nodes
		case itemLeftDelimEnd:
			t.errorf(token.pos, "unexpected closing tag </%s>", token.val)
		}
		if node := t.parseNode(token); node != nil {
			nodes = append(nodes, node)
		}
	}
}

// parseNode parses the node beginning with the given token.  It returns nil
// for nodes that do not survive parsing, like whitespace-only text between
// elements written on their own lines.
func (t *tree) parseNode(token item) ast.Node {
	switch token.typ {
	case itemText:
		if t.preserve > 0 {
			return &ast.TextNode{Pos: token.pos, Text: rawtextPreserve(token.val)}
		}
		if allSpaceWithNewline(token.val) {
			return nil
		}
		return &ast.TextNode{Pos: token.pos, Text: rawtext(token.val)}
	case itemInterpolation:
		if t.pre > 0 {
			// keep the source bytes exactly as written, delimiters included
			var end = int(token.pos) + strings.Index(t.text[token.pos:], "}}") + 2
			return &ast.TextNode{Pos: token.pos - 2, Text: t.text[token.pos-2 : end]}
		}
		return &ast.InterpolationNode{Pos: token.pos, Expr: t.parseExprAt(token.val, token.pos)}
	case itemComment:
		return &ast.CommentNode{Pos: token.pos, Text: token.val}
	case itemLeftDelim:
		return t.parseElement(token)
	default:
		t.unexpected(token, "template")
	}
	return nil
}

// rawAttr is an attribute as scanned, before it is classified as a plain
// attribute or a directive.
type rawAttr struct {
	pos   ast.Pos
	name  string
	value string
	bare  bool
}

// parseElement parses an element from its opening tag through its matching
// closing tag.  The itemLeftDelim token has been consumed.
func (t *tree) parseElement(token item) ast.Node {
	var el = &ast.ElementNode{
		Pos:    token.pos,
		Tag:    token.val,
		IsVoid: voidElements[strings.ToLower(token.val)],
	}

	var attrs []rawAttr
scan:
	for {
		switch tok := t.next(); tok.typ {
		case itemAttrName:
			var attr = rawAttr{pos: tok.pos, name: tok.val, bare: true}
			if t.peek().typ == itemEquals {
				t.next()
				attr.value = t.expect(itemAttrValue, "attribute").val
				attr.bare = false
			}
			attrs = append(attrs, attr)
		case itemRightDelim:
			break scan
		case itemRightDelimEnd:
			el.SelfClosing = true
			break scan
		default:
			t.unexpected(tok, "tag <"+el.Tag+">")
		}
	}

	// v-pre disables directive and interpolation processing for the element
	// and everything beneath it.
	var inheritedPre = t.pre > 0
	var ownPre = false
	if !inheritedPre {
		for _, attr := range attrs {
			if attr.name == "v-pre" {
				ownPre = true
			}
		}
	}
	for _, attr := range attrs {
		if inheritedPre || (ownPre && attr.name != "v-pre") {
			el.Attrs = append(el.Attrs, &ast.AttrNode{Pos: attr.pos, Name: attr.name, Value: attr.value, Bare: attr.bare})
			continue
		}
		t.parseAttr(el, attr)
	}

	if el.SelfClosing || el.IsVoid {
		return el
	}

	if ownPre {
		t.pre++
		defer func() { t.pre-- }()
	}
	if isPreserveWhitespaceTag(el.Tag) {
		t.preserve++
		defer func() { t.preserve-- }()
	}
	for {
		switch tok := t.next(); tok.typ {
		case itemLeftDelimEnd:
			if tok.val != el.Tag {
				t.errorf(tok.pos, "unexpected </%s>, expected </%s>", tok.val, el.Tag)
			}
			return el
		case itemEOF:
			t.errorf(token.pos, "unclosed element <%s>", el.Tag)
		default:
			if node := t.parseNode(tok); node != nil {
				el.Children = append(el.Children, node)
			}
		}
	}
}

// parseAttr classifies a scanned attribute as a plain attribute or a
// directive and adds it to the element.
func (t *tree) parseAttr(el *ast.ElementNode, attr rawAttr) {
	var name = attr.name
	if !strings.HasPrefix(name, "v-") && !strings.ContainsAny(name[:1], ":@#") {
		el.Attrs = append(el.Attrs, &ast.AttrNode{Pos: attr.pos, Name: name, Value: html.UnescapeString(attr.value), Bare: attr.bare})
		return
	}

	var dir = &ast.DirectiveNode{Pos: attr.pos, RawExpr: attr.value}
	var argMods string
	switch {
	case name[0] == ':':
		dir.Name, argMods = "bind", name[1:]
	case name[0] == '@':
		dir.Name, argMods = "on", name[1:]
	case name[0] == '#':
		dir.Name, argMods = "slot", name[1:]
	default:
		var rest = name[2:]
		if i := strings.Index(rest, ":"); i >= 0 {
			dir.Name, argMods = rest[:i], rest[i+1:]
		} else if i := strings.Index(rest, "."); i >= 0 {
			dir.Name = rest[:i]
			dir.Modifiers = strings.Split(rest[i+1:], ".")
		} else {
			dir.Name = rest
		}
	}
	if dir.Name == "" {
		t.errorf(attr.pos, "missing directive name in %q", name)
	}
	t.parseDirectiveArg(dir, attr.pos, argMods)

	var value = strings.TrimSpace(attr.value)
	switch dir.Name {
	case "for":
		if attr.bare || value == "" {
			t.errorf(attr.pos, "v-for requires an expression")
		}
		dir.Expr = t.parseForExprAt(attr.value, attr.pos)
	case "else", "pre", "once", "cloak":
		if !attr.bare && value != "" {
			t.errorf(attr.pos, "v-%s does not take an expression", dir.Name)
		}
	case "slot":
		if dir.Arg == "" && dir.DynArg == nil {
			dir.Arg = "default"
		}
		if !attr.bare && value != "" {
			dir.Expr = t.parseExprAt(attr.value, attr.pos)
		}
	default:
		if attr.bare || value == "" {
			// bare handlers rely on their modifiers, e.g. @submit.prevent
			if dir.Name != "on" {
				t.errorf(attr.pos, "v-%s requires an expression", dir.Name)
			}
		} else {
			dir.Expr = t.parseExprAt(attr.value, attr.pos)
		}
	}
	el.Directives = append(el.Directives, dir)
}

// parseDirectiveArg parses the argument and modifiers following a directive
// name, e.g. "title.sync" or "[key].stop".
func (t *tree) parseDirectiveArg(dir *ast.DirectiveNode, pos ast.Pos, s string) {
	if s == "" {
		return
	}
	if s[0] == '[' {
		var depth, end = 0, -1
		for i, r := range s {
			switch r {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end == -1 {
			t.errorf(pos, "unclosed [ in directive argument")
		}
		dir.DynArg = t.parseExprAt(s[1:end], pos)
		s = s[end+1:]
		if s == "" {
			return
		}
		if s[0] != '.' {
			t.errorf(pos, "unexpected characters after dynamic directive argument")
		}
		dir.Modifiers = append(dir.Modifiers, strings.Split(s[1:], ".")...)
		return
	}
	var parts = strings.Split(s, ".")
	dir.Arg = parts[0]
	if len(parts) > 1 {
		dir.Modifiers = append(dir.Modifiers, parts[1:]...)
	}
}

// parseForExprAt parses a v-for expression of the form:
//
//	(value, key, index) in source
//
// The value alias may be a destructuring pattern.  Both "in" and "of" are
// accepted as the separator.
func (t *tree) parseForExprAt(text string, base ast.Pos) *ast.ForExprNode {
	var l = lexExpr(t.name, text)
	var depth = 0
	var sepPos, sepLen = ast.Pos(-1), 0
	var of = false
	for tok := range l.items {
		switch tok.typ {
		case itemLeftParen, itemLeftBracket, itemLeftBrace:
			depth++
		case itemRightParen, itemRightBracket, itemRightBrace:
			depth--
		case itemIn, itemOf:
			if depth == 0 && sepPos == -1 {
				sepPos, sepLen, of = tok.pos, len(tok.val), tok.typ == itemOf
			}
		case itemError:
			t.errorf(base+tok.pos, "%s", tok.val)
		}
	}
	if sepPos == -1 {
		t.errorf(base, `v-for expects an expression of the form "alias in source"`)
	}

	var node = &ast.ForExprNode{Pos: base, Of: of}
	node.Source = t.parseExprAt(text[sepPos+ast.Pos(sepLen):], base+sepPos+ast.Pos(sepLen))

	var aliases = strings.TrimSpace(text[:sepPos])
	if strings.HasPrefix(aliases, "(") && strings.HasSuffix(aliases, ")") {
		aliases = aliases[1 : len(aliases)-1]
	}
	var parts = splitTopLevel(aliases, ',')
	switch len(parts) {
	case 3:
		node.Index = strings.TrimSpace(parts[2])
		fallthrough
	case 2:
		node.Key = strings.TrimSpace(parts[1])
		fallthrough
	case 1:
		node.Value = strings.TrimSpace(parts[0])
	default:
		t.errorf(base, "v-for supports at most (value, key, index) aliases")
	}
	if node.Value == "" {
		t.errorf(base, "v-for requires a value alias")
	}
	return node
}

// parseExprAt parses a binding expression embedded in the template at the
// given byte offset, so that errors report template positions.
func (t *tree) parseExprAt(text string, base ast.Pos) ast.Node {
	var node, err = parseExpr(t.name, t.text, text, base)
	if err != nil {
		panic(err)
	}
	return node
}

// Helpers ----------

// next returns the next token.
func (t *tree) next() item {
	if t.peekCount > 0 {
		t.peekCount--
	} else {
		t.token[0] = t.lex.nextItem()
	}
	return t.token[t.peekCount]
}

// backup backs the input stream up one token.
func (t *tree) backup() {
	t.peekCount++
}

// peek returns but does not consume the next token.
func (t *tree) peek() item {
	if t.peekCount > 0 {
		return t.token[t.peekCount-1]
	}
	t.peekCount = 1
	t.token[0] = t.lex.nextItem()
	return t.token[0]
}

// expect consumes the next token and guarantees it has the required type.
func (t *tree) expect(expected itemType, context string) item {
	var token = t.next()
	if token.typ != expected {
		t.unexpected(token, context)
	}
	return token
}

// unexpected complains about the given token and terminates processing.
func (t *tree) unexpected(token item, context string) {
	if token.typ == itemError {
		t.errorf(token.pos, "%s", token.val)
	}
	t.errorf(token.pos, "unexpected %v in %s", token, context)
}

// errorf panics with a positioned error, to be caught by recover.
func (t *tree) errorf(pos ast.Pos, format string, args ...interface{}) {
	panic(errortypes.NewErrSourcePosf(
		t.name, t.lex.lineNumber(pos), t.lex.columnNumber(pos), format, args...))
}

// recover is the handler that turns panics into returns from the top level
// of Parse.
func (t *tree) recover(errp *error) {
	if e := recover(); e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
	}
}

// splitTopLevel splits s on the separator rune, ignoring separators nested
// within parens, brackets, braces, or string literals.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	var depth = 0
	var quote rune
	var start = 0
	var escaped = false
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + len(string(sep))
		}
	}
	return append(parts, s[start:])
}

// voidElements are HTML elements that never have a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}
