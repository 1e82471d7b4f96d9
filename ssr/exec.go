package ssr

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/ir"
	"github.com/vuet/vuet/template"
)

// maxDepth bounds component nesting so that a recursive component without a
// base case produces an error rather than unbounded recursion.
const maxDepth = 100

// state represents the state of one template execution.
type state struct {
	tmpl     template.Template
	wr       io.Writer
	node     ast.Node // current node, for errors
	registry *template.Registry
	context  scope              // variable scope
	slots    map[string]slotDef // slot content passed by the caller
	funcs    map[string]Func
	globals  data.Map
	depth    int // component call depth
}

// slotDef captures slot content passed to a component, together with the
// state it was written in, so the body renders against the caller's scope.
type slotDef struct {
	body   []ast.Node
	params ast.Node // v-slot binding pattern, nil if none
	origin *state
}

// at marks the state to be on node n, for error reporting.
func (s *state) at(node ast.Node) {
	s.node = node
}

// errorf formats the error and terminates processing.
func (s *state) errorf(format string, args ...interface{}) {
	format = fmt.Sprintf("template %s:%d: %s", s.tmpl.Name,
		s.registry.LineNumber(s.tmpl.Name, s.node), format)
	panic(fmt.Errorf(format, args...))
}

// errRecover is the handler that turns panics into returns from the top
// level of Execute.
func (s *state) errRecover(errp *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case runtime.Error:
			*errp = fmt.Errorf("template %s:%d: %v\n%v", s.tmpl.Name,
				s.registry.LineNumber(s.tmpl.Name, s.node), e, string(debug.Stack()))
		case error:
			*errp = e
		default:
			*errp = fmt.Errorf("template %s:%d: %v", s.tmpl.Name,
				s.registry.LineNumber(s.tmpl.Name, s.node), e)
		}
	}
}

// walk renders a single node.
func (s *state) walk(node ast.Node) {
	s.at(node)
	switch node := node.(type) {
	case *ast.ListNode:
		s.walkList(node.Nodes)
	case *ast.TextNode:
		htmlEscapeString(s.wr, node.Text)
	case *ast.InterpolationNode:
		htmlEscapeString(s.wr, s.eval(node.Expr).String())
	case *ast.CommentNode:
		io.WriteString(s.wr, "<!--"+node.Text+"-->")
	case *ast.ElementNode:
		s.element(node)
	default:
		s.errorf("unknown node: %T", node)
	}
}

// walkList renders a node list, grouping v-if/v-else-if/v-else siblings into
// conditional chains.
func (s *state) walkList(nodes []ast.Node) {
	for i := 0; i < len(nodes); i++ {
		if el, ok := nodes[i].(*ast.ElementNode); ok && findDir(el, "if") != nil {
			i = s.ifChain(nodes, i)
			continue
		}
		s.walk(nodes[i])
	}
}

// ifChain renders the first matching branch of a conditional chain starting
// at nodes[i] and returns the index of the last node consumed.
func (s *state) ifChain(nodes []ast.Node, i int) int {
	var branches = []*ast.ElementNode{nodes[i].(*ast.ElementNode)}
	for i+1 < len(nodes) {
		// comments between branches do not break the chain, but they are
		// dropped from the output
		if _, ok := nodes[i+1].(*ast.CommentNode); ok && i+2 < len(nodes) && isElseBranch(nodes[i+2]) {
			i++
			continue
		}
		if !isElseBranch(nodes[i+1]) {
			break
		}
		i++
		var el = nodes[i].(*ast.ElementNode)
		branches = append(branches, el)
		if findDir(el, "else") != nil {
			break
		}
	}
	for _, el := range branches {
		s.at(el)
		var cond = findDir(el, "if")
		if cond == nil {
			cond = findDir(el, "else-if")
		}
		if cond == nil || s.eval(cond.Expr).Truthy() {
			s.element(el)
			break
		}
	}
	return i
}

func isElseBranch(node ast.Node) bool {
	var el, ok = node.(*ast.ElementNode)
	return ok && (findDir(el, "else-if") != nil || findDir(el, "else") != nil)
}

// element renders one element, running its v-for loop if it has one.
func (s *state) element(el *ast.ElementNode) {
	s.at(el)
	var dir = findDir(el, "for")
	if dir == nil {
		s.render(el)
		return
	}
	var fe, ok = dir.Expr.(*ast.ForExprNode)
	if !ok {
		s.errorf("v-for requires an expression of the form \"alias in source\"")
	}
	var source = s.eval(fe.Source)
	s.context.push()
	defer s.context.pop()
	switch source := source.(type) {
	case data.List:
		for i, item := range source {
			s.iteration(el, fe, item, data.Int(i), i)
		}
	case data.Map:
		var keys = make([]string, 0, len(source))
		for k := range source {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			s.iteration(el, fe, source[k], data.String(k), i)
		}
	case data.Int:
		for i := int64(0); i < int64(source); i++ {
			s.iteration(el, fe, data.Int(i+1), data.Int(i), int(i))
		}
	case data.String:
		for i, r := range []rune(string(source)) {
			s.iteration(el, fe, data.String(string(r)), data.Int(i), i)
		}
	case data.Undefined, data.Null:
		// nothing to render
	default:
		s.errorf("v-for source %q is not iterable", fe.Source.String())
	}
}

func (s *state) iteration(el *ast.ElementNode, fe *ast.ForExprNode, value, key data.Value, index int) {
	s.destructure(fe.Value, value)
	if fe.Key != "" {
		s.context.set(fe.Key, key)
	}
	if fe.Index != "" {
		s.context.set(fe.Index, data.Int(index))
	}
	s.render(el)
}

// destructure binds a loop value alias, which may be an object or array
// pattern, in the current scope.
func (s *state) destructure(alias string, value data.Value) {
	alias = strings.TrimSpace(alias)
	switch {
	case strings.HasPrefix(alias, "{"):
		var m, ok = value.(data.Map)
		if !ok {
			s.errorf("cannot destructure %s from a non-object value", alias)
		}
		for _, name := range patternNames(alias) {
			s.context.set(name, m.Key(name))
		}
	case strings.HasPrefix(alias, "["):
		var l, ok = value.(data.List)
		if !ok {
			s.errorf("cannot destructure %s from a non-array value", alias)
		}
		for i, name := range patternNames(alias) {
			s.context.set(name, l.Index(i))
		}
	default:
		s.context.set(alias, value)
	}
}

// render dispatches on the tag, after structural directives are dealt with.
func (s *state) render(el *ast.ElementNode) {
	s.at(el)
	switch {
	case el.Tag == "template":
		s.walkList(el.Children)
	case el.Tag == "slot":
		s.slotOutlet(el)
	case el.Tag == "component":
		var is = findBind(el, "is")
		if is == nil {
			s.errorf("<component> requires a :is binding")
		}
		s.component(el, s.eval(is.Expr).String())
	case ir.IsNativeTag(el.Tag):
		s.native(el)
	default:
		s.component(el, el.Tag)
	}
}

// native renders a platform element.
func (s *state) native(el *ast.ElementNode) {
	io.WriteString(s.wr, "<"+el.Tag)
	for _, a := range s.elementAttrs(el) {
		if a.bare {
			io.WriteString(s.wr, " "+a.name)
			continue
		}
		if a.value == "" && (a.name == "class" || a.name == "style") {
			continue
		}
		io.WriteString(s.wr, " "+a.name+`="`)
		htmlEscapeString(s.wr, a.value)
		io.WriteString(s.wr, `"`)
	}
	io.WriteString(s.wr, ">")
	if el.IsVoid {
		return
	}
	switch {
	case findDir(el, "html") != nil:
		io.WriteString(s.wr, s.eval(findDir(el, "html").Expr).String())
	case findDir(el, "text") != nil:
		htmlEscapeString(s.wr, s.eval(findDir(el, "text").Expr).String())
	case el.Tag == "textarea" && findDir(el, "model") != nil:
		htmlEscapeString(s.wr, s.eval(findDir(el, "model").Expr).String())
	default:
		s.walkList(el.Children)
	}
	io.WriteString(s.wr, "</"+el.Tag+">")
}

type attr struct {
	name  string
	value string
	bare  bool
}

// elementAttrs evaluates the static attributes and attribute-producing
// directives of an element into an ordered attribute list.  Dynamic class and
// style bindings merge into their static counterparts.
func (s *state) elementAttrs(el *ast.ElementNode) []attr {
	var out []attr
	var pos = make(map[string]int)
	var add = func(a attr) {
		if i, ok := pos[a.name]; ok && (a.name == "class" || a.name == "style") {
			switch {
			case out[i].value == "":
				out[i] = a
			case a.value == "":
			case a.name == "class":
				out[i].value += " " + a.value
			default:
				// style declarations each end in a semicolon
				out[i].value += a.value
			}
			return
		}
		pos[a.name] = len(out)
		out = append(out, a)
	}

	for _, a := range el.Attrs {
		var v = a.Value
		if a.Name == "style" {
			v = canonStyle(v)
		}
		add(attr{a.Name, v, a.Bare})
	}
	for _, dir := range el.Directives {
		s.at(dir)
		switch dir.Name {
		case "bind":
			s.bindAttr(el, dir, add)
		case "model":
			s.modelAttr(el, dir, add)
		case "show":
			if !s.eval(dir.Expr).Truthy() {
				add(attr{"style", "display:none;", false})
			}
		}
	}
	s.at(el)
	return out
}

// bindAttr lowers one v-bind into attributes.
func (s *state) bindAttr(el *ast.ElementNode, dir *ast.DirectiveNode, add func(attr)) {
	if dir.Expr == nil {
		s.errorf("v-bind requires an expression")
	}
	switch {
	case dir.DynArg != nil:
		s.addAttr(s.eval(dir.DynArg).String(), s.eval(dir.Expr), add)
	case dir.Arg == "":
		var m, ok = s.eval(dir.Expr).(data.Map)
		if !ok {
			s.errorf("v-bind object %q must be a map", dir.RawExpr)
		}
		var keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.addAttr(k, m[k], add)
		}
	default:
		s.addAttr(dir.Arg, s.eval(dir.Expr), add)
	}
}

// addAttr renders one bound value as an attribute.  False, null and
// undefined omit the attribute entirely; true renders it bare.
func (s *state) addAttr(name string, value data.Value, add func(attr)) {
	switch name {
	case "key", "ref", "":
		return
	case "class":
		add(attr{"class", normalizeClass(value), false})
		return
	case "style":
		add(attr{"style", normalizeStyle(value), false})
		return
	}
	switch value := value.(type) {
	case data.Undefined, data.Null:
	case data.Bool:
		if value {
			add(attr{name, "", true})
		}
	default:
		add(attr{name, value.String(), false})
	}
}

// modelAttr renders the value side of v-model on a native form element.
// Event wiring has no server-side meaning and is dropped.
func (s *state) modelAttr(el *ast.ElementNode, dir *ast.DirectiveNode, add func(attr)) {
	if el.Tag != "input" {
		// textarea content is handled during rendering; select option
		// selection is left to the client
		return
	}
	var value = s.eval(dir.Expr)
	switch inputType(s, el) {
	case "checkbox":
		if value.Truthy() {
			add(attr{"checked", "", true})
		}
	case "radio":
		if value.String() == s.ownValue(el) {
			add(attr{"checked", "", true})
		}
	default:
		add(attr{"value", value.String(), false})
	}
}

func inputType(s *state, el *ast.ElementNode) string {
	if b := findBind(el, "type"); b != nil {
		return s.eval(b.Expr).String()
	}
	if a := findAttr(el, "type"); a != nil {
		return a.Value
	}
	return ""
}

// ownValue returns the element's own value attribute, static or bound.
func (s *state) ownValue(el *ast.ElementNode) string {
	if b := findBind(el, "value"); b != nil {
		return s.eval(b.Expr).String()
	}
	if a := findAttr(el, "value"); a != nil {
		return a.Value
	}
	return ""
}

// component renders a component tag by executing its registered template
// with the evaluated props as scope.
func (s *state) component(el *ast.ElementNode, tag string) {
	if s.depth >= maxDepth {
		s.errorf("component nesting exceeds %v levels; a recursive component needs a base case", maxDepth)
	}
	var tmpl, ok = s.registry.ResolveComponent(tag)
	if !ok {
		s.errorf("unknown component <%s>", tag)
	}
	sub := &state{
		tmpl:     tmpl,
		wr:       s.wr,
		registry: s.registry,
		context:  newScope(s.componentProps(el)),
		slots:    s.componentSlots(el),
		funcs:    s.funcs,
		globals:  s.globals,
		depth:    s.depth + 1,
	}
	sub.walkList(tmpl.Doc.Body)
}

// componentProps evaluates the props passed to a component tag.
func (s *state) componentProps(el *ast.ElementNode) data.Map {
	var props = make(data.Map)
	for _, a := range el.Attrs {
		if a.Bare {
			props[a.Name] = data.Bool(true)
			continue
		}
		props[a.Name] = data.String(a.Value)
	}
	for _, dir := range el.Directives {
		s.at(dir)
		switch dir.Name {
		case "bind":
			switch {
			case dir.DynArg != nil:
				props[s.eval(dir.DynArg).String()] = s.eval(dir.Expr)
			case dir.Arg == "":
				var m, ok = s.eval(dir.Expr).(data.Map)
				if !ok {
					s.errorf("v-bind object %q must be a map", dir.RawExpr)
				}
				for k, v := range m {
					props[k] = v
				}
			case dir.Arg == "is" && el.Tag == "component":
				// consumed by tag resolution
			default:
				props[dir.Arg] = s.eval(dir.Expr)
			}
		case "model":
			var name = dir.Arg
			if name == "" {
				name = "modelValue"
			}
			props[name] = s.eval(dir.Expr)
		}
	}
	delete(props, "key")
	delete(props, "ref")
	s.at(el)
	return props
}

// componentSlots collects the slot content of a component tag.
func (s *state) componentSlots(el *ast.ElementNode) map[string]slotDef {
	var slots = make(map[string]slotDef)
	if dir := findDir(el, "slot"); dir != nil {
		slots[s.slotName(dir)] = slotDef{el.Children, dir.Expr, s}
		return slots
	}
	var defaultBody []ast.Node
	for _, child := range el.Children {
		if t, ok := child.(*ast.ElementNode); ok && t.Tag == "template" {
			if dir := findDir(t, "slot"); dir != nil {
				slots[s.slotName(dir)] = slotDef{t.Children, dir.Expr, s}
				continue
			}
		}
		defaultBody = append(defaultBody, child)
	}
	if _, ok := slots["default"]; !ok && nonEmptyBody(defaultBody) {
		slots["default"] = slotDef{defaultBody, nil, s}
	}
	return slots
}

func (s *state) slotName(dir *ast.DirectiveNode) string {
	if dir.DynArg != nil {
		return s.eval(dir.DynArg).String()
	}
	if dir.Arg != "" {
		return dir.Arg
	}
	return "default"
}

// nonEmptyBody reports whether the nodes render anything but whitespace.
func nonEmptyBody(nodes []ast.Node) bool {
	for _, node := range nodes {
		if text, ok := node.(*ast.TextNode); ok && strings.TrimSpace(text.Text) == "" {
			continue
		}
		return true
	}
	return false
}

// slotOutlet renders a <slot> tag: the caller's slot content if provided,
// otherwise the fallback children.
func (s *state) slotOutlet(el *ast.ElementNode) {
	var name = "default"
	if a := findAttr(el, "name"); a != nil {
		name = a.Value
	}
	if b := findBind(el, "name"); b != nil {
		name = s.eval(b.Expr).String()
	}
	var def, ok = s.slots[name]
	if !ok {
		s.walkList(el.Children)
		return
	}

	// slot props are visible to the content through its v-slot params
	var props = make(data.Map)
	for _, a := range el.Attrs {
		if a.Name != "name" {
			props[a.Name] = data.String(a.Value)
		}
	}
	for _, dir := range el.Directives {
		if dir.Name == "bind" && dir.Arg != "" && dir.Arg != "name" {
			props[dir.Arg] = s.eval(dir.Expr)
		}
	}

	var origin = def.origin
	origin.context.push()
	defer origin.context.pop()
	if def.params != nil {
		origin.bindSlotParams(def.params, props)
	}
	origin.walkList(def.body)
}

// bindSlotParams binds the v-slot pattern to the props passed by the outlet.
func (s *state) bindSlotParams(params ast.Node, props data.Map) {
	if ident, ok := params.(*ast.IdentNode); ok {
		s.context.set(ident.Name, props)
		return
	}
	for _, name := range ast.BindingNames(params) {
		s.context.set(name, props.Key(name))
	}
}

// findDir returns the element's directive with the given canonical name.
func findDir(el *ast.ElementNode, name string) *ast.DirectiveNode {
	for _, dir := range el.Directives {
		if dir.Name == name {
			return dir
		}
	}
	return nil
}

// findBind returns the element's v-bind directive with the given static arg.
func findBind(el *ast.ElementNode, arg string) *ast.DirectiveNode {
	for _, dir := range el.Directives {
		if dir.Name == "bind" && dir.Arg == arg {
			return dir
		}
	}
	return nil
}

// findAttr returns the element's static attribute with the given name.
func findAttr(el *ast.ElementNode, name string) *ast.AttrNode {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// patternNames extracts the identifier names from a destructuring pattern.
func patternNames(s string) []string {
	var names []string
	var start = -1
	var isIdent = func(r byte) bool {
		return r == '_' || r == '$' ||
			'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
			start != -1 && '0' <= r && r <= '9'
	}
	for i := 0; i < len(s); i++ {
		switch {
		case isIdent(s[i]):
			if start == -1 {
				start = i
			}
		case start != -1:
			names = append(names, s[start:i])
			start = -1
		}
	}
	if start != -1 {
		names = append(names, s[start:])
	}
	return names
}

var (
	htmlQuot = []byte("&#34;")
	htmlApos = []byte("&#39;")
	htmlAmp  = []byte("&amp;")
	htmlLt   = []byte("&lt;")
	htmlGt   = []byte("&gt;")
)

// htmlEscapeString escapes a string without making copies.
func htmlEscapeString(w io.Writer, str string) {
	last := 0
	for i := 0; i < len(str); i++ {
		var html []byte
		switch str[i] {
		case '"':
			html = htmlQuot
		case '\'':
			html = htmlApos
		case '&':
			html = htmlAmp
		case '<':
			html = htmlLt
		case '>':
			html = htmlGt
		default:
			continue
		}
		io.WriteString(w, str[last:i])
		w.Write(html)
		last = i + 1
	}
	io.WriteString(w, str[last:])
}
