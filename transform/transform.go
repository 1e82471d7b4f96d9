// Package transform lowers parsed template ASTs into the render-function IR
// consumed by codegen.  It resolves directives into vnode shapes, rewrites
// binding expressions for scope, infers patch flags, folds constant
// subexpressions, and optionally hoists static subtrees.
package transform

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/bytecode"
	"github.com/vuet/vuet/ir"
	"github.com/vuet/vuet/template"
)

// Options configures the transform.
type Options struct {
	// PrefixIdentifiers rewrites free identifiers to _ctx lookups so that
	// generated code runs in strict mode.  When false, the generated render
	// function wraps its body in with (_ctx) instead.
	PrefixIdentifiers bool

	// HoistStatic moves fully static subtrees out of the render function so
	// they are created once and reused on every render.
	HoistStatic bool

	// Globals names identifiers that resolve outside the component instance
	// and must not be rewritten to _ctx lookups.
	Globals []string
}

// Transform lowers one parsed template.
func Transform(name string, doc *ast.TemplateNode, opts Options) (root *ir.Root, err error) {
	var t = &transformer{
		opts:    opts,
		name:    name,
		text:    doc.Text,
		root:    &ir.Root{Name: name},
		globals: make(map[string]bool, len(opts.Globals)),
	}
	for _, g := range opts.Globals {
		t.globals[g] = true
	}

	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(runtime.Error); ok {
				panic(e)
			}
			err = e.(error)
		}
	}()

	t.root.Body = t.rootBlock(t.children(doc.Body))
	if opts.HoistStatic {
		t.hoistInner(t.root.Body)
	}
	t.collect(t.root.Body, false)
	for _, hoisted := range t.root.Hoists {
		t.collect(hoisted, false)
	}
	if len(t.root.Components) > 0 {
		t.root.UseHelper(ir.HelperResolveComponent)
	}
	if len(t.root.Directives) > 0 {
		t.root.UseHelper(ir.HelperResolveDirective)
	}
	t.root.SortHelpers()
	return t.root, nil
}

// TransformRegistry lowers every template in the registry.
func TransformRegistry(reg *template.Registry, opts Options) (map[string]*ir.Root, error) {
	var roots = make(map[string]*ir.Root, len(reg.Templates))
	for _, tmpl := range reg.Templates {
		var root, err = Transform(tmpl.Name, tmpl.Doc, opts)
		if err != nil {
			return nil, err
		}
		roots[tmpl.Name] = root
	}
	return roots, nil
}

type transformer struct {
	opts       Options
	name       string
	text       string
	root       *ir.Root
	globals    map[string]bool
	scope      scope
	keyIndex   int // next v-if branch key
	cacheCount int // next v-once cache slot
}

// rootBlock wraps the transformed top-level children into the root block.
// Multiple roots render as a fragment.
func (t *transformer) rootBlock(children []ir.Node) ir.Node {
	switch len(children) {
	case 0:
		return nil
	case 1:
		if vn, ok := children[0].(*ir.VNodeCall); ok {
			vn.IsBlock = true
		}
		return children[0]
	}
	return &ir.VNodeCall{
		IsFragment: true,
		IsBlock:    true,
		Children:   children,
		PatchFlag:  ir.PatchStableFragment,
	}
}

// children transforms a node list.  Runs of text and interpolations merge
// into single TextCalls, and v-if/v-else-if/v-else siblings group into one If.
func (t *transformer) children(nodes []ast.Node) []ir.Node {
	var out []ir.Node
	var texts []ast.Node
	var flush = func() {
		if len(texts) > 0 {
			out = append(out, t.textCall(texts))
			texts = nil
		}
	}

	for i := 0; i < len(nodes); i++ {
		switch node := nodes[i].(type) {
		case *ast.TextNode, *ast.InterpolationNode:
			texts = append(texts, node)
		case *ast.CommentNode:
			flush()
			out = append(out, &ir.Comment{Text: node.Text})
		case *ast.ElementNode:
			flush()
			if findDir(node, "if") == nil {
				out = append(out, t.element(node))
				continue
			}
			var ifNode = &ir.If{}
			t.addBranch(ifNode, node)
			for i+1 < len(nodes) {
				// comments between branches do not break the chain, but
				// they are dropped from the output
				if _, ok := nodes[i+1].(*ast.CommentNode); ok && i+2 < len(nodes) && isElseBranch(nodes[i+2]) {
					i++
					continue
				}
				if !isElseBranch(nodes[i+1]) {
					break
				}
				i++
				var el = nodes[i].(*ast.ElementNode)
				t.addBranch(ifNode, el)
				if findDir(el, "else") != nil {
					break
				}
			}
			out = append(out, ifNode)
		}
	}
	flush()
	return out
}

func isElseBranch(node ast.Node) bool {
	var el, ok = node.(*ast.ElementNode)
	return ok && (findDir(el, "else-if") != nil || findDir(el, "else") != nil)
}

// addBranch transforms one arm of a conditional chain.  Each branch vnode is
// its own block and carries a compiler-generated key so the runtime replaces
// rather than patches across branches.
func (t *transformer) addBranch(ifNode *ir.If, el *ast.ElementNode) {
	var branch = ir.IfBranch{Key: t.keyIndex}
	t.keyIndex++
	if dir := findDir(el, "if"); dir != nil {
		branch.Cond = t.expr(dir.Expr)
	} else if dir := findDir(el, "else-if"); dir != nil {
		branch.Cond = t.expr(dir.Expr)
	}
	branch.Node = t.element(el)
	if vn, ok := branch.Node.(*ir.VNodeCall); ok {
		vn.IsBlock = true
		injectKey(vn, branch.Key)
	}
	ifNode.Branches = append(ifNode.Branches, branch)
}

// injectKey prepends a compiler-generated key prop unless the author bound
// one explicitly.
func injectKey(vn *ir.VNodeCall, key int) {
	if vn.Props == nil {
		vn.Props = &ir.Props{}
	}
	for _, prop := range vn.Props.Props {
		if prop.Key.Static && prop.Key.Src == "key" {
			return
		}
	}
	var prop = ir.Prop{Key: ir.StaticExpr("key"), Value: ir.StaticExpr(strconv.Itoa(key))}
	vn.Props.Props = append([]ir.Prop{prop}, vn.Props.Props...)
}

// textCall merges a run of text and interpolation nodes.  Interpolations of
// constant expressions fold into the surrounding static text.
func (t *transformer) textCall(texts []ast.Node) ir.Node {
	type piece struct {
		static bool
		s      string
	}
	var pieces []piece
	var addStatic = func(s string) {
		if n := len(pieces); n > 0 && pieces[n-1].static {
			pieces[n-1].s += s
			return
		}
		pieces = append(pieces, piece{true, s})
	}

	var dynamic = false
	for _, node := range texts {
		switch node := node.(type) {
		case *ast.TextNode:
			addStatic(node.Text)
		case *ast.InterpolationNode:
			if value, err := bytecode.Evaluate(node.Expr); err == nil {
				addStatic(value.String())
				continue
			}
			dynamic = true
			var src = t.dynExpr(node.Expr).Src
			t.root.UseHelper(ir.HelperToDisplayString)
			pieces = append(pieces, piece{false, "_toDisplayString(" + src + ")"})
		}
	}

	var parts = make([]string, len(pieces))
	for i, p := range pieces {
		if p.static {
			parts[i] = ast.QuoteJS(p.s)
		} else {
			parts[i] = p.s
		}
	}
	var call = &ir.TextCall{Expr: ir.StaticExpr(strings.Join(parts, " + "))}
	if dynamic {
		call.Expr = ir.DynExpr(call.Expr.Src)
		call.PatchFlag = ir.PatchText
	}
	return call
}

// element transforms one element.  A v-for takes the outer position, so the
// per-iteration vnode sees the loop aliases in scope.
func (t *transformer) element(el *ast.ElementNode) ir.Node {
	if dir := findDir(el, "for"); dir != nil {
		return t.forNode(el, dir)
	}
	return t.vnode(el)
}

func (t *transformer) forNode(el *ast.ElementNode, dir *ast.DirectiveNode) ir.Node {
	var fe, ok = dir.Expr.(*ast.ForExprNode)
	if !ok {
		t.errorf(dir, "v-for requires an expression of the form \"alias in source\"")
	}
	var source = t.expr(fe.Source)

	t.scope.push(fe.Aliases())
	defer t.scope.pop()

	var inner = t.vnode(el)
	if vn, ok := inner.(*ir.VNodeCall); ok {
		vn.IsBlock = true
	}
	var flag = ir.PatchUnkeyedFragment
	if findBind(el, "key") != nil {
		flag = ir.PatchKeyedFragment
	}
	return &ir.For{
		Source:    source,
		Params:    forParams(fe),
		Node:      inner,
		PatchFlag: flag,
	}
}

func forParams(fe *ast.ForExprNode) string {
	var params = []string{fe.Value}
	if fe.Key != "" {
		params = append(params, fe.Key)
	}
	if fe.Index != "" {
		params = append(params, fe.Index)
	}
	return "(" + strings.Join(params, ", ") + ")"
}

// vnode lowers a single element, component, slot outlet, or template
// fragment.  Structural directives (v-if, v-for) have been consumed by the
// caller at this point.
func (t *transformer) vnode(el *ast.ElementNode) ir.Node {
	if el.Tag == "slot" {
		return t.slotOutlet(el)
	}
	if el.Tag == "template" {
		return &ir.VNodeCall{
			IsFragment: true,
			Children:   t.children(el.Children),
			PatchFlag:  ir.PatchStableFragment,
		}
	}

	var vn = &ir.VNodeCall{}
	switch {
	case el.Tag == "component":
		vn.IsComponent = true
		var is = findBind(el, "is")
		if is == nil {
			t.errorf(el, "<component> requires a :is binding")
		}
		t.root.UseHelper(ir.HelperResolveDynamicComponent)
		vn.Tag = "_resolveDynamicComponent(" + t.expr(is.Expr).Src + ")"
	case ir.IsNativeTag(el.Tag):
		vn.Tag = "'" + el.Tag + "'"
	default:
		vn.IsComponent = true
		vn.Tag = "_component_" + template.PascalCase(el.Tag)
		t.root.UseComponent(template.PascalCase(el.Tag))
	}

	var props = &ir.Props{}
	var flag ir.PatchFlag
	var dynProps []string

	for _, attr := range el.Attrs {
		if el.Tag == "component" && attr.Name == "is" {
			continue
		}
		props.Props = append(props.Props, ir.Prop{
			Key:   ir.StaticExpr(attr.Name),
			Value: ir.StaticExpr(ast.QuoteJS(attr.Value)),
		})
	}

	for _, dir := range el.Directives {
		switch dir.Name {
		case "if", "else-if", "else", "for", "pre", "cloak", "slot":
			// consumed elsewhere; v-cloak and v-pre need nothing at runtime
		case "once":
			t.cacheCount++
			vn.CacheIndex = t.cacheCount
		case "bind":
			if el.Tag == "component" && dir.Arg == "is" {
				continue
			}
			t.bindProp(vn, props, dir, &flag, &dynProps)
		case "on":
			t.onProp(props, dir, &flag, &dynProps)
		case "model":
			t.model(el, vn, props, dir, &flag, &dynProps)
		case "show":
			if dir.Expr == nil {
				t.errorf(dir, "v-show requires an expression")
			}
			t.root.UseHelper(ir.HelperVShow)
			vn.Directives = append(vn.Directives, ir.DirectiveApp{
				Helper: ir.HelperVShow,
				Value:  t.dynExpr(dir.Expr),
			})
		case "html":
			var value = t.expr(dir.Expr)
			props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr("innerHTML"), Value: value})
			if !value.Static {
				flag |= ir.PatchProps
				dynProps = append(dynProps, "innerHTML")
			}
		case "text":
			var value = t.expr(dir.Expr)
			if !value.Static {
				t.root.UseHelper(ir.HelperToDisplayString)
				value = ir.DynExpr("_toDisplayString(" + value.Src + ")")
				flag |= ir.PatchProps
				dynProps = append(dynProps, "textContent")
			}
			props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr("textContent"), Value: value})
		default:
			t.customDirective(vn, dir)
		}
	}

	if len(vn.Directives) > 0 {
		flag |= ir.PatchNeedPatch
	}
	if !props.IsZero() {
		vn.Props = props
	}
	vn.PatchFlag = flag
	vn.DynamicProps = dynProps

	if vn.IsComponent {
		t.slots(el, vn)
	} else if !el.IsVoid && !el.SelfClosing {
		vn.Children = t.children(el.Children)
		// a single dynamic text child is inlined into the element call, so
		// its TEXT flag moves onto the element
		if len(vn.Children) == 1 {
			if text, ok := vn.Children[0].(*ir.TextCall); ok && text.PatchFlag == ir.PatchText {
				vn.PatchFlag |= ir.PatchText
			}
		}
	}
	return vn
}

func (t *transformer) customDirective(vn *ir.VNodeCall, dir *ast.DirectiveNode) {
	t.root.UseDirective(dir.Name)
	var app = ir.DirectiveApp{Name: dir.Name, Modifiers: dir.Modifiers}
	if dir.Expr != nil {
		app.Value = t.expr(dir.Expr)
	}
	switch {
	case dir.DynArg != nil:
		app.Arg = t.expr(dir.DynArg)
	case dir.Arg != "":
		app.Arg = ir.StaticExpr(ast.QuoteJS(dir.Arg))
	}
	vn.Directives = append(vn.Directives, app)
}

// bindProp lowers one v-bind.
func (t *transformer) bindProp(vn *ir.VNodeCall, props *ir.Props, dir *ast.DirectiveNode, flag *ir.PatchFlag, dynProps *[]string) {
	if dir.Expr == nil {
		t.errorf(dir, "v-bind requires an expression")
	}
	switch {
	case dir.DynArg != nil:
		props.Props = append(props.Props, ir.Prop{Key: t.dynExpr(dir.DynArg), Value: t.expr(dir.Expr)})
		*flag |= ir.PatchFullProps
	case dir.Arg == "":
		props.Spreads = append(props.Spreads, t.expr(dir.Expr))
		*flag |= ir.PatchFullProps
	default:
		var key = dir.Arg
		var value = t.expr(dir.Expr)
		switch {
		case value.Static:
			// constant binding, nothing to patch
		case key == "key":
			// the key is consumed during diffing, not patched
		case key == "ref":
			*flag |= ir.PatchNeedPatch
		case key == "class" && !vn.IsComponent:
			t.root.UseHelper(ir.HelperNormalizeClass)
			value = ir.DynExpr("_normalizeClass(" + mergeStatic(props, "class", value.Src) + ")")
			*flag |= ir.PatchClass
		case key == "style" && !vn.IsComponent:
			t.root.UseHelper(ir.HelperNormalizeStyle)
			value = ir.DynExpr("_normalizeStyle(" + mergeStatic(props, "style", value.Src) + ")")
			*flag |= ir.PatchStyle
		default:
			*flag |= ir.PatchProps
			*dynProps = append(*dynProps, key)
		}
		props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr(key), Value: value})
	}
}

// mergeStatic folds a static class or style attribute into its dynamic
// binding, removing the static prop and returning the combined source.
func mergeStatic(props *ir.Props, key, src string) string {
	for i, prop := range props.Props {
		if prop.Key.Static && prop.Key.Src == key {
			props.Props = append(props.Props[:i], props.Props[i+1:]...)
			return "[" + prop.Value.Src + ", " + src + "]"
		}
	}
	return src
}

// Modifier classification for v-on.
var (
	eventOptionModifiers = map[string]bool{"capture": true, "once": true, "passive": true}
	keyModifiers         = map[string]bool{
		"enter": true, "tab": true, "delete": true, "esc": true, "space": true,
		"up": true, "down": true, "left": true, "right": true,
	}
)

// onProp lowers one v-on listener.
func (t *transformer) onProp(props *ir.Props, dir *ast.DirectiveNode, flag *ir.PatchFlag, dynProps *[]string) {
	if dir.Arg == "" && dir.DynArg == nil {
		// v-on="handlers" object syntax
		if dir.Expr == nil {
			t.errorf(dir, "v-on requires an expression")
		}
		t.root.UseHelper(ir.HelperToHandlers)
		props.Spreads = append(props.Spreads, ir.DynExpr("_toHandlers("+t.dynExpr(dir.Expr).Src+")"))
		*flag |= ir.PatchFullProps
		return
	}

	var handler = "function () {}"
	if dir.Expr != nil {
		var src = t.dynExpr(dir.Expr).Src
		if isInlineStatement(dir.Expr) {
			src = "function ($event) { return " + src + " }"
		}
		handler = src
	}

	var guards, keys []string
	var optionSuffix string
	for _, mod := range dir.Modifiers {
		switch {
		case eventOptionModifiers[mod]:
			optionSuffix += capitalize(mod)
		case keyModifiers[mod]:
			keys = append(keys, mod)
		default:
			guards = append(guards, mod)
		}
	}
	if len(guards) > 0 {
		t.root.UseHelper(ir.HelperWithModifiers)
		handler = "_withModifiers(" + handler + ", [" + quoteList(guards) + "])"
	}
	if len(keys) > 0 {
		t.root.UseHelper(ir.HelperWithKeys)
		handler = "_withKeys(" + handler + ", [" + quoteList(keys) + "])"
	}

	if dir.DynArg != nil {
		t.root.UseHelper(ir.HelperToHandlerKey)
		var key = "_toHandlerKey(" + t.dynExpr(dir.DynArg).Src + ")"
		props.Props = append(props.Props, ir.Prop{Key: ir.DynExpr(key), Value: ir.DynExpr(handler)})
		*flag |= ir.PatchFullProps
		return
	}

	var key = "on" + capitalize(camelize(dir.Arg)) + optionSuffix
	props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr(key), Value: ir.DynExpr(handler)})
	*flag |= ir.PatchProps
	*dynProps = append(*dynProps, key)
}

// isInlineStatement reports whether a handler expression must be wrapped in
// an $event arrow.  Bare function references are passed through untouched.
func isInlineStatement(node ast.Node) bool {
	switch node.(type) {
	case *ast.IdentNode, *ast.PropertyNode, *ast.IndexNode:
		return false
	}
	return true
}

// model lowers one v-model.
func (t *transformer) model(el *ast.ElementNode, vn *ir.VNodeCall, props *ir.Props, dir *ast.DirectiveNode, flag *ir.PatchFlag, dynProps *[]string) {
	if dir.Expr == nil {
		t.errorf(dir, "v-model requires an expression")
	}
	var value = t.dynExpr(dir.Expr)
	var update = ir.DynExpr("function ($event) { (" + value.Src + ") = $event }")

	if vn.IsComponent {
		var name = "modelValue"
		if dir.Arg != "" {
			name = dir.Arg
		}
		props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr(name), Value: value})
		props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr("onUpdate:" + name), Value: update})
		if len(dir.Modifiers) > 0 {
			var mods = make([]string, len(dir.Modifiers))
			for i, mod := range dir.Modifiers {
				mods[i] = keySrc(mod) + ": true"
			}
			props.Props = append(props.Props, ir.Prop{
				Key:   ir.StaticExpr(name + "Modifiers"),
				Value: ir.StaticExpr("{ " + strings.Join(mods, ", ") + " }"),
			})
		}
		*flag |= ir.PatchProps
		*dynProps = append(*dynProps, name, "onUpdate:"+name)
		return
	}

	var helper = ir.HelperVModelText
	switch el.Tag {
	case "select":
		helper = ir.HelperVModelSelect
	case "input":
		switch {
		case findBind(el, "type") != nil:
			helper = ir.HelperVModelDynamic
		case inputType(el) == "checkbox":
			helper = ir.HelperVModelCheckbox
		case inputType(el) == "radio":
			helper = ir.HelperVModelRadio
		}
	}
	t.root.UseHelper(helper)
	vn.Directives = append(vn.Directives, ir.DirectiveApp{
		Helper:    helper,
		Value:     value,
		Modifiers: dir.Modifiers,
	})
	props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr("onUpdate:modelValue"), Value: update})
	*flag |= ir.PatchProps
	*dynProps = append(*dynProps, "onUpdate:modelValue")
}

func inputType(el *ast.ElementNode) string {
	for _, attr := range el.Attrs {
		if attr.Name == "type" {
			return attr.Value
		}
	}
	return ""
}

// slots builds the children object of a component vnode.
func (t *transformer) slots(el *ast.ElementNode, vn *ir.VNodeCall) {
	var slots = &ir.Slots{}

	if dir := findDir(el, "slot"); dir != nil {
		// v-slot on the component itself: all children form one slot
		slots.Slots = append(slots.Slots, t.slot(dir, el.Children))
		if dir.DynArg != nil {
			slots.Dynamic = true
		}
	} else {
		var defaultBody []ast.Node
		for _, child := range el.Children {
			if tpl, ok := child.(*ast.ElementNode); ok && tpl.Tag == "template" {
				if dir := findDir(tpl, "slot"); dir != nil {
					slots.Slots = append(slots.Slots, t.slot(dir, tpl.Children))
					if dir.DynArg != nil {
						slots.Dynamic = true
					}
					continue
				}
			}
			defaultBody = append(defaultBody, child)
		}
		if nonEmptyBody(defaultBody) {
			slots.Slots = append(slots.Slots, ir.Slot{
				Name: ir.StaticExpr("default"),
				Body: t.children(defaultBody),
			})
		}
	}

	if len(slots.Slots) == 0 {
		return
	}
	if slots.Dynamic {
		vn.PatchFlag |= ir.PatchDynamicSlots
	}
	vn.Slots = slots
}

// nonEmptyBody reports whether a default slot body contains anything besides
// whitespace.
func nonEmptyBody(nodes []ast.Node) bool {
	for _, node := range nodes {
		if text, ok := node.(*ast.TextNode); ok && strings.TrimSpace(text.Text) == "" {
			continue
		}
		return true
	}
	return false
}

func (t *transformer) slot(dir *ast.DirectiveNode, body []ast.Node) ir.Slot {
	var name = ir.StaticExpr("default")
	if dir.DynArg != nil {
		name = t.dynExpr(dir.DynArg)
	} else if dir.Arg != "" {
		name = ir.StaticExpr(dir.Arg)
	}

	var s = ir.Slot{Name: name}
	var bound []string
	if dir.Expr != nil {
		s.Params = dir.RawExpr
		bound = ast.BindingNames(dir.Expr)
	}
	t.scope.push(bound)
	defer t.scope.pop()
	s.Body = t.children(body)
	return s
}

// slotOutlet lowers a <slot> element.
func (t *transformer) slotOutlet(el *ast.ElementNode) ir.Node {
	var out = &ir.SlotOutlet{Name: ir.StaticExpr("'default'")}
	var props = &ir.Props{}

	for _, attr := range el.Attrs {
		if attr.Name == "name" {
			out.Name = ir.StaticExpr(ast.QuoteJS(attr.Value))
			continue
		}
		props.Props = append(props.Props, ir.Prop{
			Key:   ir.StaticExpr(attr.Name),
			Value: ir.StaticExpr(ast.QuoteJS(attr.Value)),
		})
	}
	for _, dir := range el.Directives {
		if dir.Name != "bind" {
			continue
		}
		if dir.Arg == "name" {
			out.Name = t.expr(dir.Expr)
			continue
		}
		if dir.Arg != "" {
			props.Props = append(props.Props, ir.Prop{Key: ir.StaticExpr(dir.Arg), Value: t.expr(dir.Expr)})
		}
	}

	if !props.IsZero() {
		out.Props = props
	}
	out.Fallback = t.children(el.Children)
	return out
}

func findDir(el *ast.ElementNode, name string) *ast.DirectiveNode {
	for _, dir := range el.Directives {
		if dir.Name == name {
			return dir
		}
	}
	return nil
}

// findBind returns the v-bind directive with the given static argument.
func findBind(el *ast.ElementNode, arg string) *ast.DirectiveNode {
	for _, dir := range el.Directives {
		if dir.Name == "bind" && dir.Arg == arg {
			return dir
		}
	}
	return nil
}

func quoteList(items []string) string {
	var quoted = make([]string, len(items))
	for i, item := range items {
		quoted[i] = ast.QuoteJS(item)
	}
	return strings.Join(quoted, ", ")
}

func (t *transformer) errorf(node ast.Node, format string, args ...interface{}) {
	var line = 1 + strings.Count(t.text[:node.Position()], "\n")
	panic(fmt.Errorf("template %s:%d: %s", t.name, line, fmt.Sprintf(format, args...)))
}
