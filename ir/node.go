// Package ir defines the render-function intermediate representation.  The
// transform package lowers a template AST into this form; the codegen and
// ssr packages consume it.
package ir

import "sort"

// Node is any node of the render-function IR.
type Node interface {
	isNode()
}

// Expr is a fragment of Javascript source.  By the time an Expr reaches the
// IR, scope rewriting (the _ctx. prefixes) has been applied.
type Expr struct {
	Src    string
	Static bool // literal constant, e.g. a static prop key
}

// IsZero returns true for the absent expression.
func (e Expr) IsZero() bool { return e.Src == "" }

// StaticExpr returns an Expr holding a compile-time constant.
func StaticExpr(src string) Expr { return Expr{Src: src, Static: true} }

// DynExpr returns an Expr that must be evaluated at runtime.
func DynExpr(src string) Expr { return Expr{Src: src} }

// Root is the IR for one compiled template.
type Root struct {
	Name       string   // template name, e.g. "TodoItem"
	Helpers    []Helper // runtime helpers used, in first-use order
	Components []string // component tags needing resolveComponent, in first-use order
	Directives []string // custom directive names needing resolveDirective
	Hoists     []Node   // static subtrees rendered once, referenced by HoistRef
	Body       Node     // the root block
}

// UseHelper records that generated code calls the given runtime helper.
func (r *Root) UseHelper(h Helper) Helper {
	for _, used := range r.Helpers {
		if used == h {
			return h
		}
	}
	r.Helpers = append(r.Helpers, h)
	return h
}

// SortHelpers puts the helper list in a deterministic order.  The transform
// calls it once after the walk so output never depends on traversal details.
func (r *Root) SortHelpers() {
	sort.Slice(r.Helpers, func(i, j int) bool { return r.Helpers[i] < r.Helpers[j] })
}

// UseComponent records a component tag, returning its index.
func (r *Root) UseComponent(tag string) int {
	for i, name := range r.Components {
		if name == tag {
			return i
		}
	}
	r.Components = append(r.Components, tag)
	return len(r.Components) - 1
}

// UseDirective records a custom directive name, returning its index.
func (r *Root) UseDirective(name string) int {
	for i, used := range r.Directives {
		if used == name {
			return i
		}
	}
	r.Directives = append(r.Directives, name)
	return len(r.Directives) - 1
}

// AddHoist registers a hoisted static subtree and returns its reference.
func (r *Root) AddHoist(node Node) *HoistRef {
	r.Hoists = append(r.Hoists, node)
	return &HoistRef{len(r.Hoists)}
}

// Prop is one entry of a vnode props object.
type Prop struct {
	Key   Expr // static name, or a dynamic key expression
	Value Expr
}

// Props describes the props argument of a vnode.  Spreads come from
// v-bind="obj"; when both spreads and individual props are present the
// generated code merges them with mergeProps.
type Props struct {
	Props   []Prop
	Spreads []Expr
}

// IsZero returns true if there are no props at all.
func (p *Props) IsZero() bool {
	return p == nil || len(p.Props) == 0 && len(p.Spreads) == 0
}

// DirectiveApp is one entry of a withDirectives wrapper.
type DirectiveApp struct {
	Helper    Helper // builtin runtime directive, e.g. vShow; unset if custom
	Name      string // custom directive name, resolved via resolveDirective
	Value     Expr
	Arg       Expr
	Modifiers []string
}

// VNodeCall renders a single element, component, or fragment vnode.
type VNodeCall struct {
	Tag         string // 'div' (quoted), a component variable, or an expression
	IsComponent bool
	IsFragment  bool
	IsBlock     bool // root of a block: (openBlock(), create*Block(...))

	Props    *Props
	Children []Node // element children; nil for components with slots
	Slots    *Slots // component slot children

	PatchFlag    PatchFlag
	DynamicProps []string
	Directives   []DirectiveApp

	// CacheIndex is 1+the _cache slot for a v-once vnode, 0 if uncached.
	CacheIndex int
}

// TextCall renders text content, static or interpolated.  Adjacent text and
// interpolation nodes are merged into a single TextCall.
type TextCall struct {
	Expr      Expr
	PatchFlag PatchFlag // PatchText when the content is dynamic
}

// Comment renders an HTML comment vnode.
type Comment struct {
	Text string
}

// If renders a v-if / v-else-if / v-else chain as nested ternaries.
type If struct {
	Branches []IfBranch
}

// IfBranch is one branch of an If.  An empty Cond marks the v-else branch.
type IfBranch struct {
	Cond Expr
	Node Node
	Key  int // distinguishes branches when patching
}

// For renders a v-for loop: a fragment block over renderList.
type For struct {
	Source    Expr
	Params    string // the render callback parameter list, e.g. "(item, i)"
	Node      Node   // the per-iteration vnode
	PatchFlag PatchFlag
}

// SlotOutlet renders a <slot> element via renderSlot.
type SlotOutlet struct {
	Name     Expr // 'default' or a dynamic name expression
	Props    *Props
	Fallback []Node
}

// Slots is the children object passed to a component.
type Slots struct {
	Slots   []Slot
	Dynamic bool // a dynamic slot name forces DYNAMIC_SLOTS
}

// Slot is a single named slot function.
type Slot struct {
	Name   Expr
	Params string // the v-slot binding pattern source, e.g. "{ item }"
	Body   []Node
}

// HoistRef references the Nth hoisted node (1-based), rendered as _hoisted_N.
type HoistRef struct {
	N int
}

func (*VNodeCall) isNode()  {}
func (*TextCall) isNode()   {}
func (*Comment) isNode()    {}
func (*If) isNode()         {}
func (*For) isNode()        {}
func (*SlotOutlet) isNode() {}
func (*HoistRef) isNode()   {}
