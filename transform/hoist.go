package transform

import "github.com/vuet/vuet/ir"

// Static hoisting: fully static vnodes are created once, outside the render
// function, and reused on every render.  A hoisted vnode carries the HOISTED
// patch flag so the runtime never diffs it.

// hoistInner walks a node looking for hoistable children.  The node itself is
// never hoisted; block roots and loop vnodes must stay in the render function.
func (t *transformer) hoistInner(node ir.Node) {
	switch node := node.(type) {
	case *ir.VNodeCall:
		t.hoistList(node.Children)
		if node.Slots != nil {
			for i := range node.Slots.Slots {
				t.hoistList(node.Slots.Slots[i].Body)
			}
		}
	case *ir.If:
		for _, branch := range node.Branches {
			t.hoistInner(branch.Node)
		}
	case *ir.For:
		t.hoistInner(node.Node)
	case *ir.SlotOutlet:
		t.hoistList(node.Fallback)
	}
}

func (t *transformer) hoistList(nodes []ir.Node) {
	for i, node := range nodes {
		if vn, ok := node.(*ir.VNodeCall); ok && isStaticVNode(vn) {
			vn.PatchFlag = ir.PatchHoisted
			nodes[i] = t.root.AddHoist(vn)
			continue
		}
		t.hoistInner(node)
	}
}

func isStaticVNode(vn *ir.VNodeCall) bool {
	if vn.IsComponent || vn.IsBlock || vn.IsFragment ||
		vn.CacheIndex != 0 || vn.PatchFlag != 0 || len(vn.Directives) > 0 {
		return false
	}
	if vn.Props != nil {
		if len(vn.Props.Spreads) > 0 {
			return false
		}
		for _, prop := range vn.Props.Props {
			if !prop.Key.Static || !prop.Value.Static {
				return false
			}
		}
	}
	for _, child := range vn.Children {
		if !isStaticNode(child) {
			return false
		}
	}
	return true
}

func isStaticNode(node ir.Node) bool {
	switch node := node.(type) {
	case *ir.VNodeCall:
		return isStaticVNode(node)
	case *ir.TextCall:
		return node.PatchFlag == 0
	case *ir.Comment:
		return true
	}
	return false
}
