package transform

import "github.com/vuet/vuet/ir"

// collect registers the runtime helpers each IR node requires.  It runs
// after block marking and hoisting, when the final shape of every vnode is
// known.  Helpers embedded in expression sources (toDisplayString and the
// handler wrappers) are registered where those sources are built instead.
//
// inlineText is true when the node is the sole child of a native element;
// codegen emits such text as a plain argument, not a createTextVNode call.
func (t *transformer) collect(node ir.Node, inlineText bool) {
	switch node := node.(type) {
	case nil:
		return

	case *ir.VNodeCall:
		if node.IsFragment {
			t.root.UseHelper(ir.HelperFragment)
		}
		if node.IsBlock {
			t.root.UseHelper(ir.HelperOpenBlock)
			if node.IsComponent {
				t.root.UseHelper(ir.HelperCreateBlock)
			} else {
				t.root.UseHelper(ir.HelperCreateElementBlock)
			}
		} else if node.IsComponent {
			t.root.UseHelper(ir.HelperCreateVNode)
		} else {
			t.root.UseHelper(ir.HelperCreateElementVNode)
		}
		if len(node.Directives) > 0 {
			t.root.UseHelper(ir.HelperWithDirectives)
		}
		if node.Props != nil {
			switch {
			case len(node.Props.Spreads) > 0 && (len(node.Props.Props) > 0 || len(node.Props.Spreads) > 1):
				t.root.UseHelper(ir.HelperMergeProps)
			case len(node.Props.Spreads) == 0 && hasDynamicKey(node.Props):
				t.root.UseHelper(ir.HelperNormalizeProps)
			}
		}
		var sole = len(node.Children) == 1 && !node.IsFragment && !node.IsComponent
		for _, child := range node.Children {
			t.collect(child, sole)
		}
		if node.Slots != nil {
			t.root.UseHelper(ir.HelperWithCtx)
			for _, slot := range node.Slots.Slots {
				for _, child := range slot.Body {
					t.collect(child, false)
				}
			}
		}

	case *ir.TextCall:
		if !inlineText {
			t.root.UseHelper(ir.HelperCreateTextVNode)
		}

	case *ir.Comment:
		t.root.UseHelper(ir.HelperCreateCommentVNode)

	case *ir.If:
		for _, branch := range node.Branches {
			t.collect(branch.Node, false)
		}
		// a chain with no v-else renders a comment placeholder
		if last := node.Branches[len(node.Branches)-1]; !last.Cond.IsZero() {
			t.root.UseHelper(ir.HelperCreateCommentVNode)
		}

	case *ir.For:
		t.root.UseHelper(ir.HelperFragment)
		t.root.UseHelper(ir.HelperOpenBlock)
		t.root.UseHelper(ir.HelperCreateElementBlock)
		t.root.UseHelper(ir.HelperRenderList)
		t.collect(node.Node, false)

	case *ir.SlotOutlet:
		t.root.UseHelper(ir.HelperRenderSlot)
		for _, child := range node.Fallback {
			t.collect(child, false)
		}
	}
}

func hasDynamicKey(props *ir.Props) bool {
	for _, prop := range props.Props {
		if !prop.Key.Static {
			return true
		}
	}
	return false
}
