package ir

import "testing"

func TestPatchFlagString(t *testing.T) {
	tests := []struct {
		flag     PatchFlag
		expected string
	}{
		{0, ""},
		{PatchText, "TEXT"},
		{PatchText | PatchClass, "TEXT, CLASS"},
		{PatchProps | PatchNeedHydration, "PROPS, NEED_HYDRATION"},
		{PatchKeyedFragment, "KEYED_FRAGMENT"},
		{PatchHoisted, "HOISTED"},
		{PatchBail, "BAIL"},
	}
	for _, test := range tests {
		if actual := test.flag.String(); actual != test.expected {
			t.Errorf("%d: expected %q, got %q", int(test.flag), test.expected, actual)
		}
	}
}

func TestIsNativeTag(t *testing.T) {
	for _, tag := range []string{"div", "SPAN", "input", "svg", "template"} {
		if !IsNativeTag(tag) {
			t.Errorf("%s should be native", tag)
		}
	}
	for _, tag := range []string{"TodoItem", "todo-item", "router-view"} {
		if IsNativeTag(tag) {
			t.Errorf("%s should not be native", tag)
		}
	}
}

func TestRootRegistration(t *testing.T) {
	var root Root
	root.UseHelper(HelperOpenBlock)
	root.UseHelper(HelperCreateElementBlock)
	root.UseHelper(HelperOpenBlock)
	if len(root.Helpers) != 2 {
		t.Errorf("expected 2 helpers, got %v", root.Helpers)
	}
	if i := root.UseComponent("TodoItem"); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
	if i := root.UseComponent("TodoItem"); i != 0 {
		t.Errorf("expected index 0 again, got %d", i)
	}
	if ref := root.AddHoist(&Comment{"x"}); ref.N != 1 {
		t.Errorf("expected hoist 1, got %d", ref.N)
	}
}
