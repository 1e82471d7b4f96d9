package ir

import "strings"

// PatchFlag is a bitmask attached to a vnode telling the runtime which parts
// of it may change, so that updates skip everything else.
type PatchFlag int

const (
	PatchText          PatchFlag = 1 << iota // dynamic text content
	PatchClass                               // dynamic class binding
	PatchStyle                               // dynamic style binding
	PatchProps                               // dynamic non-class/style props, listed in dynamicProps
	PatchFullProps                           // props with dynamic keys; diff all of them
	PatchNeedHydration                       // element with event listeners
	PatchStableFragment                      // fragment whose children never reorder
	PatchKeyedFragment                       // fragment with keyed children
	PatchUnkeyedFragment
	PatchNeedPatch // node needing patches beyond props, e.g. directives or refs
	PatchDynamicSlots

	// PatchHoisted marks a static hoisted vnode; it is never diffed.
	PatchHoisted PatchFlag = -1
	// PatchBail exits optimized mode entirely.
	PatchBail PatchFlag = -2
)

var patchFlagNames = []struct {
	flag PatchFlag
	name string
}{
	{PatchText, "TEXT"},
	{PatchClass, "CLASS"},
	{PatchStyle, "STYLE"},
	{PatchProps, "PROPS"},
	{PatchFullProps, "FULL_PROPS"},
	{PatchNeedHydration, "NEED_HYDRATION"},
	{PatchStableFragment, "STABLE_FRAGMENT"},
	{PatchKeyedFragment, "KEYED_FRAGMENT"},
	{PatchUnkeyedFragment, "UNKEYED_FRAGMENT"},
	{PatchNeedPatch, "NEED_PATCH"},
	{PatchDynamicSlots, "DYNAMIC_SLOTS"},
}

// String returns the flag names for use in generated-code comments, e.g.
// "TEXT, CLASS".
func (f PatchFlag) String() string {
	switch f {
	case PatchHoisted:
		return "HOISTED"
	case PatchBail:
		return "BAIL"
	case 0:
		return ""
	}
	var names []string
	for _, pf := range patchFlagNames {
		if f&pf.flag != 0 {
			names = append(names, pf.name)
		}
	}
	return strings.Join(names, ", ")
}
