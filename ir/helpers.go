package ir

// Helper identifies a runtime function that generated code imports or
// destructures, e.g. createElementVNode.
type Helper int

const (
	HelperFragment Helper = iota
	HelperOpenBlock
	HelperCreateBlock
	HelperCreateElementBlock
	HelperCreateVNode
	HelperCreateElementVNode
	HelperCreateCommentVNode
	HelperCreateTextVNode
	HelperToDisplayString
	HelperRenderList
	HelperRenderSlot
	HelperResolveComponent
	HelperResolveDynamicComponent
	HelperResolveDirective
	HelperWithCtx
	HelperWithDirectives
	HelperWithModifiers
	HelperWithKeys
	HelperVModelText
	HelperVModelCheckbox
	HelperVModelRadio
	HelperVModelSelect
	HelperVModelDynamic
	HelperVShow
	HelperNormalizeClass
	HelperNormalizeStyle
	HelperNormalizeProps
	HelperMergeProps
	HelperToHandlers
	HelperToHandlerKey
)

var helperNames = [...]string{
	HelperFragment:                "Fragment",
	HelperOpenBlock:               "openBlock",
	HelperCreateBlock:             "createBlock",
	HelperCreateElementBlock:      "createElementBlock",
	HelperCreateVNode:             "createVNode",
	HelperCreateElementVNode:      "createElementVNode",
	HelperCreateCommentVNode:      "createCommentVNode",
	HelperCreateTextVNode:         "createTextVNode",
	HelperToDisplayString:         "toDisplayString",
	HelperRenderList:              "renderList",
	HelperRenderSlot:              "renderSlot",
	HelperResolveComponent:        "resolveComponent",
	HelperResolveDynamicComponent: "resolveDynamicComponent",
	HelperResolveDirective:        "resolveDirective",
	HelperWithCtx:                 "withCtx",
	HelperWithDirectives:          "withDirectives",
	HelperWithModifiers:           "withModifiers",
	HelperWithKeys:                "withKeys",
	HelperVModelText:              "vModelText",
	HelperVModelCheckbox:          "vModelCheckbox",
	HelperVModelRadio:             "vModelRadio",
	HelperVModelSelect:            "vModelSelect",
	HelperVModelDynamic:           "vModelDynamic",
	HelperVShow:                   "vShow",
	HelperNormalizeClass:          "normalizeClass",
	HelperNormalizeStyle:          "normalizeStyle",
	HelperNormalizeProps:          "normalizeProps",
	HelperMergeProps:              "mergeProps",
	HelperToHandlers:              "toHandlers",
	HelperToHandlerKey:            "toHandlerKey",
}

// String returns the runtime name of the helper.
func (h Helper) String() string {
	return helperNames[h]
}
