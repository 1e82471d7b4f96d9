package codegen

import "strings"

// The Formatter interface lets callers choose how generated render functions
// are packaged.  When no Formatter is specified in the Options, codegen
// defaults to the FunctionFormatter.
type Formatter interface {
	// Bind returns the code binding the listed runtime helpers to their
	// _-prefixed local names.
	Bind(helpers []string) string
	// OpenRender returns the line that opens the render function.
	OpenRender() string
	// CloseRender returns the code that follows the render function body.
	CloseRender() string
}

// FunctionFormatter produces ES5 code for evaluation with new Function:
// helpers are bound from the global runtime object and the render function
// is returned as the completion value.
type FunctionFormatter struct{}

// ModuleFormatter produces an ES module that imports its helpers and exports
// the render function.  It requires identifier prefixing, since modules are
// implicitly strict and with blocks are not allowed.
type ModuleFormatter struct{}

var _ Formatter = FunctionFormatter{}
var _ Formatter = ModuleFormatter{}

// RuntimeGlobalName is the name under which the runtime is expected to be
// available to code produced by the FunctionFormatter.
const RuntimeGlobalName = "Vue"

// RuntimeModuleName is the module the ModuleFormatter imports helpers from.
const RuntimeModuleName = "vue"

func (f FunctionFormatter) Bind(helpers []string) string {
	var lines = make([]string, len(helpers))
	for i, name := range helpers {
		lines[i] = "var _" + name + " = " + RuntimeGlobalName + "." + name
	}
	return strings.Join(lines, "\n")
}

func (f FunctionFormatter) OpenRender() string {
	return "return function render(_ctx, _cache) {"
}

func (f FunctionFormatter) CloseRender() string {
	return "}"
}

func (f ModuleFormatter) Bind(helpers []string) string {
	var imports = make([]string, len(helpers))
	for i, name := range helpers {
		imports[i] = name + " as _" + name
	}
	return "import { " + strings.Join(imports, ", ") + " } from \"" + RuntimeModuleName + "\""
}

func (f ModuleFormatter) OpenRender() string {
	return "export function render(_ctx, _cache) {"
}

func (f ModuleFormatter) CloseRender() string {
	return "}"
}
