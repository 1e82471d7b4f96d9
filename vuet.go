/*
Package vuet is an implementation of a Vue single-file-component template
compiler for Go.

It compiles templates of the form

	<li v-for="item in items" :key="item.id">{{ item.label }}</li>

either to Javascript render functions, for delivery to the browser, or
directly to HTML on the server.

The bundle builder collects template files and compile-time globals and
produces a template registry:

	registry, err := vuet.NewBundle().
		AddTemplateDir("templates").
		Compile()

From there, the codegen package writes render-function Javascript and the
ssr package renders HTML. See those packages for details.
*/
package vuet

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vuet/vuet/bytecode"
	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/parse"
)

// ParseGlobals parses the given input for compile-time globals, in the form:
//
//	<name> = <expression>
//
//   - Empty lines and lines beginning with '//' are ignored.
//   - <expression> must be a constant template expression, e.g.
//     "https://example.com" or 20 * 60.
func ParseGlobals(input io.Reader) (data.Map, error) {
	var globals = make(data.Map)
	var scanner = bufio.NewScanner(input)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}
		var eq = strings.Index(line, "=")
		if eq == -1 {
			return nil, fmt.Errorf("no equals on line: %q", line)
		}
		var (
			name = strings.TrimSpace(line[:eq])
			expr = strings.TrimSpace(line[eq+1:])
		)
		if _, ok := globals[name]; ok {
			return nil, fmt.Errorf("global %q is already defined", name)
		}
		var node, err = parse.ParseExpr(expr)
		if err != nil {
			return nil, err
		}
		value, err := bytecode.Evaluate(node)
		if err != nil {
			return nil, fmt.Errorf("global %q: %v", name, err)
		}
		globals[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return globals, nil
}
