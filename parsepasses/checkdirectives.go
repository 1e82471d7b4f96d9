// Package parsepasses provides checks and rewrites applied to template ASTs
// after parsing, before they are transformed for code generation.
package parsepasses

import (
	"fmt"
	"runtime"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/ir"
	"github.com/vuet/vuet/template"
)

// CheckDirectives validates directive usage across all templates in the
// registry:
//  1. v-else and v-else-if directly follow a sibling with v-if or v-else-if.
//     Comments may sit between the branches; anything else breaks the chain.
//  2. An element carries at most one of v-if / v-else-if / v-else, and at
//     most one v-for.
//  3. Attribute and directive names are not duplicated on an element.
//  4. v-model targets an assignable expression.
//  5. v-slot appears only on <template> tags or component tags.
//  6. Elements with v-html or v-text have no children.
func CheckDirectives(reg *template.Registry) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(runtime.Error); ok {
				panic(e)
			}
			err = e.(error)
		}
	}()
	for _, tmpl := range reg.Templates {
		var c = checker{reg, tmpl.Name}
		c.checkSiblings(tmpl.Doc.Body)
	}
	return nil
}

type checker struct {
	reg  *template.Registry
	name string
}

// checkSiblings validates the v-else / v-else-if chains among a sibling
// list, then recurses.
func (c checker) checkSiblings(nodes []ast.Node) {
	var prevBranch = false
	for _, node := range nodes {
		var el, ok = node.(*ast.ElementNode)
		if !ok {
			if _, ok := node.(*ast.CommentNode); !ok {
				prevBranch = false
			}
			continue
		}
		c.checkElement(el)
		var hasIf, hasElse = false, false
		for _, dir := range el.Directives {
			switch dir.Name {
			case "if", "else-if":
				hasIf = true
			case "else":
				hasElse = true
			}
		}
		if !hasIf && hasElse || hasElseIf(el) {
			if !prevBranch {
				c.errorf(el, "v-else(-if) must directly follow an element with v-if or v-else-if")
			}
		}
		prevBranch = hasIf
		c.checkSiblings(el.Children)
	}
}

func hasElseIf(el *ast.ElementNode) bool {
	for _, dir := range el.Directives {
		if dir.Name == "else-if" {
			return true
		}
	}
	return false
}

func (c checker) checkElement(el *ast.ElementNode) {
	var conditionals, fors = 0, 0
	var seen = make(map[string]ast.Pos)

	var note = func(key string, pos ast.Pos) {
		if _, ok := seen[key]; ok {
			c.errorf(el, "duplicate attribute %q on <%s>", key, el.Tag)
		}
		seen[key] = pos
	}

	for _, attr := range el.Attrs {
		note(attr.Name, attr.Position())
	}
	for _, dir := range el.Directives {
		if dir.DynArg == nil {
			var key = "v-" + dir.Name
			if dir.Arg != "" {
				key += ":" + dir.Arg
			}
			note(key, dir.Position())
		}

		switch dir.Name {
		case "if", "else-if", "else":
			conditionals++
		case "for":
			fors++
		case "model":
			if !isAssignable(dir.Expr) {
				c.errorf(el, "v-model requires an assignable expression, got %q", dir.RawExpr)
			}
		case "slot":
			if el.Tag != "template" && ir.IsNativeTag(el.Tag) {
				c.errorf(el, "v-slot is only allowed on <template> or component tags, not <%s>", el.Tag)
			}
		case "html", "text":
			if len(el.Children) > 0 {
				c.errorf(el, "v-%s overwrites element children; <%s> must be empty", dir.Name, el.Tag)
			}
		}
	}
	if conditionals > 1 {
		c.errorf(el, "<%s> may carry only one of v-if, v-else-if, v-else", el.Tag)
	}
	if fors > 1 {
		c.errorf(el, "<%s> may carry only one v-for", el.Tag)
	}
}

func isAssignable(node ast.Node) bool {
	switch node.(type) {
	case *ast.IdentNode, *ast.PropertyNode, *ast.IndexNode:
		return true
	}
	return false
}

func (c checker) errorf(node ast.Node, format string, args ...interface{}) {
	panic(fmt.Errorf("template %s:%d: %s",
		c.name, c.reg.LineNumber(c.name, node), fmt.Sprintf(format, args...)))
}
