// Package template provides the registry of parsed templates, keyed by
// component name.
package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vuet/vuet/ast"
)

// Template is a named template document.
type Template struct {
	Name string // the component name, e.g. "TodoItem"
	Doc  *ast.TemplateNode
}

// Registry provides convenient access to a set of parsed templates.
type Registry struct {
	Templates []Template
	byName    map[string]int
}

// Add puts the given template into the registry under the given name.
func (r *Registry) Add(name string, doc *ast.TemplateNode) error {
	if r.byName == nil {
		r.byName = make(map[string]int)
	}
	if name == "" {
		return fmt.Errorf("template %q has no name", doc.Name)
	}
	if i, ok := r.byName[name]; ok {
		return fmt.Errorf("template %s already defined by %s", name, r.Templates[i].Doc.Name)
	}
	r.byName[name] = len(r.Templates)
	r.Templates = append(r.Templates, Template{name, doc})
	return nil
}

// Template returns the template with the given name, found or not.
func (r *Registry) Template(name string) (Template, bool) {
	var i, ok = r.byName[name]
	if !ok {
		return Template{}, false
	}
	return r.Templates[i], true
}

// ResolveComponent returns the template registered for the given tag,
// accepting both PascalCase and kebab-case spellings, e.g. <TodoItem> and
// <todo-item> both resolve the "TodoItem" template.
func (r *Registry) ResolveComponent(tag string) (Template, bool) {
	if tmpl, ok := r.Template(tag); ok {
		return tmpl, true
	}
	return r.Template(PascalCase(tag))
}

// Names returns all registered template names, sorted for deterministic
// iteration order.
func (r *Registry) Names() []string {
	var names = make([]string, 0, len(r.Templates))
	for _, tmpl := range r.Templates {
		names = append(names, tmpl.Name)
	}
	sort.Strings(names)
	return names
}

// LineNumber computes the line number in the input source of the given node
// within the named template.
func (r *Registry) LineNumber(name string, node ast.Node) int {
	var tmpl, ok = r.Template(name)
	if !ok {
		return 0
	}
	return 1 + strings.Count(tmpl.Doc.Text[:node.Position()], "\n")
}

// PascalCase converts a kebab-case tag name to PascalCase.
func PascalCase(tag string) string {
	var parts = strings.Split(tag, "-")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
