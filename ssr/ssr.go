// Package ssr renders a compiled set of templates directly to HTML on the
// server, without generating Javascript.
package ssr

import (
	"errors"
	"fmt"
	"io"

	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/template"
)

var ErrTemplateNotFound = errors.New("template not found")

// Renderer is a bundle of compiled templates, ready to render to HTML.
type Renderer struct {
	registry *template.Registry
	funcs    map[string]Func // functions callable from expressions, by name
	globals  data.Map        // fallback values for unresolved identifiers
}

// NewRenderer returns a new instance that is ready to provide HTML rendering
// services for the given templates, with the default function table.
func NewRenderer(registry *template.Registry) *Renderer {
	return &Renderer{registry, DefaultFuncs, nil}
}

// AddFuncs makes funcs available to template expressions under the given
// names, e.g. "Math.hypot".
func (r *Renderer) AddFuncs(funcs map[string]Func) *Renderer {
	var newfuncs = make(map[string]Func)
	for k, v := range r.funcs {
		newfuncs[k] = v
	}
	for k, v := range funcs {
		newfuncs[k] = v
	}
	r.funcs = newfuncs
	return r
}

// WithGlobals provides values for identifiers that are not found in the
// render scope, mirroring the compiler's globals allowlist.
func (r *Renderer) WithGlobals(globals data.Map) *Renderer {
	r.globals = globals
	return r
}

// Names returns the names of the renderable templates, sorted.
func (r *Renderer) Names() []string {
	if r.registry == nil {
		return nil
	}
	return r.registry.Names()
}

// Render is a convenience function that renders the template of the given
// name, using the given object (converted to data.Map) as component state,
// and writes the result to the given Writer.
//
// When converting structs, the data.DefaultStructOptions are used.  In
// particular, note that struct properties are converted to lowerCamel by
// default, since that is the naming convention in template expressions.
func (r *Renderer) Render(wr io.Writer, name string, obj interface{}) error {
	var m data.Map
	if obj != nil {
		var ok bool
		m, ok = data.New(obj).(data.Map)
		if !ok {
			return fmt.Errorf("invalid data type. expected map/struct, got %T", obj)
		}
	}
	return r.Execute(wr, name, m)
}

// Execute renders the named template against the given data map and writes
// the HTML to wr.
func (r *Renderer) Execute(wr io.Writer, name string, obj data.Map) (err error) {
	if r.registry == nil {
		return errors.New("template registry required")
	}
	var tmpl, ok = r.registry.Template(name)
	if !ok {
		return ErrTemplateNotFound
	}

	state := &state{
		tmpl:     tmpl,
		wr:       wr,
		registry: r.registry,
		context:  newScope(obj),
		funcs:    r.funcs,
		globals:  r.globals,
	}
	defer state.errRecover(&err)
	state.walkList(tmpl.Doc.Body)
	return
}
