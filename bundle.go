package vuet

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/parse"
	"github.com/vuet/vuet/parsepasses"
	"github.com/vuet/vuet/ssr"
	"github.com/vuet/vuet/template"
)

// Logger is used to print notifications and compile errors when using the
// "WatchFiles" feature.
var Logger = log.New(os.Stderr, "[vuet] ", 0)

type templateFile struct{ name, content string }

// Bundle is a collection of template content (templates and globals).  It
// acts as input for the template compiler.
type Bundle struct {
	files                 []templateFile
	globals               data.Map
	err                   error
	watcher               *fsnotify.Watcher
	recompilationCallback func(*template.Registry)
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{globals: make(data.Map)}
}

// WatchFiles tells the bundle to watch any template files added to it,
// re-compile as necessary, and propagate the updates to the registry it
// compiled.  It should be called once, before adding any files.
func (b *Bundle) WatchFiles(watch bool) *Bundle {
	if watch && b.err == nil && b.watcher == nil {
		b.watcher, b.err = fsnotify.NewWatcher()
	}
	return b
}

// AddTemplateDir adds all *.vue files found within the given directory
// (including sub-directories) to the bundle.
func (b *Bundle) AddTemplateDir(root string) *Bundle {
	var err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".vue") {
			return nil
		}
		b.AddTemplateFile(path)
		return nil
	})
	if err != nil {
		b.err = err
	}
	return b
}

// AddTemplateFile adds the given template file to this bundle.
// If WatchFiles is on, it will be subsequently watched for updates.
func (b *Bundle) AddTemplateFile(filename string) *Bundle {
	content, err := os.ReadFile(filename)
	if err != nil {
		b.err = err
	}
	if b.err == nil && b.watcher != nil {
		b.err = b.watcher.Add(filename)
	}
	return b.AddTemplateString(filename, string(content))
}

// AddTemplateString adds the given template to the bundle.  The component is
// registered under the PascalCase form of the filename base, so that
// "todo-item.vue" defines <TodoItem>.  The name does not need to be a real
// filename.
func (b *Bundle) AddTemplateString(filename, content string) *Bundle {
	b.files = append(b.files, templateFile{filename, content})
	return b
}

// AddGlobalsFile opens and parses the given file for compile-time globals,
// and adds the resulting data map to the bundle.
func (b *Bundle) AddGlobalsFile(filename string) *Bundle {
	var f, err = os.Open(filename)
	if err != nil {
		b.err = err
		return b
	}
	globals, err := ParseGlobals(f)
	if err != nil {
		b.err = err
	}
	f.Close()
	return b.AddGlobalsMap(globals)
}

// AddGlobalsMap adds the given globals to the bundle.  Redefining an
// existing global is an error.
func (b *Bundle) AddGlobalsMap(globals data.Map) *Bundle {
	for k, v := range globals {
		if existing, ok := b.globals[k]; ok {
			b.err = fmt.Errorf("global %q already defined as %q", k, existing)
			return b
		}
		b.globals[k] = v
	}
	return b
}

// SetRecompilationCallback assigns the bundle a function to call after
// recompilation.  This is called before updating the in-use registry.
func (b *Bundle) SetRecompilationCallback(c func(*template.Registry)) *Bundle {
	b.recompilationCallback = c
	return b
}

// Compile parses all of the template files in this bundle, verifies
// directive usage, substitutes globals, and returns the completed template
// registry.
func (b *Bundle) Compile() (*template.Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	// Parse the templates (globals are already parsed)
	var registry = template.Registry{}
	for _, file := range b.files {
		var doc, err = parse.Parse(file.name, file.content)
		if err != nil {
			return nil, err
		}
		if err = registry.Add(componentName(file.name), doc); err != nil {
			return nil, err
		}
	}

	// Apply the post-parse processing
	if err := parsepasses.CheckDirectives(&registry); err != nil {
		return nil, err
	}
	if err := parsepasses.SetGlobals(&registry, b.globals); err != nil {
		return nil, err
	}

	if b.watcher != nil {
		go b.recompiler(&registry)
	}
	return &registry, nil
}

// CompileToRenderer returns a ssr.Renderer that renders the bundle's
// templates to HTML.
func (b *Bundle) CompileToRenderer() (*ssr.Renderer, error) {
	var registry, err = b.Compile()
	if err != nil {
		return nil, err
	}
	return ssr.NewRenderer(registry), nil
}

// componentName derives the registered component name from a filename, e.g.
// "widgets/todo-item.vue" registers <TodoItem>.
func componentName(filename string) string {
	var base = filepath.Base(filename)
	return template.PascalCase(strings.TrimSuffix(base, filepath.Ext(base)))
}

func (b *Bundle) recompiler(reg *template.Registry) {
	for {
		select {
		case ev := <-b.watcher.Events:
			// If it's a rename, then fsnotify has removed the watch.
			// Add it back, after a delay.
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(10 * time.Millisecond)
				if err := b.watcher.Add(ev.Name); err != nil {
					Logger.Println(err)
				}
			}

			// Recompile all the templates.
			var bundle = NewBundle().
				AddGlobalsMap(b.globals)
			for _, file := range b.files {
				bundle.AddTemplateFile(file.name)
			}
			var registry, err = bundle.Compile()
			if err != nil {
				Logger.Println(err)
				continue
			}

			if b.recompilationCallback != nil {
				b.recompilationCallback(registry)
			}

			// Swap the new registry into the one handed out by Compile.
			// Not goroutine-safe, but acceptable for a development aid.
			*reg = *registry
			Logger.Printf("update successful (%v)", ev)

		case err := <-b.watcher.Errors:
			Logger.Println(err)
		}
	}
}
