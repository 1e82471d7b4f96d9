package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vuet/vuet/data"
)

var serveCmd = &cobra.Command{
	Use:   "serve [files or directories]",
	Short: "Serve templates as HTML for development",
	Long: `Serve starts a development server that renders templates to HTML.

Templates are recompiled on every request, so edits show up on reload.
Requesting / lists the compiled templates; requesting /TodoList renders the
TodoList template, with URL query parameters available as template data.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runServe,
}

var (
	servePort    int
	serveGlobals string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 9812, "port on which to listen")
	serveCmd.Flags().StringVar(&serveGlobals, "globals", "", "compile-time globals file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on :%d...\n", servePort)
	return http.ListenAndServe(
		fmt.Sprintf(":%d", servePort),
		http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			serveTemplate(res, req, args)
		}))
}

func serveTemplate(res http.ResponseWriter, req *http.Request, inputs []string) {
	// Recompile from scratch so that template edits show up on reload.
	var renderer, err = buildBundle(inputs, serveGlobals).CompileToRenderer()
	if err != nil {
		http.Error(res, err.Error(), 500)
		return
	}

	var name = req.URL.Path[1:]
	if name == "" {
		res.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(res, "<ul>")
		for _, name := range renderer.Names() {
			fmt.Fprintf(res, `<li><a href="/%s">%s</a></li>`, name, name)
		}
		fmt.Fprint(res, "</ul>")
		return
	}

	var m = make(data.Map)
	for k, v := range req.URL.Query() {
		m[k] = data.String(v[0])
	}

	var buf bytes.Buffer
	if err := renderer.Execute(&buf, name, m); err != nil {
		http.Error(res, err.Error(), 500)
		return
	}
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(res, &buf)
}
