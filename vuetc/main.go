/*
Vuetc compiles Vue-flavored HTML templates from the command line.

	vuetc compile templates/ --out build/
	vuetc serve templates/

The compile command writes one .js render module per template.  The serve
command starts a development server that recompiles the templates on every
request and renders them to HTML, with query parameters as template data.
*/
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "vuetc",
	Short:         "Compile Vue-flavored templates to Javascript render functions",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
