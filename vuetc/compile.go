package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vuet/vuet"
	"github.com/vuet/vuet/codegen"
	"github.com/vuet/vuet/transform"
)

var compileCmd = &cobra.Command{
	Use:   "compile [files or directories]",
	Short: "Compile templates to .js render modules",
	Long: `Compile parses the given template files (and *.vue files under the
given directories) and writes one Javascript file per template to the output
directory.

By default the output is an ES module that imports its helpers from "vue".
With --module=false, the output is an ES5 function body suitable for
evaluation with new Function, expecting a global Vue runtime object.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCompile,
}

type compileConfig struct {
	Out       string   `yaml:"out"`
	Module    bool     `yaml:"module"`
	Prefix    bool     `yaml:"prefix"`
	Hoist     bool     `yaml:"hoist"`
	Globals   string   `yaml:"globals"`
	Templates []string `yaml:"templates"`
}

var (
	cfgFile string
	cfg     = compileConfig{Out: ".", Module: true, Prefix: true, Hoist: true}
)

func init() {
	compileCmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	compileCmd.Flags().StringVar(&cfg.Out, "out", cfg.Out, "output directory")
	compileCmd.Flags().BoolVar(&cfg.Module, "module", cfg.Module, "emit an ES module instead of a function body")
	compileCmd.Flags().BoolVar(&cfg.Prefix, "prefix", cfg.Prefix, "rewrite identifiers to _ctx lookups instead of using with blocks")
	compileCmd.Flags().BoolVar(&cfg.Hoist, "hoist", cfg.Hoist, "hoist static subtrees out of the render function")
	compileCmd.Flags().StringVar(&cfg.Globals, "globals", cfg.Globals, "compile-time globals file")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		var content, err = os.ReadFile(cfgFile)
		if err != nil {
			return err
		}
		var fileCfg = cfg
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return fmt.Errorf("%s: %v", cfgFile, err)
		}
		// flags given on the command line win over the config file
		applyUnlessSet(cmd, map[string]func(){
			"out":     func() { fileCfg.Out = cfg.Out },
			"module":  func() { fileCfg.Module = cfg.Module },
			"prefix":  func() { fileCfg.Prefix = cfg.Prefix },
			"hoist":   func() { fileCfg.Hoist = cfg.Hoist },
			"globals": func() { fileCfg.Globals = cfg.Globals },
		})
		cfg = fileCfg
	}
	var inputs = append(args, cfg.Templates...)
	if len(inputs) == 0 {
		return fmt.Errorf("no template files or directories given")
	}
	if cfg.Module && !cfg.Prefix {
		return fmt.Errorf("--module requires --prefix")
	}

	var registry, err = buildBundle(inputs, cfg.Globals).Compile()
	if err != nil {
		return err
	}

	var gen = codegen.NewGenerator(registry, transform.Options{
		PrefixIdentifiers: cfg.Prefix,
		HoistStatic:       cfg.Hoist,
	})
	var opts codegen.Options
	if cfg.Module {
		opts.Formatter = codegen.ModuleFormatter{}
	}
	if err := os.MkdirAll(cfg.Out, 0755); err != nil {
		return err
	}
	for _, name := range registry.Names() {
		var f, err = os.Create(filepath.Join(cfg.Out, name+".js"))
		if err != nil {
			return err
		}
		err = gen.WriteTemplate(f, name, opts)
		if err2 := f.Close(); err == nil {
			err = err2
		}
		if err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Join(cfg.Out, name+".js"))
	}
	return nil
}

// applyUnlessSet runs the reapply function for each flag that was set
// explicitly on the command line, so it overrides the config file value.
func applyUnlessSet(cmd *cobra.Command, flags map[string]func()) {
	for name, reapply := range flags {
		if cmd.Flags().Changed(name) {
			reapply()
		}
	}
}

// buildBundle adds each input path to a fresh bundle, walking directories
// for *.vue files.
func buildBundle(inputs []string, globalsFile string) *vuet.Bundle {
	var bundle = vuet.NewBundle()
	if globalsFile != "" {
		bundle.AddGlobalsFile(globalsFile)
	}
	for _, input := range inputs {
		var info, err = os.Stat(input)
		if err == nil && info.IsDir() {
			bundle.AddTemplateDir(input)
			continue
		}
		bundle.AddTemplateFile(input)
	}
	return bundle
}
