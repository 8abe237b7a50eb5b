package main

import (
	"os"

	"github.com/mattsse/cairo-lang-go/internal/config"
	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags every subcommand reads, mirroring
// cmd/cue's pattern of a single flag struct threaded through the command
// tree rather than package-level globals.
type rootFlags struct {
	cairoPath []string
	configPath string
	start      bool
	keepGoing  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "cairo-sema",
		Short: "Semantic analysis for Cairo source modules",
		Long: "cairo-sema runs the Cairo semantic analysis pass pipeline (module\n" +
			"collection, label uniquification, identifier resolution, directive\n" +
			"validation, struct layout) over a root module and reports the\n" +
			"resulting identifier table or the diagnostics that blocked it.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringArrayVar(&flags.cairoPath, "cairo-path", nil,
		"additional CAIRO_PATH search root (repeatable)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "cairo.yaml",
		"project manifest path")
	root.PersistentFlags().BoolVar(&flags.start, "start", false,
		"synthesize the <start> wrapper module around main")
	root.PersistentFlags().BoolVar(&flags.keepGoing, "keep-going", false,
		"accepted but not read by any subcommand: the pipeline always stops at the first error")

	root.AddCommand(newCompileCmd(flags))
	root.AddCommand(newDumpCmd(flags))
	return root
}

// loadConfig reads flags.configPath if present, falling back to
// config.Default() when the manifest is absent (it is optional per
// SPEC_FULL.md §1.2).
func loadConfig(flags *rootFlags) (config.Config, error) {
	if _, err := os.Stat(flags.configPath); err != nil {
		return config.Default(), nil
	}
	return config.Load(flags.configPath)
}
