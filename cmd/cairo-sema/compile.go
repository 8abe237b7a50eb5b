package main

import (
	"fmt"

	"github.com/mattsse/cairo-lang-go/internal/imports"
	"github.com/mattsse/cairo-lang-go/internal/passes"
	"github.com/mattsse/cairo-lang-go/internal/program"
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/spf13/cobra"
)

func newCompileCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <module>",
		Short: "Run the full pass pipeline over a root module and report how many modules and builtins it resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prg, err := runPipeline(flags, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "resolved %d module(s), %d builtin(s)\n",
				len(prg.Modules), len(prg.Builtins))
			return nil
		},
	}
}

// runPipeline wires a reader, the default pass pipeline and a
// PreprocessedProgram the way a library caller embedding this engine
// would, and runs it to completion.
func runPipeline(flags *rootFlags, mainModule string) (*program.PreprocessedProgram, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	roots := imports.RootsFromEnv(append(append([]string(nil), flags.cairoPath...), cfg.Libs...))
	reader := imports.NewFSReader(roots)

	prg := program.New(scope.FromString(mainModule), nil)

	pm := defaultPipeline(reader)
	if err := pm.Run(prg); err != nil {
		return nil, err
	}
	// ModuleCollector replaces prg.Codes, so the <start> module is
	// prepended only once the pipeline has run.
	if cfg.Start || flags.start {
		prg.Codes = append([]program.CairoContent{program.StartModule()}, prg.Codes...)
	}
	return prg, nil
}

// defaultPipeline returns the five ordered passes spec.md §4.5 names, plus
// the two documented no-op stages kept as real Pass implementations after
// StructCollector.
func defaultPipeline(reader imports.CodeReader) *passes.PassManager {
	return passes.NewPassManager(
		&passes.ModuleCollector{Reader: reader, Parser: unimplementedParser{}},
		&passes.UniqueLabel{},
		&passes.IdentifierCollector{},
		&passes.DirectivesCollector{},
		&passes.StructCollector{},
		&passes.DependencyGraphPass{},
		&passes.PreprocessPass{},
	)
}
