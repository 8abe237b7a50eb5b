package passes

import (
	"sort"

	"github.com/mattsse/cairo-lang-go/internal/imports"
	"github.com/mattsse/cairo-lang-go/internal/program"
)

// ModuleCollector recursively resolves prg.MainScope's import graph and
// populates prg.Modules/prg.Codes with every module reached, in
// deterministic order (the main module first, then the rest
// lexicographically).
//
// Grounded on original_source/src/compiler/sema/passes/import.rs's
// ModuleCollectorPass, delegating the traversal itself to imports.Collector.
type ModuleCollector struct {
	Reader imports.CodeReader
	Parser imports.Parser
}

func (p *ModuleCollector) Name() string { return "module_collector" }

func (p *ModuleCollector) Run(prg *program.PreprocessedProgram) error {
	collector := imports.NewCollector(p.Reader, p.Parser)
	collected, err := collector.Collect(prg.MainScope.Name())
	if err != nil {
		return err
	}

	mainName := prg.MainScope.Name()
	names := make([]string, 0, len(collected))
	for name := range collected {
		if name != mainName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := collected[mainName]; ok {
		names = append([]string{mainName}, names...)
	}

	modules := make([]program.CairoModule, 0, len(names))
	codes := make([]program.CairoContent, 0, len(names))
	for _, name := range names {
		m := collected[name]
		modules = append(modules, program.CairoModule{ModuleName: name, File: m.File})
		codes = append(codes, program.CairoContent{Code: m.Code, Path: m.Origin})
	}
	prg.Modules = modules
	prg.Codes = codes
	return nil
}
