package passes

import "github.com/mattsse/cairo-lang-go/internal/program"

// DependencyGraphPass is a documented no-op: spec.md's Non-goals exclude
// module-level dependency ordering/reachability reporting as a feature of
// this engine, but the pass slot is kept in the default pipeline (after
// StructCollector) since a host that wants to add it has a well-defined
// place to do so without renumbering every other pass.
//
// Grounded on original_source/src/compiler/sema/passes/dependency_graph.rs,
// whose original body is likewise a deliberate no-op.
type DependencyGraphPass struct{}

func (p *DependencyGraphPass) Name() string { return "dependency_graph" }

func (p *DependencyGraphPass) Run(prg *program.PreprocessedProgram) error { return nil }

// PreprocessPass is a documented no-op reserved for a future macro/const
// expression pre-evaluation stage (e.g. folding `const N = 2 * 3` before
// StructCollector needs its value). Nothing in this engine currently
// requires it.
//
// Grounded on original_source/src/compiler/sema/passes/preprocess.rs.
type PreprocessPass struct{}

func (p *PreprocessPass) Name() string { return "preprocess" }

func (p *PreprocessPass) Run(prg *program.PreprocessedProgram) error { return nil }
