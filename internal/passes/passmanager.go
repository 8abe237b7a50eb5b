// Package passes implements the pass framework and the concrete semantic
// analysis passes run over a program.PreprocessedProgram.
//
// Grounded on original_source/src/compiler/sema/passes.rs (PassManager,
// Pass) and the per-pass files under
// original_source/src/compiler/sema/passes/*.rs. passes.rs's own run_on
// discards each pass's Result, which spec.md §4.5 contradicts ("the first
// error aborts"); PassManager.Run here propagates errors correctly instead
// of reproducing that bug.
package passes

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mattsse/cairo-lang-go/internal/program"
)

// Pass is one semantic analysis stage. Run mutates prg in place and
// returns the first error it encounters; PassManager does not attempt to
// run a later pass once an earlier one has failed, since every pass
// assumes its predecessors' invariants hold.
type Pass interface {
	Name() string
	Run(prg *program.PreprocessedProgram) error
}

// PassManager runs an ordered list of passes.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a PassManager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// Run executes every pass in order, stopping at (and returning) the first
// error. Each run is stamped with a correlation ID so a host reporting
// diagnostics from several concurrent compiles can tell them apart.
func (m *PassManager) Run(prg *program.PreprocessedProgram) error {
	runID := uuid.NewString()
	for _, p := range m.passes {
		if err := p.Run(prg); err != nil {
			return fmt.Errorf("compile run %s: pass %q: %w", runID, p.Name(), err)
		}
	}
	return nil
}

// Names reports the registered passes' names in run order, useful for
// diagnostics and tests.
func (m *PassManager) Names() []string {
	names := make([]string, len(m.passes))
	for i, p := range m.passes {
		names[i] = p.Name()
	}
	return names
}
