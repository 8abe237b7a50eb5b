package passes

import (
	"fmt"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	"github.com/mattsse/cairo-lang-go/internal/program"
)

// UniqueLabel assigns every if-statement the pair of synthetic labels
// (the "not equal" branch target and the join point after it) that the
// emitter will need, each unique across the whole program.
//
// Grounded on original_source/src/compiler/sema/passes/label.rs.
type UniqueLabel struct {
	counter uint64
}

func (p *UniqueLabel) Name() string { return "unique_label" }

func (p *UniqueLabel) Run(prg *program.PreprocessedProgram) error {
	for _, m := range prg.Modules {
		v := &uniqueLabelVisitor{pass: p}
		if err := ast.VisitFile(m.File, v); err != nil {
			return err
		}
	}
	return nil
}

func (p *UniqueLabel) nextLabel() string {
	p.counter++
	return fmt.Sprintf("_anon_label%d", p.counter)
}

type uniqueLabelVisitor struct {
	ast.BaseVisitor
	pass *UniqueLabel
}

func (v *uniqueLabelVisitor) VisitIf(s *ast.IfStatement) error {
	s.LabelNeq = v.pass.nextLabel()
	s.LabelEnd = v.pass.nextLabel()
	return nil
}
