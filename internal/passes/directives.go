package passes

import (
	"fmt"
	"sort"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"github.com/mattsse/cairo-lang-go/internal/program"
	"github.com/mattsse/cairo-lang-go/internal/token"
	"github.com/mpvl/unique"
)

// DirectivesCollector gathers the %builtins directives declared across a
// program's modules into prg.Builtins, rejecting more than one %builtins
// directive across the whole program and any builtin name repeated within
// a single directive.
//
// Grounded on original_source/src/compiler/constants.rs's reserved builtin
// set and spec.md §4.6.4's program-wide single-directive rule; the
// duplicate-name check reuses the sorted-slice de-duplication idiom
// internal/imports/collector.go already uses for dependency lists.
type DirectivesCollector struct{}

func (p *DirectivesCollector) Name() string { return "directives_collector" }

func (p *DirectivesCollector) Run(prg *program.PreprocessedProgram) error {
	v := &directivesVisitor{}
	for _, m := range prg.Modules {
		if err := ast.VisitFile(m.File, v); err != nil {
			return err
		}
	}
	if v.seen {
		if err := checkNoDuplicates(v.builtins, v.loc); err != nil {
			return err
		}
	}
	prg.Builtins = v.builtins
	return nil
}

func checkNoDuplicates(builtins []ast.Builtin, loc token.Loc) error {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.Name
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	deduped := stringSlice(append([]string(nil), sorted...))
	unique.Unique(&deduped)
	if len(deduped) != len(sorted) {
		return cerr.NewPreprocessError(loc, fmt.Sprintf("duplicate builtin in %%builtins directive: %v", names))
	}
	return nil
}

// stringSlice adapts []string to sort.Interface plus mpvl/unique's
// Truncate requirement, mirroring internal/imports/collector.go's idiom
// for the same dependency-list de-duplication problem.
type stringSlice []string

func (s stringSlice) Len() int           { return len(s) }
func (s stringSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *stringSlice) Truncate(n int)    { *s = (*s)[:n] }

// directivesVisitor is shared across every module in the program (the Run
// loop above reuses one instance rather than creating a fresh one per
// module), so its seen flag enforces the at-most-one-%builtins rule
// program-wide rather than per module.
type directivesVisitor struct {
	ast.BaseVisitor
	seen     bool
	loc      token.Loc
	builtins []ast.Builtin
}

func (v *directivesVisitor) VisitBuiltins(b *[]ast.Builtin, loc token.Loc) error {
	if v.seen {
		return cerr.NewPreprocessError(loc, "a program may declare at most one %builtins directive")
	}
	v.seen = true
	v.loc = loc
	v.builtins = *b
	return nil
}
