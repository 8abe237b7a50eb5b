// Package program defines the in-memory artifacts the semantic analysis
// engine produces and consumes: the set of source modules under analysis
// (PreprocessedProgram), the synthesized <start> module and DefaultPrime.
// It does not define an assembled-program (Program/DebugInfo) type.
//
// Grounded on original_source/src/compiler/sema/mod.rs (CairoContent,
// PreprocessedProgram, CairoModule) and original_source/src/compiler/
// {mod.rs,constants.rs} for StartCode and DefaultPrime (see SPEC_FULL.md
// §3).
package program

import (
	"math/big"
	"path/filepath"
	"strings"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	"github.com/mattsse/cairo-lang-go/internal/identifiers"
	"github.com/mattsse/cairo-lang-go/internal/scope"
)

// DefaultPrime is the Cairo field's modulus, 2^251 + 17*2^192 + 1.
var DefaultPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	term := new(big.Int).Lsh(big.NewInt(17), 192)
	p.Add(p, term)
	p.Add(p, big.NewInt(1))
	return p
}()

// StartFileName names the synthesized <start> module (see StartModule).
const StartFileName = "<start>"

// StartCode is the fixed instruction text of the synthesized <start>
// module: it calls main and traps, matching
// original_source/src/compiler/constants.rs's START_CODE.
const StartCode = `__start__:
ap += main.Args.SIZE + main.ImplicitArgs.SIZE
call main

__end__:
jmp rel 0
`

// StartModule returns the synthetic <start> module's content pair, used
// when internal/config enables start-wrapper synthesis.
func StartModule() CairoContent {
	return CairoContent{Code: StartCode, Path: StartFileName}
}

// CairoContent is a module's raw source text plus the path (or synthetic
// marker) it was read from.
type CairoContent struct {
	Code string
	Path string
}

// Name derives the module's file-stem name from its path, the way
// original_source's CairoContent::name() does.
func (c CairoContent) Name() string {
	base := filepath.Base(c.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CairoModule pairs a module's dotted name with its parsed AST.
type CairoModule struct {
	ModuleName string
	File       *ast.File
}

// PreprocessedProgram is the mutable state every pass reads and writes:
// the source modules under analysis, the entry module, and the
// identifier table being built up across the pipeline.
type PreprocessedProgram struct {
	Codes       []CairoContent
	MainScope   scope.Name
	Modules     []CairoModule
	Builtins    []ast.Builtin
	Identifiers *identifiers.Identifiers
}

// New creates a PreprocessedProgram rooted at mainScope, seeded with the
// codes the driver already has in hand (typically just the entry
// module's own source, before ModuleCollector expands it).
func New(mainScope scope.Name, codes []CairoContent) *PreprocessedProgram {
	return &PreprocessedProgram{
		MainScope:   mainScope,
		Codes:       codes,
		Identifiers: identifiers.New(),
	}
}
