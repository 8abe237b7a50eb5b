package main

import (
	"github.com/mattsse/cairo-lang-go/internal/ast"
	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"github.com/mattsse/cairo-lang-go/internal/token"
)

// unimplementedParser satisfies imports.Parser without owning a lexer or
// grammar: the front end that produces ast.File values from Cairo source
// text is an external collaborator this repository deliberately does not
// implement (spec.md's Non-goals name "the lexer/grammar" explicitly). It
// exists so cmd/cairo-sema can wire and exercise every other component
// (config, module resolution, the pass pipeline) end to end; a host
// embedding this engine supplies its own imports.Parser in its place.
type unimplementedParser struct{}

func (unimplementedParser) Parse(code, origin string) (*ast.File, error) {
	return nil, cerr.NewLexerError(token.NoLoc, "no parser registered: cmd/cairo-sema does not implement a Cairo lexer/grammar; supply one via imports.Parser")
}
