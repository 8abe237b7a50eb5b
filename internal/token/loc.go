// Package token defines the minimal source-position type used across the
// semantic analysis engine.
//
// Grounded on cuelang.org/go/cue/token's Pos design, simplified to the byte
// offset pair the Cairo front end actually needs: the lexer/parser producing
// the AST is out of scope here, so there is no line/column table to own.
package token

import "fmt"

// Loc is a half-open byte-offset range [Start, End) into a single source
// file. It carries no file identity of its own; callers that need to
// attribute a Loc to a file track that alongside it (see program.CairoModule).
type Loc struct {
	Start int
	End   int
}

// NoLoc is the zero value, used for synthesized nodes that have no source
// position (e.g. the <start> module, synthesized scopes).
var NoLoc = Loc{}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Start, l.End)
}

// IsValid reports whether l refers to an actual source range.
func (l Loc) IsValid() bool {
	return l.End > l.Start
}
