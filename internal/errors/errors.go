// Package errors defines the semantic analysis engine's error taxonomy.
//
// Grounded on cue/errors' pattern of a common Error interface plus List
// aggregation, and on the concrete variant set observed at construction
// sites in original_source's compiler/sema/identifiers.rs,
// compiler/sema/passes/import.rs and error.rs.
package errors

import (
	"fmt"
	"strings"

	"github.com/mattsse/cairo-lang-go/internal/token"
)

// Error is the common interface satisfied by every error this package
// constructs. It lets callers recover a source position without a type
// switch on every concrete variant.
type Error interface {
	error
	Loc() token.Loc
}

// locErr is embedded by every concrete error type below to satisfy Loc().
type locErr struct {
	loc token.Loc
}

func (e locErr) Loc() token.Loc { return e.loc }

// IOError wraps an underlying I/O failure (reading a module's source).
type IOError struct {
	locErr
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// NewIOError builds an IOError.
func NewIOError(path string, err error) *IOError {
	return &IOError{Path: path, Err: err}
}

// LexerError wraps a failure surfaced by the external lexer/parser. The
// lexer/parser is out of scope for this repository; this variant exists so
// a host that does own a lexer can report through the same taxonomy.
type LexerError struct {
	locErr
	Msg string
}

func (e *LexerError) Error() string { return fmt.Sprintf("lexer error: %s", e.Msg) }

func NewLexerError(loc token.Loc, msg string) *LexerError {
	return &LexerError{locErr{loc}, msg}
}

// CircularDependenciesError reports an import cycle, with the ancestor chain
// that detected it in recursion order.
type CircularDependenciesError struct {
	locErr
	Chain []string
}

func (e *CircularDependenciesError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Chain, " -> "))
}

func NewCircularDependenciesError(chain []string) *CircularDependenciesError {
	return &CircularDependenciesError{Chain: append([]string(nil), chain...)}
}

// ModuleNotFoundError reports a module name that could not be resolved
// under any CAIRO_PATH root.
type ModuleNotFoundError struct {
	locErr
	Module string
}

func (e *ModuleNotFoundError) Error() string { return fmt.Sprintf("module not found: %s", e.Module) }

func NewModuleNotFoundError(module string) *ModuleNotFoundError {
	return &ModuleNotFoundError{Module: module}
}

// InvalidImportError reports a malformed or inconsistent import directive,
// e.g. conflicting %lang directives between an importer and its import.
type InvalidImportError struct {
	locErr
	Msg string
}

func (e *InvalidImportError) Error() string { return fmt.Sprintf("invalid import: %s", e.Msg) }

func NewInvalidImportError(loc token.Loc, msg string) *InvalidImportError {
	return &InvalidImportError{locErr{loc}, msg}
}

// MissingIdentifierError reports a lookup for a name that has no
// registered definition anywhere in an accessible scope.
type MissingIdentifierError struct {
	locErr
	Name string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

func NewMissingIdentifierError(name string) *MissingIdentifierError {
	return &MissingIdentifierError{Name: name}
}

// NotIdentifierError reports a lookup that resolved to a scope rather than
// the identifier definition the caller required.
type NotIdentifierError struct {
	locErr
	Name string
}

func (e *NotIdentifierError) Error() string {
	return fmt.Sprintf("%q resolves to a scope, not an identifier", e.Name)
}

func NewNotIdentifierError(name string) *NotIdentifierError {
	return &NotIdentifierError{Name: name}
}

// NotScopeError reports a lookup that resolved to an identifier definition
// of the wrong kind where a subscope was required, e.g. indexing through a
// non-namespace, non-struct, non-function name.
type NotScopeError struct {
	locErr
	FullName string
	Rem      string
	Kind     string
}

func (e *NotScopeError) Error() string {
	return fmt.Sprintf("%q is a %s, cannot resolve %q through it", e.FullName, e.Kind, e.Rem)
}

func NewNotScopeError(fullName, rem, kind string) *NotScopeError {
	return &NotScopeError{FullName: fullName, Rem: rem, Kind: kind}
}

// IdentifierError is a free-form identifier-resolution failure that does
// not fit one of the more specific variants above (e.g. cyclic aliasing).
type IdentifierError struct {
	locErr
	Msg string
}

func (e *IdentifierError) Error() string { return e.Msg }

func NewIdentifierError(msg string) *IdentifierError {
	return &IdentifierError{Msg: msg}
}

// RedefinitionError reports a name inserted twice into the identifier table
// with incompatible definition kinds.
type RedefinitionError struct {
	locErr
	Name string
}

func (e *RedefinitionError) Error() string { return fmt.Sprintf("redefinition of %q", e.Name) }

func NewRedefinitionError(name string, loc token.Loc) *RedefinitionError {
	return &RedefinitionError{locErr{loc}, name}
}

// PreprocessError is a free-form error raised by a semantic pass (e.g. a
// decorator used where none is allowed).
type PreprocessError struct {
	locErr
	Msg string
}

func (e *PreprocessError) Error() string { return e.Msg }

func NewPreprocessError(loc token.Loc, msg string) *PreprocessError {
	return &PreprocessError{locErr{loc}, msg}
}

// MissingLabelError reports an if-statement whose synthesized labels were
// never assigned, which indicates UniqueLabel was skipped out of order.
type MissingLabelError struct {
	locErr
}

func (e *MissingLabelError) Error() string { return "missing label" }

func NewMissingLabelError(loc token.Loc) *MissingLabelError {
	return &MissingLabelError{locErr{loc}}
}

// List aggregates multiple Errors for front ends that choose to collect
// diagnostics across independent modules rather than abort on the first
// failure. Pass execution itself always short-circuits; nothing in this
// repository builds a List (cmd/cairo-sema's --keep-going flag is not read).
type List []Error

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Add appends err to the list if it is non-nil, wrapping it in the common
// Error interface if needed.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	if e, ok := err.(Error); ok {
		*l = append(*l, e)
		return
	}
	*l = append(*l, &genericError{err})
}

type genericError struct{ err error }

func (g *genericError) Error() string  { return g.err.Error() }
func (g *genericError) Loc() token.Loc { return token.NoLoc }

// Err returns nil if the list is empty, otherwise the list itself as an
// error.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
