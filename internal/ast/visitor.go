package ast

import (
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/mattsse/cairo-lang-go/internal/token"
)

// Visitor is implemented by every semantic analysis pass. Every method
// receives a pointer to the node (or the relevant part of it) so a pass can
// rewrite it in place; of the concrete passes in internal/passes only
// UniqueLabel does so (it fills in IfStatement's synthesized labels), but
// the seam is kept since the identifier table resolution step
// conceptually owns the AST exclusively while it runs.
//
// Grounded on original_source/src/compiler/sema/ast.rs's Visitor trait,
// extended with the visit_reference dispatch split
// (VisitElementReference/VisitReturnValueReference/VisitUnpackBinding) and
// the struct/with-statement hooks the original's ast.rs trait did not
// carry but its call sites (struct_collect.rs, import.rs) and spec.md 4.1
// require.
type Visitor interface {
	VisitLang(id *scope.Name) error
	VisitConstDef(c *ConstantDef) error
	VisitLabel(name *string, loc token.Loc) error
	VisitTypedIdentifier(t *TypedIdentifier) error
	VisitExpr(e *Expr) error
	VisitType(t *CairoType) error

	VisitElementReference(id *TypedIdentifier, expr *Expr) error
	VisitReturnValueReference(id *TypedIdentifier, call *FunctionCallExpr) error
	VisitUnpackBinding(ids []TypedIdentifier, rv *RValue) error

	VisitBuiltins(b *[]Builtin, loc token.Loc) error
	VisitImport(i *ImportDirective) error

	EnterFunction(f *FunctionDef) error
	ExitFunction(f *FunctionDef) error
	EnterNamespace(n *Namespace) error
	ExitNamespace(n *Namespace) error

	VisitIf(s *IfStatement) error
	VisitLocalVar(t *TypedIdentifier, init *Expr) error
	VisitTempVar(t *TypedIdentifier, init *Expr) error

	VisitStructDef(s *StructDef) error
	VisitWithStatement(w *WithStatement) error
	VisitWithAttrStatement(w *WithAttrStatement) error
}

// BaseVisitor implements every Visitor method as a no-op returning nil.
// Concrete passes embed it and override only the hooks they care about,
// mirroring the original trait's default Ok(()) bodies.
type BaseVisitor struct{}

func (BaseVisitor) VisitLang(*scope.Name) error                                    { return nil }
func (BaseVisitor) VisitConstDef(*ConstantDef) error                               { return nil }
func (BaseVisitor) VisitLabel(*string, token.Loc) error                            { return nil }
func (BaseVisitor) VisitTypedIdentifier(*TypedIdentifier) error                    { return nil }
func (BaseVisitor) VisitExpr(*Expr) error                                          { return nil }
func (BaseVisitor) VisitType(*CairoType) error                                     { return nil }
func (BaseVisitor) VisitElementReference(*TypedIdentifier, *Expr) error            { return nil }
func (BaseVisitor) VisitReturnValueReference(*TypedIdentifier, *FunctionCallExpr) error {
	return nil
}
func (BaseVisitor) VisitUnpackBinding([]TypedIdentifier, *RValue) error { return nil }
func (BaseVisitor) VisitBuiltins(*[]Builtin, token.Loc) error           { return nil }
func (BaseVisitor) VisitImport(*ImportDirective) error                  { return nil }
func (BaseVisitor) EnterFunction(*FunctionDef) error                    { return nil }
func (BaseVisitor) ExitFunction(*FunctionDef) error                     { return nil }
func (BaseVisitor) EnterNamespace(*Namespace) error                     { return nil }
func (BaseVisitor) ExitNamespace(*Namespace) error                      { return nil }
func (BaseVisitor) VisitIf(*IfStatement) error                          { return nil }
func (BaseVisitor) VisitLocalVar(*TypedIdentifier, *Expr) error         { return nil }
func (BaseVisitor) VisitTempVar(*TypedIdentifier, *Expr) error          { return nil }
func (BaseVisitor) VisitStructDef(*StructDef) error                     { return nil }
func (BaseVisitor) VisitWithStatement(*WithStatement) error             { return nil }
func (BaseVisitor) VisitWithAttrStatement(*WithAttrStatement) error     { return nil }

// VisitFile walks every top-level instruction in f with v, in source
// order, stopping at the first error.
func VisitFile(f *File, v Visitor) error {
	for _, i := range f.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return nil
}
