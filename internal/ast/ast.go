// Package ast defines the Cairo abstract syntax tree consumed by the
// semantic analysis engine, and the visitor framework used to walk it.
//
// The lexer/parser that produces this tree is an external, black-box
// collaborator (spec.md's Purpose & Scope Non-goals) — this package only
// defines the shapes that collaborator hands over. Node shapes and the
// Visitable dispatch order are grounded on
// original_source/src/parser/ast.rs; the interface-per-sum-type idiom and
// the overall package shape follow cue/ast/ast.go.
package ast

import (
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/mattsse/cairo-lang-go/internal/token"
)

// Instruction is satisfied by every top-level statement/declaration node
// that can appear in a Cairo file body or a function/namespace body. It is
// a closed sum type: only the types defined in this package implement it.
type Instruction interface {
	Visit(v Visitor) error
	instruction()
}

// Expr is satisfied by every expression node. Expressions are leaves from
// the visitor's point of view: VisitExpr is called once per expression
// site and does not recurse into sub-expressions, matching the original
// engine (sub-expression rewriting is not part of this analysis).
type Expr interface {
	exprLoc() token.Loc
	expr()
}

// File is the root node produced by the parser for a single Cairo source
// file.
type File struct {
	Instructions []Instruction
}

// --- Builtins and decorators -------------------------------------------------

// BuiltinKind enumerates the well-known %builtins tokens.
type BuiltinKind int

const (
	BuiltinPedersen BuiltinKind = iota
	BuiltinRangeCheck
	BuiltinEcdsa
	BuiltinBitwise
	BuiltinOther
)

// Builtin is one entry of a %builtins directive.
type Builtin struct {
	Kind BuiltinKind
	// Name holds the literal source token; for the well-known kinds this
	// is redundant with Kind but kept so diagnostics can quote exactly
	// what appeared in source.
	Name string
}

// NewBuiltin classifies a builtin token the way the original maps
// "pedersen"/"range_check"/"ecdsa" strings onto named variants, defaulting
// to BuiltinOther for anything else.
func NewBuiltin(name string) Builtin {
	switch name {
	case "pedersen":
		return Builtin{Kind: BuiltinPedersen, Name: name}
	case "range_check":
		return Builtin{Kind: BuiltinRangeCheck, Name: name}
	case "ecdsa":
		return Builtin{Kind: BuiltinEcdsa, Name: name}
	case "bitwise":
		return Builtin{Kind: BuiltinBitwise, Name: name}
	default:
		return Builtin{Kind: BuiltinOther, Name: name}
	}
}

// DecoratorKind enumerates the well-known function/struct decorators.
type DecoratorKind int

const (
	DecoratorView DecoratorKind = iota
	DecoratorExternal
	DecoratorConstructor
	DecoratorStorageVar
	DecoratorOther
)

// Decorator is one `@name` annotation on a function, namespace or struct.
type Decorator struct {
	Kind DecoratorKind
	Name string
}

// NewDecorator classifies a decorator token analogously to NewBuiltin.
func NewDecorator(name string) Decorator {
	switch name {
	case "view":
		return Decorator{Kind: DecoratorView, Name: name}
	case "external":
		return Decorator{Kind: DecoratorExternal, Name: name}
	case "constructor":
		return Decorator{Kind: DecoratorConstructor, Name: name}
	case "storage_var":
		return Decorator{Kind: DecoratorStorageVar, Name: name}
	default:
		return Decorator{Kind: DecoratorOther, Name: name}
	}
}

// --- Types --------------------------------------------------------------

// CairoTypeKind discriminates the CairoType sum type.
type CairoTypeKind int

const (
	TypeFelt CairoTypeKind = iota
	TypeStructRef
	TypeTuple
	TypePointer
)

// PointerKind discriminates single vs. double pointer types (`T*`, `T**`).
type PointerKind int

const (
	PointerSingle PointerKind = iota
	PointerDouble
)

// CairoType is the closed sum type for type expressions: felt, a named
// struct reference, a tuple, or a pointer.
type CairoType struct {
	Kind CairoTypeKind
	Loc  token.Loc

	// valid when Kind == TypeStructRef
	StructName      scope.Name
	IsFullyResolved bool

	// valid when Kind == TypeTuple
	Tuple []CairoType

	// valid when Kind == TypePointer
	PointerKind PointerKind
	Elem        *CairoType
}

// ResolvedScope returns the scope name a TypeStructRef refers to. It
// panics if called on a non-struct-ref type.
func (t CairoType) ResolvedScope() scope.Name {
	if t.Kind != TypeStructRef {
		panic("ast: ResolvedScope on non-struct CairoType")
	}
	return t.StructName
}

// --- Identifiers, members, typed identifiers -----------------------------

// AliasedID is a (possibly import-)qualified identifier with an optional
// local alias, e.g. `foo.bar as baz` in an import list or a with-statement.
type AliasedID struct {
	ID    scope.Name
	Alias string // "" when no `as` clause is present
	Loc   token.Loc
}

// BoundName is the name this identifier is registered under in the
// importing/enclosing scope: the alias if present, otherwise the last
// path segment of ID.
func (a AliasedID) BoundName() string {
	if a.Alias != "" {
		return a.Alias
	}
	if _, last, ok := a.ID.RevSplit(); ok {
		return last
	}
	return a.ID.Name()
}

// Member is a struct member's bare name/type pair.
type Member struct {
	Name string
	Type CairoType
}

// MemberInfo is a struct member together with its source location.
type MemberInfo struct {
	Name string
	Type CairoType
	Loc  token.Loc
}

// TypedIdentifier is a name with an optional type annotation, used for
// function arguments, return values, and local/temp var declarations.
type TypedIdentifier struct {
	IsLocal bool
	ID      string
	Type    *CairoType // nil when untyped
	Loc     token.Loc
}

// --- Expressions ----------------------------------------------------------

type IntExpr struct {
	Loc   token.Loc
	Value string // decimal literal, kept as text: arithmetic is an emitter concern
}

func (e *IntExpr) exprLoc() token.Loc { return e.Loc }
func (*IntExpr) expr()                {}

type HexIntExpr struct {
	Loc   token.Loc
	Value string
}

func (e *HexIntExpr) exprLoc() token.Loc { return e.Loc }
func (*HexIntExpr) expr()                {}

type ShortStringExpr struct {
	Loc   token.Loc
	Value string
}

func (e *ShortStringExpr) exprLoc() token.Loc { return e.Loc }
func (*ShortStringExpr) expr()                {}

type IdExpr struct {
	Loc token.Loc
	ID  scope.Name
}

func (e *IdExpr) exprLoc() token.Loc { return e.Loc }
func (*IdExpr) expr()                {}

type RegisterKind int

const (
	RegisterAP RegisterKind = iota
	RegisterFP
)

type RegisterExpr struct {
	Loc  token.Loc
	Kind RegisterKind
}

func (e *RegisterExpr) exprLoc() token.Loc { return e.Loc }
func (*RegisterExpr) expr()                {}

// ExprAssignment is a function-call argument: a bare expression, or a
// named argument `name=expr`.
type ExprAssignment struct {
	Name string // "" for a bare positional argument
	Expr Expr
}

type FunctionCallExpr struct {
	Loc          token.Loc
	ID           scope.Name
	ImplicitArgs []ExprAssignment // nil when no implicit-arg clause given
	Args         []ExprAssignment
}

func (e *FunctionCallExpr) exprLoc() token.Loc { return e.Loc }
func (*FunctionCallExpr) expr()                {}

type DerefExpr struct {
	Loc token.Loc
	X   Expr
}

func (e *DerefExpr) exprLoc() token.Loc { return e.Loc }
func (*DerefExpr) expr()                {}

type SubscriptExpr struct {
	Loc   token.Loc
	X     Expr
	Index Expr
}

func (e *SubscriptExpr) exprLoc() token.Loc { return e.Loc }
func (*SubscriptExpr) expr()                {}

type DotExpr struct {
	Loc    token.Loc
	X      Expr
	Member string
}

func (e *DotExpr) exprLoc() token.Loc { return e.Loc }
func (*DotExpr) expr()                {}

type CastExpr struct {
	Loc token.Loc
	X   Expr
	Typ CairoType
}

func (e *CastExpr) exprLoc() token.Loc { return e.Loc }
func (*CastExpr) expr()                {}

type ParenthesesExpr struct {
	Loc token.Loc
	X   Expr
}

func (e *ParenthesesExpr) exprLoc() token.Loc { return e.Loc }
func (*ParenthesesExpr) expr()                {}

type AddressExpr struct {
	Loc token.Loc
	X   Expr
}

func (e *AddressExpr) exprLoc() token.Loc { return e.Loc }
func (*AddressExpr) expr()                {}

type NegExpr struct {
	Loc token.Loc
	X   Expr
}

func (e *NegExpr) exprLoc() token.Loc { return e.Loc }
func (*NegExpr) expr()                {}

type BinaryOp int

const (
	OpPow BinaryOp = iota
	OpMul
	OpDiv
	OpAdd
	OpSub
)

type BinaryExpr struct {
	Loc token.Loc
	Op  BinaryOp
	X   Expr
	Y   Expr
}

func (e *BinaryExpr) exprLoc() token.Loc { return e.Loc }
func (*BinaryExpr) expr()                {}

// BoolOp discriminates `==`/`!=` conditions used in if-statements.
type BoolOp int

const (
	BoolEqual BoolOp = iota
	BoolNotEqual
)

// BoolExpr is the condition of an if-statement.
type BoolExpr struct {
	Op BoolOp
	X  Expr
	Y  Expr
}

// --- Directives -----------------------------------------------------------

// LangDirective is `%lang <name>`.
type LangDirective struct {
	Loc token.Loc
	ID  scope.Name
}

func (d *LangDirective) Visit(v Visitor) error {
	id := d.ID
	if err := v.VisitLang(&id); err != nil {
		return err
	}
	d.ID = id
	return nil
}
func (*LangDirective) instruction() {}

// BuiltinsDirective is `%builtins a b c`.
type BuiltinsDirective struct {
	Loc      token.Loc
	Builtins []Builtin
}

func (d *BuiltinsDirective) Visit(v Visitor) error {
	return v.VisitBuiltins(&d.Builtins, d.Loc)
}
func (*BuiltinsDirective) instruction() {}

// --- Imports ---------------------------------------------------------------

type FunctionImportKind int

const (
	ImportDirect FunctionImportKind = iota
	ImportParenthesized
)

// FunctionImport is the `(a, b as c)` or bare `a, b as c` suffix of an
// import statement.
type FunctionImport struct {
	Kind  FunctionImportKind
	Loc   token.Loc
	Items []AliasedID
}

// ImportDirective is `from <path> import <functions>`.
type ImportDirective struct {
	Loc       token.Loc
	Path      scope.Name
	Functions *FunctionImport // nil for a bare `import <path>` with no symbols
}

// Name returns the dotted module path this import references, the
// identity used for recursive import collection.
func (i *ImportDirective) Name() string { return i.Path.Name() }

// AliasedIdentifiers returns the imported symbol list, or nil if this
// import brings in no individual symbols.
func (i *ImportDirective) AliasedIdentifiers() []AliasedID {
	if i.Functions == nil {
		return nil
	}
	return i.Functions.Items
}

func (i *ImportDirective) Visit(v Visitor) error {
	return v.VisitImport(i)
}
func (*ImportDirective) instruction() {}

// --- Const, Member, Let, Local/Temp var, Return, Assert ---------------------

type ConstantDef struct {
	Name string
	Init Expr
	Loc  token.Loc
}

func (c *ConstantDef) Visit(v Visitor) error {
	return v.VisitConstDef(c)
}
func (*ConstantDef) instruction() {}

// MemberInstruction is a `member name : type` line inside a struct body.
// It does not implement Instruction on its own terms in the original
// grammar (struct bodies hold MemberInfo directly); kept here only as the
// Instruction-shaped wrapper some grammars allow at top level.
type MemberInstruction struct {
	Info MemberInfo
}

func (m *MemberInstruction) Visit(v Visitor) error {
	t := m.Info.Type
	return v.VisitType(&t)
}
func (*MemberInstruction) instruction() {}

// RefBindingKind discriminates the left-hand side of a let statement.
type RefBindingKind int

const (
	RefBindingID RefBindingKind = iota
	RefBindingList
)

// RefBinding is the left-hand side of a `let` statement: either a single
// typed identifier or a `(a, b, c)` unpack list.
type RefBinding struct {
	Kind RefBindingKind
	ID   TypedIdentifier   // valid when Kind == RefBindingID
	List []TypedIdentifier // valid when Kind == RefBindingList
}

// RValueKind discriminates the right-hand side of a let statement.
type RValueKind int

const (
	RValueCall RValueKind = iota
	RValueExprKind
)

// RValue is the right-hand side of a `let` statement.
type RValue struct {
	Kind RValueKind
	Call *FunctionCallExpr // valid when Kind == RValueCall
	Expr Expr              // valid when Kind == RValueExprKind
}

// LetInstruction is `let <ref> = <rvalue>`.
type LetInstruction struct {
	Ref RefBinding
	RV  RValue
	Loc token.Loc
}

func (l *LetInstruction) Visit(v Visitor) error {
	return visitReference(v, &l.Ref, &l.RV)
}
func (*LetInstruction) instruction() {}

// visitReference implements the three-way visit_reference dispatch: a
// single bound identifier assigned from a plain expression is an element
// reference; a single bound identifier assigned from a call is a
// return-value reference; a list binding is always an unpack binding,
// regardless of its right-hand side.
func visitReference(v Visitor, ref *RefBinding, rv *RValue) error {
	switch ref.Kind {
	case RefBindingList:
		return v.VisitUnpackBinding(ref.List, rv)
	case RefBindingID:
		switch rv.Kind {
		case RValueCall:
			return v.VisitReturnValueReference(&ref.ID, rv.Call)
		default:
			return v.VisitElementReference(&ref.ID, &rv.Expr)
		}
	default:
		return nil
	}
}

type LocalInstruction struct {
	ID   TypedIdentifier
	Init Expr // nil when uninitialized
	Loc  token.Loc
}

func (l *LocalInstruction) Visit(v Visitor) error {
	if err := v.VisitTypedIdentifier(&l.ID); err != nil {
		return err
	}
	return v.VisitLocalVar(&l.ID, &l.Init)
}
func (*LocalInstruction) instruction() {}

type TempVarInstruction struct {
	ID   TypedIdentifier
	Init Expr // nil when uninitialized
	Loc  token.Loc
}

func (t *TempVarInstruction) Visit(v Visitor) error {
	if err := v.VisitTypedIdentifier(&t.ID); err != nil {
		return err
	}
	return v.VisitTempVar(&t.ID, &t.Init)
}
func (*TempVarInstruction) instruction() {}

type AssertInstruction struct {
	X, Y Expr
	Loc  token.Loc
}

func (a *AssertInstruction) Visit(v Visitor) error {
	if err := v.VisitExpr(&a.X); err != nil {
		return err
	}
	return v.VisitExpr(&a.Y)
}
func (*AssertInstruction) instruction() {}

type StaticAssertInstruction struct {
	X, Y Expr
	Loc  token.Loc
}

func (a *StaticAssertInstruction) Visit(v Visitor) error {
	if err := v.VisitExpr(&a.X); err != nil {
		return err
	}
	return v.VisitExpr(&a.Y)
}
func (*StaticAssertInstruction) instruction() {}

type ReturnInstruction struct {
	Values []Expr
	Loc    token.Loc
}

func (r *ReturnInstruction) Visit(v Visitor) error {
	for i := range r.Values {
		if err := v.VisitExpr(&r.Values[i]); err != nil {
			return err
		}
	}
	return nil
}
func (*ReturnInstruction) instruction() {}

type ReturnFunctionCallInstruction struct {
	Call *FunctionCallExpr
	Loc  token.Loc
}

func (r *ReturnFunctionCallInstruction) Visit(v Visitor) error {
	var e Expr = r.Call
	return v.VisitExpr(&e)
}
func (*ReturnFunctionCallInstruction) instruction() {}

// --- Label, AllocLocals, jumps ---------------------------------------------

type LabelInstruction struct {
	Name string
	Loc  token.Loc
}

func (l *LabelInstruction) Visit(v Visitor) error {
	return v.VisitLabel(&l.Name, l.Loc)
}
func (*LabelInstruction) instruction() {}

type AllocLocalsInstruction struct {
	Loc token.Loc
}

func (*AllocLocalsInstruction) Visit(v Visitor) error { return nil }
func (*AllocLocalsInstruction) instruction()          {}

type JmpKind int

const (
	JmpRel JmpKind = iota
	JmpAbs
	JmpID
	JmpRelIf
	JmpIDIf
)

type Jmp struct {
	Kind      JmpKind
	Target    Expr   // valid for Rel/Abs
	ID        string // valid for ID/IDIf
	Condition Expr   // valid for RelIf/IDIf
}

type JmpInstruction struct {
	J   Jmp
	Loc token.Loc
}

func (j *JmpInstruction) Visit(v Visitor) error {
	if j.J.Target != nil {
		if err := v.VisitExpr(&j.J.Target); err != nil {
			return err
		}
	}
	if j.J.Condition != nil {
		if err := v.VisitExpr(&j.J.Condition); err != nil {
			return err
		}
	}
	return nil
}
func (*JmpInstruction) instruction() {}

type ApAddAssignInstruction struct {
	X   Expr
	Loc token.Loc
}

func (a *ApAddAssignInstruction) Visit(v Visitor) error { return v.VisitExpr(&a.X) }
func (*ApAddAssignInstruction) instruction()            {}

type ApAddInstruction struct {
	X   Expr
	Loc token.Loc
}

func (a *ApAddInstruction) Visit(v Visitor) error { return v.VisitExpr(&a.X) }
func (*ApAddInstruction) instruction()            {}

type RetInstruction struct{ Loc token.Loc }

func (*RetInstruction) Visit(v Visitor) error { return nil }
func (*RetInstruction) instruction()          {}

type CallKind int

const (
	CallRel CallKind = iota
	CallAbs
	CallID
)

type Call struct {
	Kind CallKind
	X    Expr       // valid for Rel/Abs
	ID   scope.Name // valid for ID
}

type CallInstruction struct {
	C   Call
	Loc token.Loc
}

func (c *CallInstruction) Visit(v Visitor) error {
	if c.C.X != nil {
		return v.VisitExpr(&c.C.X)
	}
	return nil
}
func (*CallInstruction) instruction() {}

type DataWordInstruction struct {
	Value Expr
	Loc   token.Loc
}

func (d *DataWordInstruction) Visit(v Visitor) error { return v.VisitExpr(&d.Value) }
func (*DataWordInstruction) instruction()            {}

// --- If, Function, Namespace, Struct, With ---------------------------------

// IfStatement carries the two synthesized label names UniqueLabel assigns
// (LabelNeq for the else branch, LabelEnd for the join point); both are
// empty until that pass has run.
type IfStatement struct {
	Cond        BoolExpr
	Instructions []Instruction
	ElseBranch  []Instruction // nil when there is no else branch
	LabelNeq    string
	LabelEnd    string
	Loc         token.Loc
}

func (s *IfStatement) Visit(v Visitor) error {
	if err := v.VisitExpr(&s.Cond.X); err != nil {
		return err
	}
	if err := v.VisitExpr(&s.Cond.Y); err != nil {
		return err
	}
	if err := v.VisitIf(s); err != nil {
		return err
	}
	for _, i := range s.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	for _, i := range s.ElseBranch {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return nil
}
func (*IfStatement) instruction() {}

type FunctionDef struct {
	Decorators    []Decorator
	Name          string
	ImplicitArgs  []TypedIdentifier // nil when the function has no implicit-arg clause
	InputArgs     []TypedIdentifier
	ReturnValues  []TypedIdentifier // nil when the function returns nothing
	Instructions  []Instruction
	Loc           token.Loc
}

func (f *FunctionDef) Visit(v Visitor) error {
	if err := v.EnterFunction(f); err != nil {
		return err
	}
	for i := range f.ImplicitArgs {
		if err := v.VisitTypedIdentifier(&f.ImplicitArgs[i]); err != nil {
			return err
		}
	}
	for i := range f.InputArgs {
		if err := v.VisitTypedIdentifier(&f.InputArgs[i]); err != nil {
			return err
		}
	}
	for i := range f.ReturnValues {
		if err := v.VisitTypedIdentifier(&f.ReturnValues[i]); err != nil {
			return err
		}
	}
	for _, i := range f.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return v.ExitFunction(f)
}
func (*FunctionDef) instruction() {}

type Namespace struct {
	Decorators   []Decorator
	Name         string
	Instructions []Instruction
	Loc          token.Loc
}

func (n *Namespace) Visit(v Visitor) error {
	if err := v.EnterNamespace(n); err != nil {
		return err
	}
	for _, i := range n.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return v.ExitNamespace(n)
}
func (*Namespace) instruction() {}

type StructDef struct {
	Decorators []Decorator
	Name       string
	Members    []MemberInfo
	Loc        token.Loc
}

func (s *StructDef) Visit(v Visitor) error {
	return v.VisitStructDef(s)
}
func (*StructDef) instruction() {}

type WithStatement struct {
	IDs          []AliasedID
	Instructions []Instruction
	Loc          token.Loc
}

func (w *WithStatement) Visit(v Visitor) error {
	if err := v.VisitWithStatement(w); err != nil {
		return err
	}
	for _, i := range w.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return nil
}
func (*WithStatement) instruction() {}

type WithAttrStatement struct {
	ID           string
	AttrVal      []string // nil when the attribute carries no value list
	Instructions []Instruction
	Loc          token.Loc
}

func (w *WithAttrStatement) Visit(v Visitor) error {
	if err := v.VisitWithAttrStatement(w); err != nil {
		return err
	}
	for _, i := range w.Instructions {
		if err := i.Visit(v); err != nil {
			return err
		}
	}
	return nil
}
func (*WithAttrStatement) instruction() {}

type HintInstruction struct {
	Code string
	Loc  token.Loc
}

func (*HintInstruction) Visit(v Visitor) error { return nil }
func (*HintInstruction) instruction()          {}
