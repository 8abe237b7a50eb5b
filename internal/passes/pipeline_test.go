package passes

import (
	"testing"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	"github.com/mattsse/cairo-lang-go/internal/program"
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/stretchr/testify/require"
)

// fixedReader/fixedParser stand in for a real module reader/lexer:
// fixtures are built directly as ast.File struct literals (no lexer is
// implemented in this repository), keyed by the module name the default
// pipeline's ModuleCollector resolves through imports.CodeReader.
type fixedReader map[string]string

func (r fixedReader) Read(name string) (string, string, error) { return r[name], name, nil }

type fixedParser map[string]*ast.File

func (p fixedParser) Parse(code, origin string) (*ast.File, error) { return p[code], nil }

func felt() *ast.CairoType { return &ast.CairoType{Kind: ast.TypeFelt} }

// selfRefStruct builds `struct Node { value: felt, next: Node* }` — a
// struct containing a pointer to itself, which must size to 2 felts
// rather than recurse forever.
func selfRefStruct() *ast.StructDef {
	return &ast.StructDef{
		Name: "Node",
		Members: []ast.MemberInfo{
			{Name: "value", Type: *felt()},
			{Name: "next", Type: ast.CairoType{
				Kind:       ast.TypePointer,
				Elem:       &ast.CairoType{Kind: ast.TypeStructRef, StructName: scope.FromString("Node")},
			}},
		},
	}
}

func mainFunction(body ...ast.Instruction) *ast.FunctionDef {
	return &ast.FunctionDef{
		Name:         "main",
		InputArgs:    []ast.TypedIdentifier{{ID: "x", Type: felt()}},
		ReturnValues: []ast.TypedIdentifier{{ID: "y", Type: felt()}},
		Instructions: body,
	}
}

func TestPipelineResolvesStructAndFunctionScopes(t *testing.T) {
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		selfRefStruct(),
		mainFunction(
			&ast.IfStatement{
				Cond: ast.BoolExpr{X: &ast.IdExpr{ID: scope.FromString("x")}, Y: &ast.IntExpr{Value: "0"}},
				Instructions: []ast.Instruction{&ast.ReturnInstruction{}},
				ElseBranch:   []ast.Instruction{&ast.ReturnInstruction{}},
			},
		),
	}}

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
		&DirectivesCollector{},
		&StructCollector{},
		&DependencyGraphPass{},
		&PreprocessPass{},
	)
	require.NoError(t, pm.Run(prg))
	prg.Identifiers.ScopeTracker().EnterLang(scope.Root())

	size, err := prg.Identifiers.GetStructSize(scope.FromString("main.Node"))
	require.NoError(t, err)
	require.Equal(t, 2, size)

	args, err := prg.Identifiers.GetStructDefinition(scope.FromString("main.main.Args"))
	require.NoError(t, err)
	require.Len(t, args.Members, 1)
	require.Equal(t, "x", args.Members[0].Name)
	require.Equal(t, 1, args.Size)

	ret, err := prg.Identifiers.GetStructDefinition(scope.FromString("main.main.Return"))
	require.NoError(t, err)
	require.Len(t, ret.Members, 1)
	require.Equal(t, "y", ret.Members[0].Name)
	require.Equal(t, 1, ret.Size)

	ifStmt := file.Instructions[2].(*ast.FunctionDef).Instructions[0].(*ast.IfStatement)
	require.NotEmpty(t, ifStmt.LabelNeq)
	require.NotEmpty(t, ifStmt.LabelEnd)
	require.NotEqual(t, ifStmt.LabelNeq, ifStmt.LabelEnd)
}

// TestPipelineSynthesizesArgsAsStructWithOffsets builds `foo(a: S, b: felt)`
// where S is a 2-felt struct, and checks foo.Args resolves as a real Struct
// definition with accumulated member offsets (a@0, b@2) and total size 3.
func TestPipelineSynthesizesArgsAsStructWithOffsets(t *testing.T) {
	sName := scope.FromString("S")
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.StructDef{Name: "S", Members: []ast.MemberInfo{
			{Name: "value", Type: *felt()},
			{Name: "next", Type: *felt()},
		}},
		&ast.FunctionDef{
			Name: "foo",
			InputArgs: []ast.TypedIdentifier{
				{ID: "a", Type: &ast.CairoType{Kind: ast.TypeStructRef, StructName: sName}},
				{ID: "b", Type: felt()},
			},
			Instructions: []ast.Instruction{&ast.ReturnInstruction{}},
		},
	}}

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
		&DirectivesCollector{},
		&StructCollector{},
	)
	require.NoError(t, pm.Run(prg))
	prg.Identifiers.ScopeTracker().EnterLang(scope.Root())

	args, err := prg.Identifiers.GetStructDefinition(scope.FromString("main.foo.Args"))
	require.NoError(t, err)
	require.Equal(t, 3, args.Size)
	require.Len(t, args.Members, 2)
	require.Equal(t, "a", args.Members[0].Name)
	require.Equal(t, 0, args.Members[0].Offset)
	require.Equal(t, "b", args.Members[1].Name)
	require.Equal(t, 2, args.Members[1].Offset)

	ret, err := prg.Identifiers.GetStructDefinition(scope.FromString("main.foo.Return"))
	require.NoError(t, err)
	require.Empty(t, ret.Members)
	require.Equal(t, 0, ret.Size)
}

// TestPipelineNamespaceSynthesizesEmptyArgScopes checks that a namespace
// (which has no parameter lists of its own) still gets the three empty
// Args/ImplicitArgs/Return struct definitions.
func TestPipelineNamespaceSynthesizesEmptyArgScopes(t *testing.T) {
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.Namespace{Name: "NS"},
	}}

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
		&DirectivesCollector{},
		&StructCollector{},
	)
	require.NoError(t, pm.Run(prg))
	prg.Identifiers.ScopeTracker().EnterLang(scope.Root())

	for _, sub := range []string{"Args", "ImplicitArgs", "Return"} {
		sd, err := prg.Identifiers.GetStructDefinition(scope.FromString("main.NS." + sub))
		require.NoError(t, err)
		require.Empty(t, sd.Members)
		require.Equal(t, 0, sd.Size)
	}
}

// TestPipelineRejectsDuplicateStructMember checks that a struct with two
// members of the same name is rejected by StructCollector.
func TestPipelineRejectsDuplicateStructMember(t *testing.T) {
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.StructDef{Name: "Dup", Members: []ast.MemberInfo{
			{Name: "x", Type: *felt()},
			{Name: "x", Type: *felt()},
		}},
	}}

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
		&DirectivesCollector{},
		&StructCollector{},
	)
	require.Error(t, pm.Run(prg))
}

// TestPipelineRejectsBuiltinsAcrossModules checks that two different
// modules each declaring %builtins is rejected program-wide, not just
// within a single module.
func TestPipelineRejectsBuiltinsAcrossModules(t *testing.T) {
	mainFile := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.BuiltinsDirective{Builtins: []ast.Builtin{{Kind: ast.BuiltinRangeCheck, Name: "range_check"}}},
		&ast.ImportDirective{Path: scope.FromString("helper")},
	}}
	helperFile := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.BuiltinsDirective{Builtins: []ast.Builtin{{Kind: ast.BuiltinPedersen, Name: "pedersen"}}},
	}}

	reader := fixedReader{"main": "main-src", "helper": "helper-src"}
	parser := fixedParser{"main-src": mainFile, "helper-src": helperFile}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
		&DirectivesCollector{},
	)
	require.Error(t, pm.Run(prg))
}

// TestPipelineAllowsLocalVarDeclarationAndRebind checks that a single
// `local` declaration succeeds (IdentifierCollector visits the same name
// twice per declaration: once as a plain TypedIdentifier, once as a
// LocalVar) and that declaring the same local name a second time in the
// same scope also succeeds, as a legal rebind rather than a redefinition.
func TestPipelineAllowsLocalVarDeclarationAndRebind(t *testing.T) {
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		mainFunction(
			&ast.LocalInstruction{ID: ast.TypedIdentifier{ID: "x", Type: felt()}},
			&ast.LocalInstruction{ID: ast.TypedIdentifier{ID: "x", Type: felt()}},
			&ast.ReturnInstruction{},
		),
	}}

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
	)
	require.NoError(t, pm.Run(prg))
}

func TestPipelineRejectsRedefinition(t *testing.T) {
	file := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.LabelInstruction{Name: "foo"},
		mainFunction(),
	}}
	file.Instructions[2].(*ast.FunctionDef).Name = "foo" // collides with the label above

	const code = "main-src"
	reader := fixedReader{"main": code}
	parser := fixedParser{code: file}

	prg := program.New(scope.FromString("main"), nil)
	pm := NewPassManager(
		&ModuleCollector{Reader: reader, Parser: parser},
		&UniqueLabel{},
		&IdentifierCollector{},
	)
	err := pm.Run(prg)
	require.Error(t, err)
}
