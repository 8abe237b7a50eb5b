package identifiers

import (
	"testing"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/stretchr/testify/require"
)

func TestDefineFreshSlotThenRedefinitionRejected(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	require.NoError(t, ids.Define(scope.FromString("main.foo"), Definition{Kind: DefLabel}))

	err := ids.Define(scope.FromString("main.foo"), Definition{Kind: DefConst})
	require.Error(t, err)
}

func TestUnresolvedPlaceholderFinalizesOnMatchingType(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	name := scope.FromString("main.Point")
	require.NoError(t, ids.Define(name, Unresolved(Definition{Kind: DefStruct})))

	final := Definition{Kind: DefStruct, Struct: &StructDefinition{Name: name, Size: 2}}
	require.NoError(t, ids.Define(name, final))

	def, err := ids.GetByFullName(name)
	require.NoError(t, err)
	require.Equal(t, DefStruct, def.Kind)
	require.Equal(t, 2, def.Struct.Size)
}

func TestUnresolvedPlaceholderRejectsMismatchedType(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	name := scope.FromString("main.Point")
	require.NoError(t, ids.Define(name, Unresolved(Definition{Kind: DefStruct})))

	err := ids.Define(name, Definition{Kind: DefFunction})
	require.Error(t, err)
}

func TestUnresolvedReferenceRebindAllowed(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	name := scope.FromString("main.main.x")
	require.NoError(t, ids.Define(name, Unresolved(Definition{Kind: DefReference})))
	require.NoError(t, ids.Define(name, Unresolved(Definition{Kind: DefReference})))

	def, err := ids.GetByFullName(name)
	require.NoError(t, err)
	require.Equal(t, DefUnresolved, def.Kind)
	require.Equal(t, DefReference, def.Inner.Kind)
}

func TestUnresolvedNonReferenceRedefinitionRejected(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	name := scope.FromString("main.Point")
	require.NoError(t, ids.Define(name, Unresolved(Definition{Kind: DefStruct})))

	err := ids.Define(name, Unresolved(Definition{Kind: DefStruct}))
	require.Error(t, err)
}

func TestSearchWidensOnlyOnFullMiss(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	require.NoError(t, ids.Define(scope.FromString("main.helper"), Definition{Kind: DefFunction}))
	ids.EnsureScope(scope.FromString("main.helper"))

	ids.ScopeTracker().EnterScope("main")
	ids.ScopeTracker().EnterScope("helper")

	def, err := ids.Get(scope.FromString("helper"))
	require.NoError(t, err)
	require.Equal(t, DefFunction, def.Kind)
}

func TestAliasChasingFollowsTarget(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	require.NoError(t, ids.Define(scope.FromString("other.Thing"), Definition{Kind: DefConst}))
	require.NoError(t, ids.Define(scope.FromString("main.Thing"),
		Definition{Kind: DefAlias, AliasTarget: scope.FromString("other.Thing")}))

	def, err := ids.GetByFullName(scope.FromString("main.Thing"))
	require.NoError(t, err)
	require.Equal(t, DefConst, def.Kind)
}

func TestAliasCycleDetected(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	require.NoError(t, ids.Define(scope.FromString("a"),
		Definition{Kind: DefAlias, AliasTarget: scope.FromString("b")}))
	require.NoError(t, ids.Define(scope.FromString("b"),
		Definition{Kind: DefAlias, AliasTarget: scope.FromString("a")}))

	_, err := ids.GetByFullName(scope.FromString("a"))
	require.Error(t, err)
}

func TestGetSizeFeltPointerTupleAndSelfReferentialStruct(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	felt := ast.CairoType{Kind: ast.TypeFelt}
	n, err := ids.GetSize(felt)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	ptr := ast.CairoType{Kind: ast.TypePointer, Elem: &felt}
	n, err = ids.GetSize(ptr)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	tuple := ast.CairoType{Kind: ast.TypeTuple, Tuple: []ast.CairoType{felt, felt, ptr}}
	n, err = ids.GetSize(tuple)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// A struct containing a pointer to itself must not infinitely recurse:
	// pointer size is always 1 regardless of what it points to.
	selfName := scope.FromString("main.Node")
	selfPtr := ast.CairoType{Kind: ast.TypePointer, Elem: &ast.CairoType{Kind: ast.TypeStructRef, StructName: selfName}}
	structDef := &StructDefinition{
		Name: selfName,
		Members: []MemberDefinition{
			{Name: "value", Type: felt, Offset: 0},
			{Name: "next", Type: selfPtr, Offset: 1},
		},
		Size: 2,
	}
	require.NoError(t, ids.Define(selfName, Definition{Kind: DefStruct, Struct: structDef}))

	size, err := ids.GetStructSize(selfName)
	require.NoError(t, err)
	require.Equal(t, 2, size)
}

func TestResolveTypeStructRef(t *testing.T) {
	ids := New()
	ids.ScopeTracker().EnterLang(scope.Root())

	name := scope.FromString("main.Point")
	require.NoError(t, ids.Define(name, Definition{Kind: DefStruct, Struct: &StructDefinition{Name: name, Size: 2}}))

	unresolved := ast.CairoType{Kind: ast.TypeStructRef, StructName: scope.FromString("Point")}
	ids.ScopeTracker().EnterScope("main")
	resolved, err := ids.ResolveType(unresolved)
	require.NoError(t, err)
	require.True(t, resolved.IsFullyResolved)
	require.Equal(t, "main.Point", resolved.StructName.Name())
}
