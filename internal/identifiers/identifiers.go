package identifiers

import (
	"fmt"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"github.com/mattsse/cairo-lang-go/internal/scope"
)

// Identifiers is the table every semantic pass shares: a hierarchical
// scope tree plus the current-scope tracker that passes push/pop as they
// enter and leave functions, namespaces and modules.
type Identifiers struct {
	tracker *scope.Tracker
	root    *Scope
}

// New returns an empty Identifiers table.
func New() *Identifiers {
	return &Identifiers{tracker: scope.NewTracker(), root: newScope()}
}

// ScopeTracker returns the tracker passes use to enter/exit scopes while
// walking the AST against this table.
func (ids *Identifiers) ScopeTracker() *scope.Tracker { return ids.tracker }

// CurrentScope is a convenience wrapper over ScopeTracker().CurrentScope().
func (ids *Identifiers) CurrentScope() scope.Name { return ids.tracker.CurrentScope() }

// Define inserts def at name, applying the two-phase finalize rule
// documented on Scope.addIdentifier.
func (ids *Identifiers) Define(name scope.Name, def Definition) error {
	return ids.root.addIdentifier(name, def)
}

// EnsureScope creates (idempotently) the subscope tree nodes for name,
// without inserting any Definition. Passes call this when a name (e.g. a
// function) needs a subscope of its own (Args, ImplicitArgs, Return,
// member names) independent of whether that name also has a Definition
// entry.
func (ids *Identifiers) EnsureScope(name scope.Name) {
	cur := ids.root
	rem := name
	for {
		first, rest, ok := rem.Split()
		if !ok {
			return
		}
		cur = cur.addSubscope(first)
		rem = rest
	}
}

// getByFullName resolves name by direct (non-search) lookup, following
// alias chains and detecting cycles.
func (ids *Identifiers) getByFullName(name scope.Name) (Definition, error) {
	return ids.chaseAliases(name, map[string]bool{})
}

func (ids *Identifiers) chaseAliases(name scope.Name, visited map[string]bool) (Definition, error) {
	key := name.Name()
	if visited[key] {
		return Definition{}, cerr.NewIdentifierError(fmt.Sprintf("cyclic aliasing detected while resolving %q", key))
	}
	visited[key] = true

	def, err := ids.root.get(name)
	if err != nil {
		return Definition{}, err
	}
	if def.Kind == DefAlias {
		return ids.chaseAliases(def.AliasTarget, visited)
	}
	return def, nil
}

// search implements the scope-relative lookup algorithm: starting at the
// current scope, try name resolved against progressively shorter prefixes
// of the current scope (innermost first, root last). A candidate is
// abandoned in favor of the next outer prefix only when the lookup failed
// to match even the candidate's very first segment; if part of the
// candidate path did resolve before failing deeper in, that failure is
// definitive and is returned immediately rather than continuing to widen
// the search.
func (ids *Identifiers) search(name scope.Name) (scope.Name, Definition, error) {
	prefix := ids.CurrentScope()
	for {
		candidate := prefix.Extended(name)
		def, err := ids.getByFullName(candidate)
		if err == nil {
			return candidate, def, nil
		}

		if _, ok := err.(*cerr.MissingIdentifierError); ok {
			first, _, _ := name.Split()
			_, headErr := ids.root.get(prefix.Appended(first))
			if _, headMissing := headErr.(*cerr.MissingIdentifierError); headMissing {
				if prefix.IsEmpty() {
					return scope.Name{}, Definition{}, err
				}
				p, _, _ := prefix.RevSplit()
				prefix = p
				continue
			}
		}
		return scope.Name{}, Definition{}, err
	}
}

// Get resolves name relative to the current scope, following aliases.
func (ids *Identifiers) Get(name scope.Name) (Definition, error) {
	_, def, err := ids.search(name)
	return def, err
}

// GetByFullName resolves name as an absolute path (no scope-relative
// search), following aliases.
func (ids *Identifiers) GetByFullName(name scope.Name) (Definition, error) {
	return ids.getByFullName(name)
}

// GetScope resolves name (scope-relative, following aliases) and returns
// the subscope it denotes. name must resolve to a Function, Namespace or
// Struct definition.
func (ids *Identifiers) GetScope(name scope.Name) (*Scope, error) {
	canonical, def, err := ids.search(name)
	if err != nil {
		if notScope, ok := aliasTargetAsScope(ids, name); ok {
			return notScope, nil
		}
		return nil, err
	}
	if !def.Kind.IsScope() && def.Kind != DefUnresolved {
		return nil, cerr.NewNotScopeError(canonical.Name(), "", def.Kind.String())
	}
	return ids.root.getScope(canonical)
}

// aliasTargetAsScope is a narrow fallback for names that denote a pure
// structural subscope (e.g. "main.Args") with no Definition entry of their
// own: search/getByFullName fail for these since there is nothing in the
// parent scope's identifiers, but the subscope itself may still exist in
// the tree.
func aliasTargetAsScope(ids *Identifiers, name scope.Name) (*Scope, bool) {
	prefix := ids.CurrentScope()
	for {
		candidate := prefix.Extended(name)
		if n, err := ids.root.getScope(candidate); err == nil {
			return n, true
		}
		if prefix.IsEmpty() {
			return nil, false
		}
		p, _, _ := prefix.RevSplit()
		prefix = p
	}
}

// GetCanonicalStructName resolves name to the fully qualified scope name
// of the struct it denotes.
func (ids *Identifiers) GetCanonicalStructName(name scope.Name) (scope.Name, error) {
	canonical, def, err := ids.search(name)
	if err != nil {
		return scope.Name{}, err
	}
	if k, _ := def.resolvedKind(); k != DefStruct {
		return scope.Name{}, cerr.NewIdentifierError(fmt.Sprintf("%q is not a struct", canonical.Name()))
	}
	return canonical, nil
}

// GetStructDefinitionNoAlias returns the StructDefinition stored directly
// at name, without following aliases or doing scope-relative search. It
// fails if the struct has not yet been resolved by StructCollector.
func (ids *Identifiers) GetStructDefinitionNoAlias(name scope.Name) (*StructDefinition, error) {
	def, err := ids.root.get(name)
	if err != nil {
		return nil, err
	}
	if def.Kind != DefStruct || def.Struct == nil {
		return nil, cerr.NewIdentifierError(fmt.Sprintf("%q is not a resolved struct", name.Name()))
	}
	return def.Struct, nil
}

// GetStructDefinition resolves name (following aliases and scope-relative
// search) to its StructDefinition.
func (ids *Identifiers) GetStructDefinition(name scope.Name) (*StructDefinition, error) {
	canonical, err := ids.GetCanonicalStructName(name)
	if err != nil {
		return nil, err
	}
	return ids.GetStructDefinitionNoAlias(canonical)
}

// GetStructSize resolves name to its struct's total size in felts.
func (ids *Identifiers) GetStructSize(name scope.Name) (int, error) {
	sd, err := ids.GetStructDefinition(name)
	if err != nil {
		return 0, err
	}
	return sd.Size, nil
}

// GetSize computes the size in felts of an arbitrary CairoType: 1 for
// felt, 1 for a pointer of any depth (even to a self-referential struct —
// a pointer never recurses into its pointee's size), the sum of element
// sizes for a tuple, and the resolved struct's size for a struct
// reference.
func (ids *Identifiers) GetSize(t ast.CairoType) (int, error) {
	switch t.Kind {
	case ast.TypeFelt:
		return 1, nil
	case ast.TypePointer:
		return 1, nil
	case ast.TypeTuple:
		total := 0
		for _, elem := range t.Tuple {
			n, err := ids.GetSize(elem)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	case ast.TypeStructRef:
		return ids.GetStructSize(t.StructName)
	default:
		return 0, cerr.NewIdentifierError("unknown type kind")
	}
}

// ResolveType resolves a CairoType that may carry an unresolved struct
// reference (is_fully_resolved == false) into its fully resolved form,
// verifying the referenced struct exists.
func (ids *Identifiers) ResolveType(t ast.CairoType) (ast.CairoType, error) {
	switch t.Kind {
	case ast.TypeStructRef:
		canonical, err := ids.GetCanonicalStructName(t.StructName)
		if err != nil {
			return ast.CairoType{}, err
		}
		t.StructName = canonical
		t.IsFullyResolved = true
		return t, nil
	case ast.TypeTuple:
		resolved := make([]ast.CairoType, len(t.Tuple))
		for i, elem := range t.Tuple {
			r, err := ids.ResolveType(elem)
			if err != nil {
				return ast.CairoType{}, err
			}
			resolved[i] = r
		}
		t.Tuple = resolved
		return t, nil
	case ast.TypePointer:
		r, err := ids.ResolveType(*t.Elem)
		if err != nil {
			return ast.CairoType{}, err
		}
		t.Elem = &r
		return t, nil
	default:
		return t, nil
	}
}
