package identifiers

import (
	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"github.com/mattsse/cairo-lang-go/internal/scope"
)

// Scope is one node of the hierarchical scope tree. A scope's subscopes
// and its identifiers are kept apart: a scope can exist (e.g.
// "main.Args") purely as a structural container for nested names without
// its parent holding a Definition under that name.
type Scope struct {
	identifiers map[string]Definition
	subscopes   map[string]*Scope
}

func newScope() *Scope {
	return &Scope{
		identifiers: map[string]Definition{},
		subscopes:   map[string]*Scope{},
	}
}

// addSubscope returns the child subscope named name, creating it if
// necessary.
func (s *Scope) addSubscope(name string) *Scope {
	if child, ok := s.subscopes[name]; ok {
		return child
	}
	child := newScope()
	s.subscopes[name] = child
	return child
}

// getSingleScope returns the immediate child subscope named name, if any.
func (s *Scope) getSingleScope(name string) (*Scope, bool) {
	child, ok := s.subscopes[name]
	return child, ok
}

// getScope navigates name's full path through the subscope tree.
func (s *Scope) getScope(name scope.Name) (*Scope, error) {
	cur := s
	rem := name
	for {
		first, rest, ok := rem.Split()
		if !ok {
			return cur, nil
		}
		child, found := cur.getSingleScope(first)
		if !found {
			return nil, cerr.NewMissingIdentifierError(name.Name())
		}
		cur = child
		rem = rest
	}
}

// addIdentifier walks (creating as needed) the subscope path for name and
// inserts def at the leaf, applying the two-phase finalize/redefinition
// rule:
//
//   - a fresh slot accepts any definition;
//   - a slot holding an Unresolved placeholder is finalized when def is a
//     concrete (non-Unresolved) definition whose tag matches the
//     placeholder's (struct forward-declarations, and the synthesized
//     function/namespace Args/ImplicitArgs/Return scopes, resolve this
//     way);
//   - a slot holding an Unresolved placeholder is instead re-added (not
//     finalized — the slot stays Unresolved) when def is itself Unresolved
//     and both the existing and new placeholder are of reference kind,
//     i.e. a `let`/`local`/`tempvar` rebinding the same name;
//   - any other collision is a redefinition.
func (s *Scope) addIdentifier(name scope.Name, def Definition) error {
	cur := s
	rem := name
	for {
		first, rest, ok := rem.Split()
		if !ok {
			return cerr.NewIdentifierError("cannot define the root scope itself")
		}
		if rest.IsEmpty() {
			existing, present := cur.identifiers[first]
			if !present {
				cur.identifiers[first] = def
				return nil
			}
			if existing.Kind == DefUnresolved {
				if def.Kind != DefUnresolved && existing.HasMatchingType(def) {
					cur.identifiers[first] = def
					return nil
				}
				if def.Kind == DefUnresolved && existing.Inner != nil && def.Inner != nil &&
					existing.Inner.Kind.IsReferenceKind() && def.Inner.Kind.IsReferenceKind() {
					cur.identifiers[first] = def
					return nil
				}
			}
			return cerr.NewRedefinitionError(name.Name(), def.Loc)
		}
		cur = cur.addSubscope(first)
		rem = rest
	}
}

// get looks up name's leaf definition without following aliases or
// searching parent scopes.
func (s *Scope) get(name scope.Name) (Definition, error) {
	prefix, last, ok := name.RevSplit()
	if !ok {
		return Definition{}, cerr.NewMissingIdentifierError(name.Name())
	}
	parent, err := s.getScope(prefix)
	if err != nil {
		return Definition{}, err
	}
	def, present := parent.identifiers[last]
	if !present {
		if _, isScope := parent.subscopes[last]; isScope {
			return Definition{}, cerr.NewNotIdentifierError(name.Name())
		}
		return Definition{}, cerr.NewMissingIdentifierError(name.Name())
	}
	return def, nil
}
