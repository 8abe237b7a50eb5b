// Package scope implements ScopedName, the dotted-identifier value type
// used throughout the identifier table, and ScopeTracker, the compiler
// passes' current-scope stack.
//
// Grounded on the ScopedName usage patterns observed in
// original_source/src/compiler/sema/identifiers.rs (split/rev_split used
// for prefix-walking lookups, appended/extended used to build subscope and
// full names) and on the scope-stack push/pop idiom in
// cue/ast/astutil/resolve.go.
package scope

import "strings"

// Name is an immutable dotted identifier path, e.g. "main.Args.SIZE"
// represented as ["main", "Args", "SIZE"]. The zero value is the root
// (empty) scope.
type Name struct {
	segments []string
}

// Root returns the empty scope name.
func Root() Name { return Name{} }

// FromString parses a dotted name into a Name. An empty string yields Root.
func FromString(s string) Name {
	if s == "" {
		return Root()
	}
	return Name{segments: strings.Split(s, ".")}
}

// Push returns a new Name with segment appended at the end.
func (n Name) Push(segment string) Name {
	return n.Appended(segment)
}

// Appended returns a new Name with segment appended at the end.
func (n Name) Appended(segment string) Name {
	out := make([]string, len(n.segments)+1)
	copy(out, n.segments)
	out[len(n.segments)] = segment
	return Name{segments: out}
}

// Extended returns a new Name with other's segments appended after n's.
func (n Name) Extended(other Name) Name {
	out := make([]string, 0, len(n.segments)+len(other.segments))
	out = append(out, n.segments...)
	out = append(out, other.segments...)
	return Name{segments: out}
}

// Split peels the first segment off n, returning it along with the
// remaining Name. ok is false when n is empty.
func (n Name) Split() (first string, rest Name, ok bool) {
	if len(n.segments) == 0 {
		return "", Name{}, false
	}
	return n.segments[0], Name{segments: append([]string(nil), n.segments[1:]...)}, true
}

// RevSplit peels the last segment off n, returning the remaining prefix
// along with it. ok is false when n is empty.
func (n Name) RevSplit() (prefix Name, last string, ok bool) {
	if len(n.segments) == 0 {
		return Name{}, "", false
	}
	last = n.segments[len(n.segments)-1]
	prefix = Name{segments: append([]string(nil), n.segments[:len(n.segments)-1]...)}
	return prefix, last, true
}

// Name renders n as a dotted string.
func (n Name) Name() string {
	return strings.Join(n.segments, ".")
}

func (n Name) String() string { return n.Name() }

// Len reports the number of segments in n.
func (n Name) Len() int { return len(n.segments) }

// IsEmpty reports whether n is the root scope.
func (n Name) IsEmpty() bool { return len(n.segments) == 0 }

// Segments returns a copy of n's path components.
func (n Name) Segments() []string {
	return append([]string(nil), n.segments...)
}

// HasPrefix reports whether prefix's segments are a leading subsequence of
// n's segments.
func (n Name) HasPrefix(prefix Name) bool {
	if len(prefix.segments) > len(n.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if n.segments[i] != s {
			return false
		}
	}
	return true
}

// Equal reports whether n and other denote the same path.
func (n Name) Equal(other Name) bool {
	if len(n.segments) != len(other.segments) {
		return false
	}
	for i, s := range n.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}
