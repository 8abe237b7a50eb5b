package scope

// Tracker is the current-scope stack threaded through every semantic pass.
// Passes push a scope on entering a function/namespace/module body and pop
// it on exit; CurrentScope panics if queried with an empty stack, since a
// pass body should never run without having entered at least the module's
// own (possibly root) scope first.
type Tracker struct {
	stack []Name
}

// NewTracker returns an empty Tracker. Callers must EnterLang with the
// module's own scope before doing any other scope-relative work.
func NewTracker() *Tracker {
	return &Tracker{}
}

// CurrentScope returns the innermost scope on the stack. It panics if the
// stack is empty.
func (t *Tracker) CurrentScope() Name {
	if len(t.stack) == 0 {
		panic("scope: current scope requested on an empty tracker")
	}
	return t.stack[len(t.stack)-1]
}

// NextScope returns what the scope would be if name were entered next,
// without mutating the tracker.
func (t *Tracker) NextScope(name string) Name {
	return t.CurrentScope().Appended(name)
}

// Depth reports how many scopes are currently pushed.
func (t *Tracker) Depth() int { return len(t.stack) }

// EnterLang pushes a module's own top-level scope. This is the one
// mandatory push a pass makes before entering any nested scope; it is kept
// distinct from EnterScope to mirror the passes that special-case the
// outermost, %lang-carrying module scope (see StructCollector).
func (t *Tracker) EnterLang(moduleScope Name) {
	t.stack = append(t.stack, moduleScope)
}

// ExitLang pops the module scope pushed by EnterLang.
func (t *Tracker) ExitLang() {
	t.pop()
}

// EnterScope pushes CurrentScope().Appended(name).
func (t *Tracker) EnterScope(name string) {
	t.stack = append(t.stack, t.NextScope(name))
}

// ExitScope pops the scope pushed by EnterScope.
func (t *Tracker) ExitScope() {
	t.pop()
}

// EnterFunction and ExitFunction are EnterScope/ExitScope under names that
// match the passes that call them, for readability at call sites.
func (t *Tracker) EnterFunction(name string) { t.EnterScope(name) }
func (t *Tracker) ExitFunction()             { t.ExitScope() }

func (t *Tracker) EnterNamespace(name string) { t.EnterScope(name) }
func (t *Tracker) ExitNamespace()             { t.ExitScope() }

func (t *Tracker) pop() {
	if len(t.stack) == 0 {
		panic("scope: exit requested on an empty tracker")
	}
	t.stack = t.stack[:len(t.stack)-1]
}
