package imports

import (
	"fmt"
	"sort"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/mattsse/cairo-lang-go/internal/token"
	"github.com/mpvl/unique"
)

// Parser produces an AST from a module's source text. The lexer/grammar
// that implements it is an external collaborator (spec.md §1 Non-goals);
// this package only depends on the seam.
type Parser interface {
	Parse(code, origin string) (*ast.File, error)
}

// Module is one entry of the collected dependency graph: a module's
// parsed file, its origin, and the %lang directive it declared (empty
// string if none).
type Module struct {
	Name   string
	File   *ast.File
	Origin string
	Lang   string
	Code   string
}

// Collector performs the recursive DFS import-collection algorithm:
// ancestor-stack cycle detection, %lang consistency validation between a
// module and each of its direct imports, and collection of every reached
// module's parsed file.
type Collector struct {
	reader    CodeReader
	parser    Parser
	ancestors []string
	collected map[string]*Module
}

// NewCollector builds a Collector reading module text through reader and
// producing ASTs through parser.
func NewCollector(reader CodeReader, parser Parser) *Collector {
	return &Collector{reader: reader, parser: parser, collected: map[string]*Module{}}
}

// Collect walks the dependency graph rooted at rootModule and returns
// every module reached, keyed by dotted name.
func (c *Collector) Collect(rootModule string) (map[string]*Module, error) {
	if err := c.collect(rootModule); err != nil {
		return nil, err
	}
	return c.collected, nil
}

func (c *Collector) collect(moduleName string) error {
	for _, ancestor := range c.ancestors {
		if ancestor == moduleName {
			return cerr.NewCircularDependenciesError(append(append([]string(nil), c.ancestors...), moduleName))
		}
	}
	if _, already := c.collected[moduleName]; already {
		return nil
	}

	c.ancestors = append(c.ancestors, moduleName)
	defer func() { c.ancestors = c.ancestors[:len(c.ancestors)-1] }()

	code, origin, err := c.reader.Read(moduleName)
	if err != nil {
		return err
	}
	file, err := c.parser.Parse(code, origin)
	if err != nil {
		return err
	}

	lang, err := collectLang(file)
	if err != nil {
		return err
	}

	for _, dep := range dedupedDependencies(file) {
		if err := c.collect(dep); err != nil {
			return err
		}
		childLang := c.collected[dep].Lang
		if childLang != lang {
			return cerr.NewInvalidImportError(token.NoLoc, fmt.Sprintf(
				"module %q declares %%lang %q but imports %q which declares %%lang %q",
				moduleName, lang, dep, childLang))
		}
	}

	c.collected[moduleName] = &Module{Name: moduleName, File: file, Origin: origin, Lang: lang, Code: code}
	return nil
}

// dedupedDependencies collects the direct import targets of file, sorted
// and de-duplicated.
func dedupedDependencies(file *ast.File) []string {
	dc := &directDependenciesCollector{}
	_ = ast.VisitFile(file, dc)
	deps := stringSlice(dc.deps)
	sort.Sort(deps)
	unique.Unique(&deps)
	return deps
}

type directDependenciesCollector struct {
	ast.BaseVisitor
	deps []string
}

func (d *directDependenciesCollector) VisitImport(i *ast.ImportDirective) error {
	d.deps = append(d.deps, i.Name())
	return nil
}

// collectLang extracts the single %lang directive a file may declare,
// erroring if it declares more than one.
func collectLang(file *ast.File) (string, error) {
	lv := &langVisitor{}
	if err := ast.VisitFile(file, lv); err != nil {
		return "", err
	}
	if lv.lang == nil {
		return "", nil
	}
	return *lv.lang, nil
}

type langVisitor struct {
	ast.BaseVisitor
	lang *string
}

func (lv *langVisitor) VisitLang(id *scope.Name) error {
	if lv.lang != nil {
		return cerr.NewInvalidImportError(token.NoLoc, "multiple %lang directives in one module")
	}
	name := id.Name()
	lv.lang = &name
	return nil
}

// stringSlice adapts []string to sort.Interface plus mpvl/unique's
// Truncate requirement.
type stringSlice []string

func (s stringSlice) Len() int           { return len(s) }
func (s stringSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *stringSlice) Truncate(n int)    { *s = (*s)[:n] }
