package imports

import (
	"testing"

	"github.com/mattsse/cairo-lang-go/internal/ast"
	"github.com/mattsse/cairo-lang-go/internal/scope"
	"github.com/rogpeppe/go-internal/txtar"
	"github.com/stretchr/testify/require"
)

// fakeReader serves fixed module sources keyed by dotted module name,
// standing in for the filesystem the way a txtar archive captures a
// small multi-file tree inline in the test.
type fakeReader map[string]string

func (r fakeReader) Read(moduleName string) (string, string, error) {
	code, ok := r[moduleName]
	if !ok {
		return "", "", errModuleNotFoundForTest{moduleName}
	}
	return code, moduleName + ".cairo", nil
}

type errModuleNotFoundForTest struct{ name string }

func (e errModuleNotFoundForTest) Error() string { return "module not found: " + e.name }

// fakeParser looks up a pre-built ast.File by the source text handed to
// it, since no lexer/grammar is implemented in this repository — the
// parser seam is exercised against fixtures built directly as Go struct
// literals instead of real Cairo text.
type fakeParser map[string]*ast.File

func (p fakeParser) Parse(code, origin string) (*ast.File, error) {
	f, ok := p[code]
	if !ok {
		return nil, errModuleNotFoundForTest{origin}
	}
	return f, nil
}

func importing(lang string, deps ...string) *ast.File {
	instrs := []ast.Instruction{&ast.LangDirective{ID: scope.FromString(lang)}}
	for _, d := range deps {
		instrs = append(instrs, &ast.ImportDirective{Path: scope.FromString(d)})
	}
	return &ast.File{Instructions: instrs}
}

func TestCollectorCollectsTransitiveImports(t *testing.T) {
	archive := txtar.Parse([]byte(`
-- main.cairo --
%lang starknet
from helper import foo

-- helper.cairo --
%lang starknet
from utils import bar

-- utils.cairo --
%lang starknet
`))
	require.Len(t, archive.Files, 3)

	reader := fakeReader{
		"main":   string(archive.Files[0].Data),
		"helper": string(archive.Files[1].Data),
		"utils":  string(archive.Files[2].Data),
	}
	parser := fakeParser{
		reader["main"]:   importing("starknet", "helper"),
		reader["helper"]: importing("starknet", "utils"),
		reader["utils"]:  importing("starknet"),
	}

	c := NewCollector(reader, parser)
	collected, err := c.Collect("main")
	require.NoError(t, err)
	require.Len(t, collected, 3)
	require.Contains(t, collected, "main")
	require.Contains(t, collected, "helper")
	require.Contains(t, collected, "utils")
}

func TestCollectorDetectsCircularImport(t *testing.T) {
	reader := fakeReader{"a": "a-src", "b": "b-src"}
	parser := fakeParser{
		"a-src": importing("starknet", "b"),
		"b-src": importing("starknet", "a"),
	}

	c := NewCollector(reader, parser)
	_, err := c.Collect("a")
	require.Error(t, err)
}

func TestCollectorRejectsInconsistentLang(t *testing.T) {
	reader := fakeReader{"a": "a-src", "b": "b-src"}
	parser := fakeParser{
		"a-src": importing("starknet", "b"),
		"b-src": importing("cairo0"),
	}

	c := NewCollector(reader, parser)
	_, err := c.Collect("a")
	require.Error(t, err)
}

func TestCollectorRejectsDuplicateLangDirective(t *testing.T) {
	reader := fakeReader{"a": "a-src"}
	f := &ast.File{Instructions: []ast.Instruction{
		&ast.LangDirective{ID: scope.FromString("starknet")},
		&ast.LangDirective{ID: scope.FromString("cairo0")},
	}}
	parser := fakeParser{"a-src": f}

	c := NewCollector(reader, parser)
	_, err := c.Collect("a")
	require.Error(t, err)
}
