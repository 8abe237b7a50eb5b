// Package imports implements module resolution: turning a dotted module
// name into source text (CodeReader/FSReader, grounded on
// original_source/src/compiler/module_reader.rs and the CAIRO_PATH
// interface documented in spec.md §6) and the recursive import collector
// that walks a module's dependency graph (grounded on
// original_source/src/compiler/sema/passes/import.rs).
package imports

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	cerr "github.com/mattsse/cairo-lang-go/internal/errors"
	"golang.org/x/sync/errgroup"
)

// CAIRO_PATH is the environment variable naming additional library search
// roots, as in original_source/src/compiler/constants.rs.
const CairoPathEnvVar = "CAIRO_PATH"

// CairoFileExtension is the suffix every Cairo source module uses.
const CairoFileExtension = ".cairo"

// CodeReader turns a dotted module name into source text plus an origin
// string suitable for diagnostics (a filesystem path, or a synthetic
// marker for in-memory content).
type CodeReader interface {
	Read(moduleName string) (code string, origin string, err error)
}

// FSReader resolves module names under an ordered list of filesystem
// roots, the way CAIRO_PATH does: "a.b.c" resolves to "<root>/a/b/c.cairo"
// for the first root under which that file exists.
type FSReader struct {
	Roots []string
}

// NewFSReader builds an FSReader over roots, in search order.
func NewFSReader(roots []string) *FSReader {
	return &FSReader{Roots: roots}
}

// RootsFromEnv assembles the search path used by a default FSReader: the
// CAIRO_PATH environment variable's entries, in order, followed by any
// extra roots supplied by internal/config.
func RootsFromEnv(extra []string) []string {
	var roots []string
	if v := os.Getenv(CairoPathEnvVar); v != "" {
		roots = append(roots, strings.Split(v, string(os.PathListSeparator))...)
	}
	roots = append(roots, extra...)
	return roots
}

func modulePathRel(moduleName string) string {
	segs := strings.Split(moduleName, ".")
	return filepath.Join(segs...) + CairoFileExtension
}

// Read implements CodeReader.
func (r *FSReader) Read(moduleName string) (string, string, error) {
	rel := modulePathRel(moduleName)
	for _, root := range r.Roots {
		p := filepath.Join(root, rel)
		data, err := os.ReadFile(p)
		if err == nil {
			return string(data), p, nil
		}
		if !os.IsNotExist(err) {
			return "", "", cerr.NewIOError(p, err)
		}
	}
	return "", "", cerr.NewModuleNotFoundError(moduleName)
}

// OverlayReader checks an in-memory set of module contents before
// delegating to Inner. This is the seam a driver uses to hand the engine
// a root module's text directly (e.g. from an editor buffer) while still
// letting its imports resolve through the real filesystem, mirroring
// original_source's InputCodeReader wrapping the real ModuleReader.
type OverlayReader struct {
	Overlay map[string]string
	Inner   CodeReader
}

// Read implements CodeReader.
func (r *OverlayReader) Read(moduleName string) (string, string, error) {
	if code, ok := r.Overlay[moduleName]; ok {
		return code, "<memory>:" + moduleName, nil
	}
	if r.Inner == nil {
		return "", "", cerr.NewModuleNotFoundError(moduleName)
	}
	return r.Inner.Read(moduleName)
}

// ReadBatch concurrently reads a set of module names through reader,
// preserving names' order in the result. This is the one place this
// engine performs concurrent I/O (spec.md §5): reading the initial file
// set handed to the compiler, analogous to compile_cairo's read_files.
func ReadBatch(ctx context.Context, reader CodeReader, names []string) ([]struct{ Code, Origin string }, error) {
	out := make([]struct{ Code, Origin string }, len(names))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			code, origin, err := reader.Read(name)
			if err != nil {
				return err
			}
			out[i] = struct{ Code, Origin string }{Code: code, Origin: origin}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
