// Package assets locates external files referenced by canvas nodes and
// produces inlineable data URLs for embedding into the output artifact.
//
// Resolution walks an explicit ordered list of strategies (absolute
// path, root-relative, canvas-relative, basename probes, recursive
// searches) and short-circuits on the first hit. Recursive searches use
// [filepath.WalkDir], which visits directory entries in lexical order,
// so the first match for a duplicated basename is the lexicographically
// smallest path. This keeps resolution deterministic for a fixed
// filesystem state.
package assets

import (
	"encoding/base64"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/canvaskit/canvashtml/pkg/errors"
)

// DefaultMIMEType is used for extensions outside the fixed table.
const DefaultMIMEType = "application/octet-stream"

// mimeTypes maps known asset extensions to their MIME type. The table is
// fixed by the output contract: the embedded viewer only distinguishes
// these image types.
var mimeTypes = map[string]string{
	".gif":  "image/gif",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

// MIMEType derives the MIME type from a path's extension,
// case-insensitively. Unknown extensions map to a generic binary type.
func MIMEType(path string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return DefaultMIMEType
}

// ResolvedAsset is an inlined representation of an external file.
// It is derived and ephemeral: memoized per reference for the duration
// of one conversion, never persisted.
type ResolvedAsset struct {
	Path     string // resolved filesystem path
	MIMEType string
	DataURL  string // data:<mime>;base64,<payload>
}

// Resolver locates referenced files relative to the canvas file and an
// optional root directory.
type Resolver struct {
	CanvasDir string // directory containing the input document
	RootDir   string // optional root for references like "Images/..."

	memo   map[string]*ResolvedAsset
	misses map[string]error
}

// NewResolver creates a resolver. canvasDir must be set; rootDir may be
// empty, which disables the root-relative strategies.
func NewResolver(canvasDir, rootDir string) *Resolver {
	return &Resolver{
		CanvasDir: canvasDir,
		RootDir:   rootDir,
		memo:      make(map[string]*ResolvedAsset),
		misses:    make(map[string]error),
	}
}

// strategy probes one candidate location for a reference.
// Strategies are pure with respect to the resolver: they only read the
// filesystem, making the search policy independently testable.
type strategy func(ref string) (string, bool)

// strategies returns the resolution order. First match wins.
func (r *Resolver) strategies() []strategy {
	return []strategy{
		func(ref string) (string, bool) {
			if filepath.IsAbs(ref) && fileExists(ref) {
				return ref, true
			}
			return "", false
		},
		func(ref string) (string, bool) { return probe(r.RootDir, ref) },
		func(ref string) (string, bool) { return probe(r.CanvasDir, ref) },
		func(ref string) (string, bool) { return probe(r.RootDir, filepath.Base(ref)) },
		func(ref string) (string, bool) { return searchTree(r.RootDir, filepath.Base(ref)) },
		func(ref string) (string, bool) { return probe(r.CanvasDir, filepath.Base(ref)) },
		func(ref string) (string, bool) { return searchTree(r.CanvasDir, filepath.Base(ref)) },
	}
}

// ResolvePath locates the file a reference points at, or reports false
// when no strategy finds it.
func (r *Resolver) ResolvePath(ref string) (string, bool) {
	for _, s := range r.strategies() {
		if path, ok := s(ref); ok {
			return path, true
		}
	}
	return "", false
}

// Resolve locates a referenced file, reads it fully into memory and
// returns its inlined representation. Hits and misses are both memoized
// by reference string, so resolving the same reference twice within one
// conversion walks the strategies (including the recursive searches)
// once.
//
// Errors carry ASSET_NOT_FOUND or ASSET_UNREADABLE codes; both are
// non-fatal degradations for the caller.
func (r *Resolver) Resolve(ref string) (*ResolvedAsset, error) {
	if a, ok := r.memo[ref]; ok {
		return a, nil
	}
	if err, ok := r.misses[ref]; ok {
		return nil, err
	}

	path, ok := r.ResolvePath(ref)
	if !ok {
		err := errors.New(errors.ErrCodeAssetNotFound, "could not find file: %s", ref)
		r.misses[ref] = err
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := errors.Wrap(errors.ErrCodeAssetUnreadable, err, "read %s", path)
		r.misses[ref] = wrapped
		return nil, wrapped
	}

	mime := MIMEType(path)
	a := &ResolvedAsset{
		Path:     path,
		MIMEType: mime,
		DataURL:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
	r.memo[ref] = a
	return a, nil
}

// probe checks dir/ref. A strategy with an unconfigured dir never matches.
func probe(dir, ref string) (string, bool) {
	if dir == "" {
		return "", false
	}
	path := filepath.Join(dir, ref)
	if fileExists(path) {
		return path, true
	}
	return "", false
}

// searchTree walks dir recursively for the first regular file named
// base. WalkDir visits entries in lexical order per directory.
func searchTree(dir, base string) (string, bool) {
	if dir == "" {
		return "", false
	}

	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep searching
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == base {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	return found, found != ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
