// Package pkg provides the core libraries for canvashtml canvas conversion.
//
// # Overview
//
// Canvashtml converts JSON Canvas documents (the open format used by
// Obsidian Canvas) into self-contained interactive HTML pages. The pkg
// directory is organized into five main areas:
//
//  1. [canvas] - Document model and JSON decoding
//  2. [geometry] - Bounding boxes, coordinate normalization, edge curves
//  3. [assets] - Asset reference resolution and data URL embedding
//  4. [render] - HTML/SVG document assembly and node-link overviews
//  5. [cache], [config], [server] - Infrastructure for CLI and preview serving
//
// # Architecture
//
// The typical data flow through canvashtml:
//
//	.canvas file (JSON)
//	         ↓
//	    [canvas] package (decode nodes and edges)
//	         ↓
//	    [geometry] package (bounds, normalization, curves)
//	         ↓
//	    [assets] package (resolve file references, embed as data URLs)
//	         ↓
//	    [render] package (assemble HTML shell with viewer)
//	         ↓
//	    HTML/SVG output
//
// # Quick Start
//
// Convert a canvas file to HTML:
//
//	import (
//	    "github.com/canvaskit/canvashtml/pkg/assets"
//	    "github.com/canvaskit/canvashtml/pkg/canvas"
//	    "github.com/canvaskit/canvashtml/pkg/render"
//	)
//
//	// 1. Load the document
//	doc, _ := canvas.ImportFile("board.canvas")
//
//	// 2. Build an assembler with asset resolution
//	asm := render.NewAssembler(
//	    render.WithResolver(assets.NewResolver(doc.Dir, vaultRoot)),
//	)
//
//	// 3. Assemble the page
//	html, _ := asm.AssembleHTML(doc)
//
// # Main Packages
//
// [canvas] - JSON Canvas document model. Nodes carry a kind (text, file,
// link, group) plus position and size; edges connect node ids with optional
// side and arrow attributes. Unknown fields are ignored for forward
// compatibility, and nodes without ids get generated ones.
//
// [geometry] - Pure coordinate math. Computes the padded bounding box over
// all nodes, normalizes world coordinates into non-negative page space, and
// produces cubic Bezier curves between node anchor points for edge rendering.
//
// [assets] - Resolves file references against the vault root and the canvas
// directory through a sequence of fallback strategies (exact paths, basename
// lookup, recursive search) and embeds resolved files as base64 data URLs so
// the output has no external dependencies.
//
// [render] - Assembles the final documents. AssembleHTML produces the
// interactive page (pan, zoom, connection rendering); AssembleSVG produces a
// static snapshot. Degradations (missing assets, dangling edges) surface as
// warnings rather than failures.
//
// [render/nodelink] - Structural overview diagrams using Graphviz, ignoring
// spatial placement in favor of computed layout.
//
// ## Infrastructure
//
// [cache] - Byte caches for rendered artifacts keyed by source content hash.
// FileCache for the CLI, RedisCache for shared deployments, NullCache to
// disable caching.
//
// [config] - TOML configuration with XDG-compliant default locations.
//
// [server] - Live preview HTTP server that re-converts on each request.
//
// [errors] - Structured errors with machine-readable codes distinguishing
// fatal failures from non-fatal degradations.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/geometry/...   # Specific package
//
// [canvas]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/canvas
// [geometry]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/geometry
// [assets]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/assets
// [render]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/cache
// [config]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/config
// [server]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/server
// [errors]: https://pkg.go.dev/github.com/canvaskit/canvashtml/pkg/errors
package pkg
