package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/canvaskit/canvashtml/pkg/errors"
)

// ReadJSON decodes a canvas document from r.
//
// The input must be a JSON object with optional "nodes" and "edges"
// arrays. Unknown top-level and node-level keys are ignored, not
// rejected. A node missing an id is assigned a generated one so that
// edges and the viewer data stay addressable; the invented ids are
// reported via [Document.GeneratedIDs].
//
// Edges are decoded twice: into the typed model for geometry and
// validation, and kept as raw records so [Document.EdgesJSON] can
// reproduce the input verbatim.
//
// ReadJSON returns an INVALID_CANVAS error if the JSON is malformed.
// It does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var raw struct {
		Nodes []Node            `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "decode canvas")
	}

	doc := Document{Nodes: raw.Nodes, rawEdges: raw.Edges}
	if len(raw.Edges) > 0 {
		doc.Edges = make([]Edge, len(raw.Edges))
		for i, record := range raw.Edges {
			if err := json.Unmarshal(record, &doc.Edges[i]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "decode edge %d", i)
			}
		}
	}

	for i := range doc.Nodes {
		if doc.Nodes[i].ID == "" {
			id := uuid.NewString()
			doc.Nodes[i].ID = id
			doc.generatedIDs = append(doc.generatedIDs, id)
		}
	}

	return &doc, nil
}

// ImportFile reads a canvas file at path and returns the decoded
// document with Path and Dir populated for asset resolution.
//
// The error is fatal (INVALID_CANVAS): a conversion cannot proceed
// without a readable document.
func ImportFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "open %s", path)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc.Path = path
	doc.Dir = filepath.Dir(path)
	return doc, nil
}
