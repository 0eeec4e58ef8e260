// Package segio reads and writes the segmentation JSON documents of
// spec.md §6: one document per crossroad, made of exactly one
// type:"crossroad" entry and zero or more type:"branch" entries, each
// carrying its inner/border node ids, the edges between them, and a
// coordinate map. Grounded on lib/crseg/crossroad.py's
// to_json_array/to_json_data (the writer side) and the reader shape §6
// documents as that format's inverse. Uses goccy/go-json as a drop-in
// encoding/json replacement, following
// angelodlfrtr-valhalla-http-client-go's client.go import idiom.
package segio

import (
	"io"

	"crossroad/pkg/crerr"
	"crossroad/pkg/region"

	"github.com/goccy/go-json"
)

// Coordinate is one node's position in a segmentation document.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeSet is an entry's inner/border node id partition.
type NodeSet struct {
	Inner  []region.NodeID `json:"inner"`
	Border []region.NodeID `json:"border"`
}

// Entry is one segmentation document entry: the crossroad region itself,
// or one of its branches.
type Entry struct {
	Type         string                       `json:"type"`
	Nodes        NodeSet                      `json:"nodes"`
	EdgesByNodes [][2]region.NodeID           `json:"edges_by_nodes"`
	Coordinates  map[region.NodeID]Coordinate `json:"coordinates"`
}

// EntryTypeCrossroad and EntryTypeBranch are spec.md §6's two entry kinds.
const (
	EntryTypeCrossroad = "crossroad"
	EntryTypeBranch    = "branch"
)

// Document is every entry describing one crossroad: exactly one
// "crossroad" entry plus its branches, in 1-based input order.
type Document []Entry

// Read parses a segmentation JSON payload shaped either as
// `[[entries...]]` (several documents) or `[entries...]` (one document),
// per spec.md §6.
func Read(r io.Reader) ([]Document, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &crerr.Warning{Kind: crerr.ErrMalformedSegmentation, Entity: "segmentation document", Detail: err.Error()}
	}

	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &crerr.Warning{Kind: crerr.ErrMalformedSegmentation, Entity: "segmentation document", Detail: err.Error()}
	}
	if len(probe) == 0 {
		return nil, &crerr.Warning{Kind: crerr.ErrMalformedSegmentation, Entity: "segmentation document", Detail: "empty document list"}
	}

	nested := looksLikeEntryArray(probe[0])
	var docs []Document
	if nested {
		for _, item := range probe {
			var entries []Entry
			if err := json.Unmarshal(item, &entries); err != nil {
				return nil, &crerr.Warning{Kind: crerr.ErrMalformedSegmentation, Entity: "segmentation document", Detail: err.Error()}
			}
			doc, err := validate(entries)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	} else {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, &crerr.Warning{Kind: crerr.ErrMalformedSegmentation, Entity: "segmentation document", Detail: err.Error()}
		}
		doc, err := validate(entries)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// looksLikeEntryArray reports whether a raw JSON value is itself an array
// (the `[[entries...]]` shape) rather than an object (one Entry of the
// flat `[entries...]` shape).
func looksLikeEntryArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// validate enforces spec.md §6's "exactly one crossroad entry per
// document" rule.
func validate(entries []Entry) (Document, error) {
	crossroads := 0
	for _, e := range entries {
		if e.Type == EntryTypeCrossroad {
			crossroads++
		}
	}
	if crossroads != 1 {
		return nil, &crerr.Warning{
			Kind:   crerr.ErrMalformedSegmentation,
			Entity: "segmentation document",
			Detail: "expected exactly one crossroad entry",
		}
	}
	return Document(entries), nil
}

// Write emits docs in the `[[entries...]]` shape, the inverse of Read.
func Write(w io.Writer, docs []Document) error {
	enc := json.NewEncoder(w)
	return enc.Encode(docs)
}
