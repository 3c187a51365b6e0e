package model

import (
	"encoding/json"
	"time"
)

// exportedTree is the wire shape of a Tree: the full node hierarchy,
// the scan config and duration, and aggregate stats/warnings (§6 "JSON
// export"). Field names are stable and forward-compatible; unknown
// keys are ignored on import per the same section.
type exportedTree struct {
	RootPath string            `json:"root_path"`
	Config   ScanConfigSummary `json:"config"`
	Stats    Stats             `json:"stats"`
	ScanDur  time.Duration     `json:"scan_duration_ns"`
	Sort     SortOrder         `json:"sort"`
	Warnings []Warning         `json:"warnings"`
	Root     *Node             `json:"root"`
}

// Export serializes the tree to its self-describing JSON document.
func (t *Tree) Export() ([]byte, error) {
	doc := exportedTree{
		RootPath: t.RootPath,
		Config:   t.Config,
		Stats:    t.Stats,
		ScanDur:  t.ScanDur,
		Sort:     t.Sort,
		Warnings: t.Warnings,
		Root:     t.Root,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportTree deserializes an exported JSON document back into an
// equivalent Tree (§6: "the schema MUST round-trip"). Node ids are
// preserved from the document; NextNodeID continues from the highest
// id found so that subsequently allocated ids stay unique.
func ImportTree(data []byte) (*Tree, error) {
	var doc exportedTree
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	t := &Tree{
		Root:     doc.Root,
		RootPath: doc.RootPath,
		Config:   doc.Config,
		Stats:    doc.Stats,
		ScanDur:  doc.ScanDur,
		Sort:     doc.Sort,
		Warnings: doc.Warnings,
	}
	if t.Root != nil {
		t.Root.Walk(func(n *Node) bool {
			if n.ID > t.nextNodeID {
				t.nextNodeID = n.ID
			}
			return true
		})
	}
	return t, nil
}
