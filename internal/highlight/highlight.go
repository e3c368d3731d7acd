// Package highlight holds the host-owned highlight list and the color
// grouping used to tell overlapping highlights apart.
package highlight

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Highlight is a word range owned by the host. Despite their names the
// offsets are word ids of the transcript model, not character offsets.
type Highlight struct {
	ID              string `json:"id"`
	StartWordOffset int    `json:"start_word_offset"`
	EndWordOffset   int    `json:"end_word_offset"`
}

// Load decodes a JSON list of highlights.
func Load(r io.Reader) ([]Highlight, error) {
	var hs []Highlight
	if err := json.NewDecoder(r).Decode(&hs); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	return hs, nil
}

// Sorted returns a copy of hs ordered by start word id. Ties keep their
// input order.
func Sorted(hs []Highlight) []Highlight {
	out := make([]Highlight, len(hs))
	copy(out, hs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartWordOffset < out[j].StartWordOffset
	})
	return out
}
