package sankey

import (
	"github.com/psidex/sankey/internal/table"
)

// IndexMap maps each node Index to its zero-based position in the node table.
type IndexMap struct {
	positions map[string]int
}

// NewIndexMap builds the map in node table order. Indices must be unique.
func NewIndexMap(nodes []table.Node) (*IndexMap, error) {
	positions := make(map[string]int, len(nodes))
	for i, node := range nodes {
		if _, ok := positions[node.Index]; ok {
			return nil, &table.DuplicateIndexError{Index: node.Index}
		}
		positions[node.Index] = i
	}
	return &IndexMap{positions: positions}, nil
}

// Position returns the position of index, or false if no node has that Index.
func (m *IndexMap) Position(index string) (int, bool) {
	pos, ok := m.positions[index]
	return pos, ok
}

// Len is the number of nodes in the map.
func (m *IndexMap) Len() int {
	return len(m.positions)
}

// MapLinks rewrites every link endpoint to its position. The returned slices are
// parallel to links.
func (m *IndexMap) MapLinks(links []table.Link) (sources, targets []int, err error) {
	sources = make([]int, len(links))
	targets = make([]int, len(links))
	for i, link := range links {
		src, ok := m.positions[link.Source]
		if !ok {
			return nil, nil, &UnmappedNodeError{Link: i, Field: table.SourceColumn, Index: link.Source}
		}
		dst, ok := m.positions[link.Target]
		if !ok {
			return nil, nil, &UnmappedNodeError{Link: i, Field: table.TargetColumn, Index: link.Target}
		}
		sources[i], targets[i] = src, dst
	}
	return sources, targets, nil
}
