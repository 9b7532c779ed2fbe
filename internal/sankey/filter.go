package sankey

import (
	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/table"
)

// Filter narrows links to the flow around the node labelled source. With an empty
// source the links are returned unchanged.
//
// The nodes of interest are the source node plus every direct target of its links, and
// a link is kept when it starts at any node of interest. So the result holds the source's
// outgoing links and also the outgoing links of its direct targets. Nodes are never
// filtered.
func Filter(nodes []table.Node, links []table.Link, source string) ([]table.Link, error) {
	if source == "" {
		return links, nil
	}

	initial, ok := indexOfLabel(nodes, source)
	if !ok {
		return nil, &UnknownSourceError{Label: source}
	}

	interest := lib.NewSet(initial)
	for _, link := range links {
		if link.Source == initial {
			interest.Add(link.Target)
		}
	}

	filtered := make([]table.Link, 0, len(links))
	for _, link := range links {
		if interest.Contains(link.Source) {
			filtered = append(filtered, link)
		}
	}
	return filtered, nil
}

// indexOfLabel returns the Index of the first node labelled label.
func indexOfLabel(nodes []table.Node, label string) (string, bool) {
	for _, node := range nodes {
		if node.Label == label {
			return node.Index, true
		}
	}
	return "", false
}
