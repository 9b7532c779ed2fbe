// Package sankey turns loaded node and link tables into the positional Diagram that the
// renderers draw.
package sankey

import (
	"fmt"

	"github.com/psidex/sankey/internal/table"
)

// Edge is a link rewritten to node positions.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// Diagram is everything a renderer needs. Labels[i] is the label of the node at
// position i, and edges refer to those positions.
type Diagram struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Edges  []Edge   `json:"edges"`
}

// Title is the diagram title, and the output file name, for a source label. An empty
// source renders as "None".
func Title(source string) string {
	if source == "" {
		source = "None"
	}
	return fmt.Sprintf("Direction of effect - %s", source)
}

// Build filters links around source (if set), maps endpoints to positions and assembles
// the Diagram. Every node keeps its label, referenced or not.
func Build(nodes []table.Node, links []table.Link, source string) (*Diagram, error) {
	filtered, err := Filter(nodes, links, source)
	if err != nil {
		return nil, err
	}

	indexMap, err := NewIndexMap(nodes)
	if err != nil {
		return nil, err
	}

	sources, targets, err := indexMap.MapLinks(filtered)
	if err != nil {
		return nil, err
	}

	d := &Diagram{
		Title:  Title(source),
		Labels: make([]string, len(nodes)),
		Edges:  make([]Edge, len(filtered)),
	}
	for i, node := range nodes {
		d.Labels[i] = node.Label
	}
	for i, link := range filtered {
		d.Edges[i] = Edge{Source: sources[i], Target: targets[i], Value: link.Value}
	}
	return d, nil
}

// TotalFlow is the sum of all edge values.
func (d *Diagram) TotalFlow() float64 {
	var total float64
	for _, e := range d.Edges {
		total += e.Value
	}
	return total
}

// HasCycle reports whether the edges contain a directed cycle, self loops included.
// Layered Sankey layouts cannot place cyclic flows.
func (d *Diagram) HasCycle() bool {
	n := len(d.Labels)
	inDegree := make([]int, n)
	out := make([][]int, n)
	for _, e := range d.Edges {
		if e.Source < 0 || e.Source >= n || e.Target < 0 || e.Target >= n {
			continue
		}
		out[e.Source] = append(out[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]int, 0, n)
	for i, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, i)
		}
	}

	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range out[cur] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return visited != n
}
