// Package table loads the node and link tables a Sankey diagram is drawn from.
//
// Both tables are tab-separated with a header row. Columns are looked up by name, extra
// columns are ignored, and every required column is checked while loading so that later
// stages only ever see fully typed records.
package table

const (
	IndexColumn  = "Index"
	LabelColumn  = "Label"
	SourceColumn = "source"
	TargetColumn = "target"
)

// Node is one row of the node table. Index is kept as the trimmed cell text so both
// numeric and string identifiers work; link endpoints are compared against it textually.
type Node struct {
	Index string `json:"index"`
	Label string `json:"label"`
}

// Link is one row of the link table, a directed flow of Value from Source to Target.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}
