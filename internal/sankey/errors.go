package sankey

import "fmt"

// UnknownSourceError means the requested source label is not any node's Label.
type UnknownSourceError struct {
	Label string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("the source node %q is not in the nodes list", e.Label)
}

// UnmappedNodeError means a link endpoint has no node with that Index. Link is the
// link's position in the (possibly filtered) link list.
type UnmappedNodeError struct {
	Link  int
	Field string
	Index string
}

func (e *UnmappedNodeError) Error() string {
	return fmt.Sprintf("link %d: %s %q is not in the nodes list", e.Link, e.Field, e.Index)
}
