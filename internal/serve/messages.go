package serve

import (
	"encoding/json"

	"github.com/psidex/sankey/internal/sankey"
)

// message is the envelope for everything sent over the websocket.
type message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type summary struct {
	Title string  `json:"title"`
	Nodes int     `json:"nodes"`
	Edges int     `json:"edges"`
	Total float64 `json:"total"`
}

func summaryMessage(d *sankey.Diagram) []byte {
	return mustMarshal(message{
		Type: "summary",
		Data: summary{
			Title: d.Title,
			Nodes: len(d.Labels),
			Edges: len(d.Edges),
			Total: d.TotalFlow(),
		},
	})
}

func reloadMessage() []byte {
	return mustMarshal(message{Type: "reload"})
}

func errorMessage(err error) []byte {
	return mustMarshal(message{Type: "error", Data: err.Error()})
}

// mustMarshal is only used on the types above, which always marshal.
func mustMarshal(m message) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return b
}
