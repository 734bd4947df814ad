package routes

import (
	"github.com/recera/vango-sigma/pkg/components/sigmagraph"
	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

// DemoState holds the sample graph shown on the index page.
type DemoState struct {
	Nodes []map[string]any
	Edges []map[string]any
}

// NewDemoState returns the five node, five edge sample graph.
func NewDemoState() *DemoState {
	return &DemoState{
		Nodes: []map[string]any{
			{"id": "1", "label": "Node 1", "color": "#ff6b6b", "size": 20},
			{"id": "2", "label": "Node 2", "color": "#4ecdc4", "size": 15},
			{"id": "3", "label": "Node 3", "color": "#45b7d1", "size": 15},
			{"id": "4", "label": "Node 4", "color": "#ff9f43", "size": 15},
			{"id": "5", "label": "Node 5", "color": "#5f27cd", "size": 15},
		},
		Edges: []map[string]any{
			{"source": "1", "target": "2", "label": "connects", "size": 3},
			{"source": "2", "target": "3", "label": "links", "size": 3},
			{"source": "3", "target": "1", "label": "back", "size": 3},
			{"source": "1", "target": "4", "label": "relates", "size": 3},
			{"source": "4", "target": "5", "label": "depends", "size": 3},
		},
	}
}

// Graph returns the state as a viewer payload.
func (s *DemoState) Graph() sigmagraph.GraphData {
	return sigmagraph.NewGraphData(s.Nodes, s.Edges)
}

// Index is the demo page: a heading above the graph viewer.
func Index(c *sigmagraph.Component, state *DemoState, events sigmagraph.Events) (*vdom.VNode, error) {
	viewer, err := c.Create(sigmagraph.Props{
		GraphData:      state.Graph(),
		LayoutType:     sigmagraph.LayoutForceAtlas2,
		ShowNodeLabels: sigmagraph.Bool(true),
		ShowEdgeLabels: true,
		Style: map[string]string{
			"width":        "100%",
			"height":       "600px",
			"border":       "1px solid #ddd",
			"borderRadius": "8px",
		},
	}, events)
	if err != nil {
		return nil, err
	}

	return vdom.NewElement("div", vdom.Props{
		"class": "container",
		"style": map[string]string{"padding": "2em"},
	},
		vdom.NewElement("h1", vdom.Props{
			"style": map[string]string{"marginBottom": "1em"},
		}, vdom.NewText("Sigma Graph Demo")),
		viewer,
	), nil
}
