package sigmagraph

import "github.com/recera/vango-sigma/pkg/vango/vdom"

// Events holds the callbacks the viewer can fire. Nil callbacks are not bound.
type Events struct {
	OnNodeClick      func(nodeID string, nodeData map[string]any)
	OnNodeHover      func(nodeID string, nodeData map[string]any)
	OnEdgeClick      func(edgeID string, edgeData map[string]any)
	OnEdgeHover      func(edgeID string, edgeData map[string]any)
	OnLayoutComplete func()
}

// EventSpec declares an event and the positional arguments it is fired with.
type EventSpec struct {
	Name string
	Prop string
	Args []string
}

// EventSpecs lists every event the component exposes.
var EventSpecs = []EventSpec{
	{"on_node_click", "onNodeClick", []string{"node_id", "node_data"}},
	{"on_node_hover", "onNodeHover", []string{"node_id", "node_data"}},
	{"on_edge_click", "onEdgeClick", []string{"edge_id", "edge_data"}},
	{"on_edge_hover", "onEdgeHover", []string{"edge_id", "edge_data"}},
	{"on_layout_complete", "onLayoutComplete", nil},
}

func (e Events) bind(props vdom.Props) {
	withID := func(fn func(string, map[string]any)) vdom.EventHandler {
		return func(args []any) {
			id, data := idAndData(args)
			fn(id, data)
		}
	}

	if e.OnNodeClick != nil {
		props["onNodeClick"] = withID(e.OnNodeClick)
	}
	if e.OnNodeHover != nil {
		props["onNodeHover"] = withID(e.OnNodeHover)
	}
	if e.OnEdgeClick != nil {
		props["onEdgeClick"] = withID(e.OnEdgeClick)
	}
	if e.OnEdgeHover != nil {
		props["onEdgeHover"] = withID(e.OnEdgeHover)
	}
	if fn := e.OnLayoutComplete; fn != nil {
		props["onLayoutComplete"] = vdom.EventHandler(func([]any) { fn() })
	}
}

// idAndData unpacks (id, data) as sent by the browser. Missing or mistyped
// arguments come through as zero values.
func idAndData(args []any) (string, map[string]any) {
	var (
		id   string
		data map[string]any
	)
	if len(args) > 0 {
		id, _ = args[0].(string)
	}
	if len(args) > 1 {
		data, _ = args[1].(map[string]any)
	}
	return id, data
}
