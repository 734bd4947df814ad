package sigmagraph

// GraphData is a graph payload in Graphology JSON form or as plain node and
// edge lists. It is forwarded to the browser unchanged; the external library
// owns validation and its own graph representation.
type GraphData map[string]any

// NewGraphData builds a payload from node and edge attribute lists. The slices
// are stored as given, so their order is what the viewer receives.
func NewGraphData(nodes, edges []map[string]any) GraphData {
	return GraphData{"nodes": nodes, "edges": edges}
}

// Nodes returns the node list when it was built with NewGraphData.
func (g GraphData) Nodes() []map[string]any {
	nodes, _ := g["nodes"].([]map[string]any)
	return nodes
}

// Edges returns the edge list when it was built with NewGraphData.
func (g GraphData) Edges() []map[string]any {
	edges, _ := g["edges"].([]map[string]any)
	return edges
}
