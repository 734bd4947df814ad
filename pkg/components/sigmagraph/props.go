package sigmagraph

import "github.com/recera/vango-sigma/pkg/vango/vdom"

// LayoutType selects the layout algorithm run by the viewer. The set is open;
// values are interpreted by the browser library.
type LayoutType string

const (
	LayoutForceAtlas2 LayoutType = "forceAtlas2"
	LayoutCircular    LayoutType = "circular"
	LayoutRandom      LayoutType = "random"
	LayoutNoverlap    LayoutType = "noverlap"
)

// EdgeType selects how edges are drawn.
type EdgeType string

const (
	EdgeArrow    EdgeType = "arrow"
	EdgeLine     EdgeType = "line"
	EdgeCurve    EdgeType = "curve"
	EdgeTriangle EdgeType = "triangle"
)

// Theme selects the viewer color scheme. ThemeCustom reads CustomTheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeCustom Theme = "custom"
)

// Props configures the graph viewer. Zero values take the defaults listed in
// PropSpecs; ShowNodeLabels is a pointer because it defaults to true.
type Props struct {
	GraphData GraphData
	Settings  map[string]any // Sigma settings, merged over the viewer's own

	ShowEdgeLabels bool
	ShowNodeLabels *bool

	SearchQuery   string
	LayoutType    LayoutType
	LayoutRunning bool
	DragNeighbors bool

	EdgeType    EdgeType
	Style       map[string]string
	Theme       Theme
	CustomTheme map[string]string
}

// PropSpec describes one entry of the property set handed to the component.
type PropSpec struct {
	Name    string // host-side name
	Prop    string // JavaScript prop name
	Type    string
	Default any
}

// PropSpecs is the wire contract between Props and the JavaScript component.
var PropSpecs = []PropSpec{
	{"graph_data", "graphData", "map[string]any", map[string]any{}},
	{"settings", "settings", "map[string]any", map[string]any{}},
	{"show_edge_labels", "showEdgeLabels", "bool", false},
	{"show_node_labels", "showNodeLabels", "bool", true},
	{"search_query", "searchQuery", "string", ""},
	{"layout_type", "layoutType", "string", string(LayoutForceAtlas2)},
	{"layout_running", "layoutRunning", "bool", false},
	{"drag_neighbors", "dragNeighbors", "bool", false},
	{"edge_type", "edgeType", "string", string(EdgeArrow)},
	{"style", "style", "map[string]string", DefaultStyle()},
	{"theme", "theme", "string", string(ThemeLight)},
	{"custom_theme", "customTheme", "map[string]string", map[string]string{}},
}

// Bool returns a pointer to v, for ShowNodeLabels.
func Bool(v bool) *bool { return &v }

// DefaultStyle returns the container style used when Props.Style is nil.
func DefaultStyle() map[string]string {
	return map[string]string{"width": "100%", "height": "600px"}
}

// DefaultProps returns Props with every default filled in.
func DefaultProps() Props {
	var p Props
	return p.withDefaults()
}

func (p Props) withDefaults() Props {
	if p.GraphData == nil {
		p.GraphData = GraphData{}
	}
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}
	if p.ShowNodeLabels == nil {
		p.ShowNodeLabels = Bool(true)
	}
	if p.LayoutType == "" {
		p.LayoutType = LayoutForceAtlas2
	}
	if p.EdgeType == "" {
		p.EdgeType = EdgeArrow
	}
	if p.Style == nil {
		p.Style = DefaultStyle()
	}
	if p.Theme == "" {
		p.Theme = ThemeLight
	}
	if p.CustomTheme == nil {
		p.CustomTheme = map[string]string{}
	}
	return p
}

// Attributes returns the property set passed to the component, keyed by
// JavaScript prop name. Maps are passed by reference, not copied.
func (p Props) Attributes() vdom.Props {
	p = p.withDefaults()
	return vdom.Props{
		"graphData":      p.GraphData,
		"settings":       p.Settings,
		"showEdgeLabels": p.ShowEdgeLabels,
		"showNodeLabels": *p.ShowNodeLabels,
		"searchQuery":    p.SearchQuery,
		"layoutType":     string(p.LayoutType),
		"layoutRunning":  p.LayoutRunning,
		"dragNeighbors":  p.DragNeighbors,
		"edgeType":       string(p.EdgeType),
		"style":          p.Style,
		"theme":          string(p.Theme),
		"customTheme":    p.CustomTheme,
	}
}
