// Package sigmagraph is a Vango component that renders graphs with Sigma.js.
//
// The Go side only declares the component: Create stages the JavaScript
// sources, then emits a component node whose props the browser bundle hands
// to the SigmaGraphWrapper React component. Layout, hit-testing and drawing
// all happen in Sigma.js and Graphology.
//
//	st := stager.New(stager.Config{Root: projectDir})
//	viewer, err := sigmagraph.New(st).Create(sigmagraph.Props{
//		GraphData: sigmagraph.NewGraphData(nodes, edges),
//		Theme:     sigmagraph.ThemeDark,
//	}, sigmagraph.Events{
//		OnNodeClick: func(id string, data map[string]any) { ... },
//	})
package sigmagraph

import (
	"fmt"

	"github.com/recera/vango-sigma/pkg/stager"
	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

const (
	// Library is the wrapper module path relative to the generated route files.
	Library = "../../utils/SigmaGraphWrapper.jsx"
	// Tag is the component exported by Library.
	Tag = "SigmaGraphWrapper"
)

// Stager stages the component's JavaScript sources.
type Stager interface {
	Ensure() (*stager.Report, error)
}

// Component creates graph viewer nodes.
type Component struct {
	stager Stager
}

// New returns a Component that stages assets with s on every Create.
// A nil s skips staging.
func New(s Stager) *Component {
	return &Component{stager: s}
}

// Create stages the assets once, then returns the component node for props,
// with events bound and children forwarded unchanged.
func (c *Component) Create(props Props, events Events, children ...*vdom.VNode) (*vdom.VNode, error) {
	if c.stager != nil {
		if _, err := c.stager.Ensure(); err != nil {
			return nil, fmt.Errorf("sigmagraph: stage assets: %w", err)
		}
	}

	attrs := props.Attributes()
	events.bind(attrs)
	return vdom.NewComponent(Library, Tag, attrs, children...), nil
}
