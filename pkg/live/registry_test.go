package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	var got []any
	r.Add("h1", "onNodeClick", func(args []any) { got = args })

	require.NoError(t, r.Dispatch("h1", "onNodeClick", []any{"1", map[string]any{"label": "Node 1"}}))
	assert.Equal(t, []any{"1", map[string]any{"label": "Node 1"}}, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryUnknownHandler(t *testing.T) {
	r := NewRegistry()
	r.Add("h1", "onNodeClick", func([]any) {})

	tests := []struct {
		name  string
		hid   string
		event string
	}{
		{"unknown hid", "h9", "onNodeClick"},
		{"unknown event", "h1", "onEdgeClick"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, r.Dispatch(tt.hid, tt.event, nil), ErrUnknownHandler)
		})
	}
}

func TestRegistryRecoversPanics(t *testing.T) {
	r := NewRegistry()
	r.Add("h1", "onLayoutComplete", vdom.EventHandler(func([]any) { panic("boom") }))

	err := r.Dispatch("h1", "onLayoutComplete", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
