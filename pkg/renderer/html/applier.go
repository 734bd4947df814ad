package html

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

// voidElements are HTML elements that cannot have children
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// booleanAttributes are HTML attributes that are boolean flags
var booleanAttributes = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
	"defer":     true,
	"async":     true,
	"multiple":  true,
	"autofocus": true,
}

// HandlerSink receives the event handlers found while rendering, keyed by the
// hydration id written into the markup.
type HandlerSink interface {
	Add(hid, event string, h vdom.EventHandler)
}

// HTMLApplier renders VNodes to HTML
type HTMLApplier struct {
	w              io.Writer
	hydrationIDGen *HydrationIDGenerator
	sink           HandlerSink
	err            error
}

// HydrationIDGenerator generates unique IDs for hydration
type HydrationIDGenerator struct {
	mu      sync.Mutex
	counter uint32
}

// NewHydrationIDGenerator creates a new hydration ID generator
func NewHydrationIDGenerator() *HydrationIDGenerator {
	return &HydrationIDGenerator{counter: 1}
}

// Next returns the next hydration ID
func (g *HydrationIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.counter
	g.counter++
	return fmt.Sprintf("h%d", id)
}

// Option configures an HTMLApplier.
type Option func(*HTMLApplier)

// WithHandlerSink hands every rendered event handler to sink.
func WithHandlerSink(sink HandlerSink) Option {
	return func(a *HTMLApplier) { a.sink = sink }
}

// NewHTMLApplier creates a new HTML applier
func NewHTMLApplier(w io.Writer, opts ...Option) *HTMLApplier {
	a := &HTMLApplier{
		w:              w,
		hydrationIDGen: NewHydrationIDGenerator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply renders a VNode tree to HTML
func (a *HTMLApplier) Apply(prev, next *vdom.VNode) error {
	if prev != nil {
		return fmt.Errorf("htmlApplier does not support incremental updates")
	}

	if next == nil {
		return nil
	}

	a.renderNode(next)
	return a.err
}

// write helper that tracks errors
func (a *HTMLApplier) write(s string) {
	if a.err != nil {
		return
	}
	_, a.err = io.WriteString(a.w, s)
}

// renderNode renders a single VNode
func (a *HTMLApplier) renderNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		// HTML escape text content to prevent XSS
		a.write(html.EscapeString(node.Text))

	case vdom.KindElement:
		a.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderNode(&node.Kids[i])
		}

	case vdom.KindComponent:
		a.renderComponent(node)
	}
}

// bindEvents assigns a hydration id to nodes with handlers and reports them
// to the sink. It returns the id and the bound event names.
func (a *HTMLApplier) bindEvents(node *vdom.VNode) (string, []string) {
	if !node.HasFlag(vdom.FlagHasEvents) {
		return "", nil
	}
	events := node.Events()
	if len(events) == 0 {
		return "", nil
	}

	hid := a.hydrationIDGen.Next()
	if a.sink != nil {
		for _, name := range events {
			a.sink.Add(hid, name, node.Props[name].(vdom.EventHandler))
		}
	}
	return hid, events
}

// renderElement renders an element node
func (a *HTMLApplier) renderElement(node *vdom.VNode) {
	a.write("<")
	a.write(node.Tag)

	if hid, events := a.bindEvents(node); hid != "" {
		a.writeAttr("data-hid", hid)
		a.writeAttr("data-events", strings.Join(events, ","))
	}

	for _, key := range sortedKeys(node.Props) {
		value := node.Props[key]

		// Skip event handlers and special props
		if key == "key" || key == "ref" || vdom.IsEventProp(key) {
			continue
		}

		if booleanAttributes[key] {
			if v, ok := value.(bool); ok && v {
				a.write(" ")
				a.write(key)
			}
			continue
		}

		var valueStr string
		if style, ok := value.(map[string]string); ok && key == "style" {
			valueStr = StyleString(style)
		} else {
			valueStr = fmt.Sprintf("%v", value)
		}

		// Security: prevent javascript: URLs in href/src attributes
		if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(strings.TrimSpace(valueStr)), "javascript:") {
			valueStr = "#"
		}

		a.writeAttr(key, valueStr)
	}

	a.write(">")

	// Void elements don't have closing tags or children
	if voidElements[node.Tag] {
		return
	}

	// Script and style tags should not have their content escaped
	isRawTextElement := node.Tag == "script" || node.Tag == "style"
	for i := range node.Kids {
		if isRawTextElement {
			a.renderRawNode(&node.Kids[i])
		} else {
			a.renderNode(&node.Kids[i])
		}
	}

	a.write("</")
	a.write(node.Tag)
	a.write(">")
}

// renderComponent renders a mount point for an external component. Non-event
// props are serialized as JSON; json.Marshal escapes <, > and & so the payload
// cannot close the script element.
func (a *HTMLApplier) renderComponent(node *vdom.VNode) {
	props := make(map[string]any, len(node.Props))
	for k, v := range node.Props {
		if k == "key" || k == "ref" || vdom.IsEventProp(k) {
			continue
		}
		props[k] = v
	}
	payload, err := json.Marshal(props)
	if err != nil {
		if a.err == nil {
			a.err = fmt.Errorf("encode props for %s: %w", node.Tag, err)
		}
		return
	}

	a.write("<div")
	a.writeAttr("data-vango-component", node.Tag)
	a.writeAttr("data-library", node.Library)
	if hid, events := a.bindEvents(node); hid != "" {
		a.writeAttr("data-hid", hid)
		a.writeAttr("data-events", strings.Join(events, ","))
	}
	a.write(`><script type="application/json">`)
	a.write(string(payload))
	a.write("</script>")

	for i := range node.Kids {
		a.renderNode(&node.Kids[i])
	}
	a.write("</div>")
}

func (a *HTMLApplier) writeAttr(key, value string) {
	a.write(" ")
	a.write(key)
	a.write(`="`)
	a.write(html.EscapeString(value))
	a.write(`"`)
}

// renderRawNode renders a node without HTML escaping (for script/style content)
func (a *HTMLApplier) renderRawNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		a.write(node.Text)

	case vdom.KindElement:
		a.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderRawNode(&node.Kids[i])
		}
	}
}

// StyleString renders a style map as CSS declarations in key order.
// camelCase keys are converted to kebab-case ("borderRadius" -> "border-radius").
func StyleString(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(kebab(k))
		b.WriteString(":")
		b.WriteString(style[k])
	}
	return b.String()
}

func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys(props vdom.Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderToString is a convenience function to render a VNode to a string
func RenderToString(node *vdom.VNode, opts ...Option) (string, error) {
	var buf strings.Builder
	applier := NewHTMLApplier(&buf, opts...)
	err := applier.Apply(nil, node)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
