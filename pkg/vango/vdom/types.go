package vdom

import "sort"

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
	// KindComponent represents an external JavaScript component invocation.
	// Tag is the exported component name, Library the module it is imported from.
	KindComponent
)

// VNodeFlags are bitwise flags for VNode optimizations
type VNodeFlags uint8

const (
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey VNodeFlags = 1 << iota
	// FlagHasRef indicates this node has a ref callback
	FlagHasRef
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
)

// Props represents the properties/attributes of a VNode
type Props map[string]any

// EventHandler receives the positional arguments an event was fired with.
// The live bridge invokes it for props whose key starts with "on".
type EventHandler func(args []any)

// VNode represents a virtual DOM node
// This struct is immutable - once created, it should never be modified
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name (e.g., "div", "span") or the component name
	Tag string

	// Props contains all properties/attributes for this node
	// This includes event handlers, style, class, etc.
	Props Props

	// Kids contains child nodes
	// For KindText, this is nil
	Kids []VNode

	// Key is used for efficient list reconciliation
	// Empty string means no key
	Key string

	// Flags contains optimization hints
	Flags VNodeFlags

	// Text content (only used when Kind == KindText)
	Text string

	// Library is the import path of the component (only used when Kind == KindComponent)
	Library string
}

// IsEventProp reports whether a prop key names an event handler ("onClick").
func IsEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

func flagsFor(props Props) VNodeFlags {
	flags := VNodeFlags(0)
	for k := range props {
		if IsEventProp(k) {
			flags |= FlagHasEvents
			break
		}
	}
	if _, hasKey := props["key"]; hasKey {
		flags |= FlagHasKey
	}
	if _, hasRef := props["ref"]; hasRef {
		flags |= FlagHasRef
	}
	return flags
}

func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
		Flags: flagsFor(props),
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// NewComponent creates a VNode that invokes the component tag exported by
// library. Props are forwarded to the component unchanged.
func NewComponent(library, tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:    KindComponent,
		Tag:     tag,
		Library: library,
		Props:   props,
		Kids:    collect(children),
		Flags:   flagsFor(props),
	}
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// IsFragment returns true if this is a fragment node
func (v VNode) IsFragment() bool {
	return v.Kind == KindFragment
}

// IsComponent returns true if this is an external component node
func (v VNode) IsComponent() bool {
	return v.Kind == KindComponent
}

// HasFlag returns true if the specified flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool {
	return v.Flags&flag != 0
}

// GetKey returns the key of this node, handling the Props map safely
func (v VNode) GetKey() string {
	if v.Props != nil {
		if key, ok := v.Props["key"].(string); ok {
			return key
		}
	}
	return v.Key
}

// Events returns the handler props of v in key order.
func (v VNode) Events() []string {
	var names []string
	for k, val := range v.Props {
		if !IsEventProp(k) {
			continue
		}
		if _, ok := val.(EventHandler); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
