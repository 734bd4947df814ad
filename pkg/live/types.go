package live

// MessageType identifies a live protocol message.
type MessageType string

const (
	// MessageHello is sent by the server once a connection is established.
	MessageHello MessageType = "hello"
	// MessageEvent carries a component event from the browser.
	MessageEvent MessageType = "event"
	// MessageAck confirms an event reached its handler.
	MessageAck MessageType = "ack"
	// MessageError reports an event that could not be dispatched.
	MessageError MessageType = "error"
)

// Message is the JSON frame exchanged over the live websocket.
//
//	{"type":"event","hid":"h1","event":"onNodeClick","args":["1",{"label":"Node 1"}]}
type Message struct {
	Type    MessageType `json:"type"`
	Session string      `json:"session,omitempty"`
	HID     string      `json:"hid,omitempty"`
	Event   string      `json:"event,omitempty"`
	Args    []any       `json:"args,omitempty"`
	Error   string      `json:"error,omitempty"`
}
