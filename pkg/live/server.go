// Package live delivers browser component events to Go handlers over a
// websocket. Each rendered page gets a session whose Registry holds the
// handlers found while rendering it.
package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/recera/vango-sigma/internal/logging"
	"github.com/recera/vango-sigma/internal/metrics"
)

const (
	pingInterval = 54 * time.Second
	readTimeout  = 300 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 64
)

// Server handles WebSocket connections for live sessions
type Server struct {
	upgrader websocket.Upgrader
	sessions map[string]*Session
	mu       sync.RWMutex
	logger   *log.Logger
}

// Session is one rendered page and, once connected, its websocket.
type Session struct {
	ID       string
	registry *Registry
	created  time.Time
	conn     *websocket.Conn
	mu       sync.Mutex
	logger   *log.Logger
}

// NewServer creates a live server. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
		logger:   logging.WithPrefix(logger, "live"),
	}
}

// SetCheckOrigin overrides the upgrader's origin check.
func (s *Server) SetCheckOrigin(fn func(r *http.Request) bool) {
	s.upgrader.CheckOrigin = fn
}

// Attach registers a session whose events dispatch to registry.
func (s *Server) Attach(id string, registry *Registry) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:       id,
		registry: registry,
		created:  time.Now(),
		logger:   s.logger.With("session", id),
	}
	s.sessions[id] = session
	return session
}

// GetSession retrieves a session by ID
func (s *Server) GetSession(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Detach removes a session and closes its connection.
func (s *Server) Detach(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		session.close()
	}
}

// Prune detaches sessions that never connected within maxAge.
func (s *Server) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	var stale []*Session
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.conn == nil && session.created.Before(cutoff)
		session.mu.Unlock()
		if idle {
			stale = append(stale, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range stale {
		session.close()
	}
	return len(stale)
}

// Len returns the number of attached sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close detaches every session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
}

// Serve upgrades the request and runs the session until the client goes
// away. The session is detached afterwards.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := s.GetSession(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade connection", "session", id, "err", err)
		return
	}

	session.mu.Lock()
	if session.conn != nil {
		session.conn.Close()
	}
	session.conn = conn
	session.mu.Unlock()

	metrics.Sessions.Inc()
	defer metrics.Sessions.Dec()

	session.run(conn)

	s.mu.Lock()
	if current, ok := s.sessions[id]; ok && current == session {
		session.mu.Lock()
		replaced := session.conn != conn
		session.mu.Unlock()
		if !replaced {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
}

// run reads frames until the connection fails, with a writer goroutine owning
// all writes.
func (s *Session) run(conn *websocket.Conn) {
	send := make(chan Message, sendBuffer)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		s.writer(conn, send, done)
	}()
	defer func() {
		close(done)
		<-writerDone
		conn.Close()
	}()

	s.enqueue(send, Message{Type: MessageHello, Session: s.ID})
	s.logger.Debug("Sent hello")

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Unexpected close", "err", err)
			} else {
				s.logger.Debug("Connection closed", "err", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		s.handle(data, send)
	}
}

func (s *Session) handle(data []byte, send chan<- Message) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.enqueue(send, Message{Type: MessageError, Error: "malformed message"})
		return
	}
	if msg.Type != MessageEvent {
		s.logger.Debug("Ignoring message", "type", msg.Type)
		return
	}

	if err := s.registry.Dispatch(msg.HID, msg.Event, msg.Args); err != nil {
		s.logger.Warn("Dispatch failed", "hid", msg.HID, "event", msg.Event, "err", err)
		s.enqueue(send, Message{Type: MessageError, HID: msg.HID, Event: msg.Event, Error: err.Error()})
		return
	}

	metrics.Events.WithLabelValues(msg.Event).Inc()
	s.logger.Debug("Dispatched event", "hid", msg.HID, "event", msg.Event, "args", len(msg.Args))
	s.enqueue(send, Message{Type: MessageAck, HID: msg.HID, Event: msg.Event})
}

func (s *Session) enqueue(send chan<- Message, msg Message) {
	select {
	case send <- msg:
	default:
		s.logger.Warn("Send buffer full, dropping message", "type", msg.Type)
	}
}

// writer handles writing messages to the WebSocket
func (s *Session) writer(conn *websocket.Conn, send <-chan Message, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug("Failed to write message", "err", err)
				conn.Close()
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}

		case <-done:
			return
		}
	}
}
