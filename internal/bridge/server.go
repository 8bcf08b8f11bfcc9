// Package bridge relays menu-action events to web front-ends over WebSocket.
package bridge

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"gen3d-desktop/internal/events"
	"gen3d-desktop/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingEvery  = (pongWait * 9) / 10
	queueDepth = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type inbound struct {
	Type string `json:"type"`
}

type outbound struct {
	Type    string `json:"type"`
	Event   string `json:"event,omitempty"`
	Payload string `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan outbound
}

type Server struct {
	addr   string
	logger logger.Logger
	mux    *http.ServeMux

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewServer(addr string, log logger.Logger) *Server {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	s := &Server{
		addr:    addr,
		logger:  log,
		mux:     http.NewServeMux(),
		clients: make(map[*client]struct{}),
	}
	s.mux.HandleFunc("/events", s.handleEvents)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handle forwards a bus event to every connected client. Clients with a
// full queue miss the event.
func (s *Server) Handle(event events.Event) {
	msg := outbound{Type: "event", Event: event.Name, Payload: event.Payload}

	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			s.logger.Debug("Bridge", "client queue full, event dropped", map[string]interface{}{
				"event":   event.Name,
				"payload": event.Payload,
			})
		}
	}
}

func (s *Server) GetID() string {
	return "websocket-bridge"
}

func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Bridge", "listening", map[string]interface{}{"addr": s.addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown disconnects all clients and refuses new ones.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
}

func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c]; ok {
		close(c.send)
		delete(s.clients, c)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan outbound, queueDepth)}
	if !s.register(c) {
		return
	}
	defer s.unregister(c)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(c)
	}()

	s.push(c, outbound{Type: "subscribed", Event: "menu-action"})

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			break
		}

		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			s.push(c, outbound{Type: "pong"})
		default:
			s.push(c, outbound{Type: "error", Message: "unsupported message type"})
		}
	}

	s.unregister(c)
	<-writerDone
}

// push queues a reply; it is a no-op once the client is unregistered.
func (s *Server) push(c *client, msg outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
