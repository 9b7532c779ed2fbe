package lib

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ThreadSafeWebSocket wraps a websocket.Conn and allows many readers and writers to
// read/write the conn from goroutines without having to track safe access.
// This comes with the caveat that all writes block eachother, and similarly for reads.
// See https://pkg.go.dev/github.com/gorilla/websocket?utm_source=godoc#hdr-Concurrency.
type ThreadSafeWebSocket struct {
	c            *websocket.Conn
	writeMu      *sync.Mutex
	readMu       *sync.Mutex
	writeTimeout time.Duration
}

// NewThreadSafeWebSocket wraps c. A zero writeTimeout means writes never time out.
func NewThreadSafeWebSocket(c *websocket.Conn, writeTimeout time.Duration) ThreadSafeWebSocket {
	return ThreadSafeWebSocket{c, &sync.Mutex{}, &sync.Mutex{}, writeTimeout}
}

func (s ThreadSafeWebSocket) ReadMessage() (int, []byte, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	return s.c.ReadMessage()
}

func (s ThreadSafeWebSocket) WriteMessage(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.writeTimeout > 0 {
		if err := s.c.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return err
		}
	}
	return s.c.WriteMessage(messageType, data)
}

// WriteText is WriteMessage for websocket.TextMessage, which is all sankey sends.
func (s ThreadSafeWebSocket) WriteText(data []byte) error {
	return s.WriteMessage(websocket.TextMessage, data)
}

// Close sends a normal closure frame and closes the underlying connection.
func (s ThreadSafeWebSocket) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.WriteMessage(websocket.CloseMessage, msg)
	return s.c.Close()
}
