// Package ws streams grid changes to a browser over a websocket.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message is one frame sent to the client.
type Message struct {
	Type      string      `json:"type"`
	Grid      domain.Grid `json:"grid"`
	Remaining int         `json:"remaining"`
}

// Feed is a grid observer backed by one websocket connection.
type Feed struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  logrus.FieldLogger
}

func NewFeed(conn *websocket.Conn, log logrus.FieldLogger) *Feed {
	return &Feed{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
		log:  log,
	}
}

// OnGridChanged queues the grid without blocking the caller. Frames are
// dropped when the client falls behind or the feed is closed.
func (f *Feed) OnGridChanged(g domain.Grid) {
	b, err := json.Marshal(Message{Type: "grid", Grid: g, Remaining: g.Count()})
	if err != nil {
		f.log.WithError(err).Error("marshal grid frame")
		return
	}
	select {
	case <-f.done:
	case f.send <- b:
	default:
		f.log.Warn("feed buffer full, dropping grid frame")
	}
}

// Done is closed once the connection has gone away.
func (f *Feed) Done() <-chan struct{} { return f.done }

// Serve pumps frames until the client disconnects. It blocks.
func (f *Feed) Serve() {
	go f.writePump()
	f.readPump()
}

// Close shuts the connection down. Safe to call more than once.
func (f *Feed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		err = f.conn.Close()
	})
	return err
}

// readPump only watches for close and pong frames; clients send nothing.
func (f *Feed) readPump() {
	defer f.Close()
	f.conn.SetReadLimit(maxMessageSize)
	_ = f.conn.SetReadDeadline(time.Now().Add(pongWait))
	f.conn.SetPongHandler(func(string) error {
		return f.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := f.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.log.WithError(err).Warn("websocket read error")
			} else {
				f.log.Debug("websocket closed")
			}
			return
		}
	}
}

func (f *Feed) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		f.Close()
	}()
	for {
		select {
		case <-f.done:
			_ = f.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = f.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-f.send:
			_ = f.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				f.log.WithError(err).Warn("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = f.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
