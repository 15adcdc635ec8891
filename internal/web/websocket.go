package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dastanaron/tabmarks/internal/messaging"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// wsConn is one page's message channel. Requests are dispatched as they
// arrive; responses are written back as they resolve, in any order.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	log     logrus.FieldLogger
}

func (c *wsConn) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *wsConn) writeResponse(resp messaging.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.log.WithError(err).Error("Encoding response failed")
		return
	}
	if err := c.write(websocket.TextMessage, data); err != nil {
		c.log.WithError(err).Debug("Writing response failed")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	c := &wsConn{conn: conn, log: s.log.WithField("remote", r.RemoteAddr)}

	// on return: cancel outstanding requests, wait for their writers, close
	var pending sync.WaitGroup
	defer pending.Wait()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go s.keepAlive(ctx, c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.WithError(err).Debug("Websocket closed")
			}
			return
		}

		var req messaging.Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.writeResponse(messaging.ErrorResponse("invalid request: " + err.Error()))
			continue
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}

		future := s.dispatcher.Dispatch(ctx, req)
		pending.Add(1)
		go func() {
			defer pending.Done()
			resp, err := future.Wait(ctx)
			if err != nil {
				return
			}
			c.writeResponse(resp)
		}()
	}
}

func (s *Server) keepAlive(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
