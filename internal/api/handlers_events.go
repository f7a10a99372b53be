package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/gorilla/websocket"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsWriteWait  = 10 * time.Second
	wsMaxMessage = 16 << 20
)

// handleEvents streams navigation events over a WebSocket. Each inbound
// message is one navsync.Event; each gets exactly one navsync.Reply, in
// order.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	upgrader := websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "session_id", sess.ID, "error", err)
		return
	}
	defer conn.Close()

	log := s.log.With("session_id", sess.ID)
	log.Info("event stream opened")

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", "error", err)
			}
			log.Info("event stream closed")
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		reply := s.handleEvent(sess, msg)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("websocket write", "error", err)
			return
		}
	}
}

func (s *Server) handleEvent(sess *navsync.Session, msg []byte) navsync.Reply {
	var ev navsync.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return navsync.Reply{Error: "invalid message format"}
	}
	if ev.Type == navsync.EventRender && int64(len(ev.Content)) > s.cfg.MaxUploadBytes {
		return navsync.Reply{Type: ev.Type, Error: "content exceeds max size"}
	}
	out, err := s.manager.Apply(sess, ev)
	if err != nil {
		return navsync.Reply{Type: ev.Type, Error: err.Error()}
	}
	return navsync.Reply{Type: ev.Type, Data: out}
}

// checkOrigin accepts same-host requests and the configured CORS origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.CORSAllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
