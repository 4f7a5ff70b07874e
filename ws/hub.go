package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/my-lord1/food-delivery-backend/utils"
)

// Hub fans push events out to a user's open WebSocket connections. A user may
// be connected from several devices at once; each gets every event.
type Hub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of conns
	register   chan Subscription
	unregister chan Subscription
	broadcast  chan pushEvent
	mu         sync.Mutex
}

type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

// Envelope is the frame written to clients.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type pushEvent struct {
	UserID   uint
	Envelope Envelope
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		broadcast:  make(chan pushEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			if len(h.clients[sub.UserID]) == 0 {
				delete(h.clients, sub.UserID)
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.UserID] {
				if err := conn.WriteJSON(ev.Envelope); err != nil {
					log.WithError(err).Warn("ws write failed")
					conn.Close()
					delete(h.clients[ev.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Emit implements services.Pusher. It never blocks delivery semantics onto the
// caller: the event is dropped silently when the user has no open connection.
func (h *Hub) Emit(userID uint, event string, payload any) error {
	h.broadcast <- pushEvent{UserID: userID, Envelope: Envelope{Event: event, Payload: payload}}
	return nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/notifications
func (h *Hub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps the read side alive so pings and close frames are processed.
// Clients never send application messages on this socket.
func (h *Hub) drain(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
