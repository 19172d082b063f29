package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is handled at the HTTP level
	},
}

// feedConn wraps a websocket connection with a write lock. Gorilla
// connections allow only one concurrent writer, and redemptions for the
// same owner can land on parallel requests.
type feedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *feedConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// FeedHub broadcasts winner events to each owner's connected dashboards.
// It satisfies service.WinnerPublisher.
type FeedHub struct {
	mu    sync.RWMutex
	conns map[string]map[*feedConn]struct{} // ownerID -> connections
}

// NewFeedHub creates an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{conns: make(map[string]map[*feedConn]struct{})}
}

// PublishWinner pushes one redemption event to every listener of the owner.
// Writes that fail drop the connection; a slow dashboard never blocks the
// redemption path beyond the write itself.
func (h *FeedHub) PublishWinner(ownerID string, winner *domain.Winner) {
	h.mu.RLock()
	listeners := make([]*feedConn, 0, len(h.conns[ownerID]))
	for c := range h.conns[ownerID] {
		listeners = append(listeners, c)
	}
	h.mu.RUnlock()

	for _, c := range listeners {
		if err := c.writeJSON(winner); err != nil {
			h.remove(ownerID, c)
			c.conn.Close()
		}
	}
}

func (h *FeedHub) add(ownerID string, conn *websocket.Conn) *feedConn {
	c := &feedConn{conn: conn}
	h.mu.Lock()
	if h.conns[ownerID] == nil {
		h.conns[ownerID] = make(map[*feedConn]struct{})
	}
	h.conns[ownerID][c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *FeedHub) remove(ownerID string, c *feedConn) {
	h.mu.Lock()
	delete(h.conns[ownerID], c)
	if len(h.conns[ownerID]) == 0 {
		delete(h.conns, ownerID)
	}
	h.mu.Unlock()
}

// FeedHandler upgrades owner dashboards to a live redemption stream.
type FeedHandler struct {
	hub    *FeedHub
	auth   *service.AuthService
	owners service.OwnerStore
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *FeedHub, auth *service.AuthService, owners service.OwnerStore) *FeedHandler {
	return &FeedHandler{hub: hub, auth: auth, owners: owners}
}

// Handle upgrades HTTP to WebSocket for the caller's own redemption feed.
// URL: /api/winners/feed?token=JWT_TOKEN (auth via query param; browsers
// cannot set headers on WebSocket dials).
func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.auth.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	owner, err := h.owners.FindByAccount(r.Context(), claims.Sub)
	if err != nil || owner == nil {
		http.Error(w, "user profile not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := h.hub.add(owner.ID, conn)
	log.Printf("🔌 Redemption feed connected (owner: %s)", claims.Email)

	// Reader loop exists only to notice the close.
	go func() {
		defer func() {
			h.hub.remove(owner.ID, c)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
