package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

// AuthTokenHeader is the WebSocket token transport: the identity token is
// read once, from the handshake request, not from individual messages.
const AuthTokenHeader = "Auth-Token"

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 8
)

type client struct {
	conn *websocket.Conn
	send chan Event
	// identity is the user resolved from the handshake header, nil when the
	// guard rejected the token.
	identity *domain.PublicUser
}

type inboundMessage struct {
	Event string `json:"event"`
}

// Handler upgrades connections and serves the notification channel. Any
// client may connect and receive broadcasts; only the hello echo requires
// a resolvable identity.
type Handler struct {
	hub      *Hub
	tokens   ports.TokenManager
	users    ports.UserRepository
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, tokens ports.TokenManager, users ports.UserRepository, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		users:  users,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := h.resolveIdentity(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := &client{
		conn:     conn,
		send:     make(chan Event, sendBufferSize),
		identity: identity,
	}
	h.hub.add(c)
	h.logger.Debug("websocket client connected", slog.String("remote_addr", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

// resolveIdentity is the WebSocket variant of the identity guard: same
// verify-then-resolve steps, but a failure leaves the connection alive with
// no identity instead of rejecting it.
func (h *Handler) resolveIdentity(r *http.Request) *domain.PublicUser {
	userID, err := h.tokens.Verify(r.Header.Get(AuthTokenHeader))
	if err != nil {
		return nil
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil || user == nil {
		return nil
	}

	public := user.Public()
	return &public
}

func (h *Handler) readLoop(c *client) {
	defer func() {
		h.hub.remove(c)
		c.conn.Close()
	}()

	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if msg.Event == "hello" {
			h.hub.send(c, h.helloReply(c))
		}
	}
}

// helloReply echoes the resolved identity, or the literal "Unauthorized"
// when the handshake guard could not resolve one.
func (h *Handler) helloReply(c *client) Event {
	if c.identity == nil {
		return Event{Event: EventUserCreated, Data: "Unauthorized"}
	}
	return Event{Event: EventUserCreated, Data: c.identity}
}

func (h *Handler) writeLoop(c *client) {
	for ev := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			h.hub.remove(c)
			c.conn.Close()
			drain(c.send)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
}

func drain(ch chan Event) {
	for range ch {
	}
}

var _ ports.UserNotifier = (*Hub)(nil)
