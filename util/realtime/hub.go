package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vybbi/vybbi_api/internal/model"
)

// SenderResolver looks up the sender profile a message is enriched with
// before delivery.
type SenderResolver func(ctx context.Context, senderID uuid.UUID) (*model.ProfileSummary, error)

// MembershipResolver reports whether userID may read channelID. Live delivery
// obeys the same membership rule as the HTTP read path.
type MembershipResolver func(ctx context.Context, userID, channelID string) (bool, error)

// ErrNotChannelMember rejects a subscribe for a channel whose community the
// user has not joined.
var ErrNotChannelMember = errors.New("not a member of this channel's community")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewHub initializes the chat hub
func NewHub(resolve SenderResolver) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		resolve:    resolve,
	}
}

// SetResolver attaches the sender profile lookup. Must be called before the
// first PublishMessage.
func (h *Hub) SetResolver(resolve SenderResolver) {
	h.resolve = resolve
}

// SetMembership attaches the channel access check consulted on every
// subscribe. Without it the hub accepts any subscription.
func (h *Hub) SetMembership(resolve MembershipResolver) {
	h.membership = resolve
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Client %s disconnected", client.UserID)
			}
			h.mu.Unlock()
		}
	}
}

// Subscribe points the client at channelID, tearing down whatever channel it
// was listening to before. Exactly one live subscription per client. The
// membership check runs first; a denied subscribe leaves the previous
// subscription intact.
func (h *Hub) Subscribe(ctx context.Context, client *Client, channelID string) error {
	if h.membership != nil {
		ok, err := h.membership(ctx, client.UserID, channelID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotChannelMember
		}
	}

	h.mu.Lock()
	client.ChannelID = channelID
	h.mu.Unlock()
	return nil
}

// Unsubscribe detaches the client from its current channel.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	client.ChannelID = ""
	h.mu.Unlock()
}

// Add registers a client with the hub directly. The websocket path goes
// through the register channel; tests use this.
func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

// Remove drops a client without closing its send channel.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

// PublishMessage enriches msg with its sender profile and fans it out to the
// clients subscribed to the message's channel, and only those.
func (h *Hub) PublishMessage(ctx context.Context, msg model.Message) {
	if msg.Sender == nil && h.resolve != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		sender, err := h.resolve(lookupCtx, msg.SenderID)
		if err != nil {
			log.Println("failed to resolve message sender", err)
		} else {
			msg.Sender = sender
		}
	}

	data, err := json.Marshal(Envelope{
		Type:      MsgTypeMessageNew,
		ChannelID: msg.ChannelID.String(),
		Payload:   msg,
	})
	if err != nil {
		log.Println("failed to marshal message envelope", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.ChannelID != msg.ChannelID.String() {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// slow consumer, drop it
			delete(h.clients, client)
			close(client.Send)
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (h *Hub) HandleConnections(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{Conn: conn, UserID: userID, Send: make(chan []byte, 16)}
	h.register <- client

	go h.writePump(client)

	defer func() {
		h.unregister <- client
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		switch frame.Type {
		case MsgTypeSubscribe:
			subCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			subErr := h.Subscribe(subCtx, client, frame.ChannelID)
			cancel()
			if subErr != nil {
				h.sendError(client, frame.ChannelID, subErr)
			}

		case MsgTypeUnsubscribe:
			h.Unsubscribe(client)
		}
	}
}

// sendError pushes an error envelope to a single client without blocking.
func (h *Hub) sendError(client *Client, channelID string, cause error) {
	data, err := json.Marshal(Envelope{
		Type:      MsgTypeError,
		ChannelID: channelID,
		Payload:   cause.Error(),
	})
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

func (h *Hub) writePump(client *Client) {
	defer client.Conn.Close()

	for data := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
