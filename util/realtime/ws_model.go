package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Frame types
const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypeMessageNew  = "message_new"
	MsgTypeError       = "error"
)

// Client represents a connected chat user. A client listens to at most one
// channel at a time; subscribing replaces the previous subscription.
type Client struct {
	Conn      *websocket.Conn
	UserID    string
	ChannelID string
	Send      chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	resolve    SenderResolver
	membership MembershipResolver
	mu         sync.Mutex
}

// Inbound frame from a client
type Frame struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id,omitempty"`
}

// Envelope is the frame pushed to subscribed clients.
type Envelope struct {
	Type      string      `json:"type"`
	ChannelID string      `json:"channel_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}
