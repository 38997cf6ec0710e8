package model

import (
	"time"

	"github.com/google/uuid"
)

type Community struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	IconURL       *string    `json:"icon_url,omitempty"`
	CreatorID     uuid.UUID  `json:"creator_id"`
	MemberCount   int        `json:"member_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	IsDeleted     bool       `json:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Channel struct {
	ID          uuid.UUID `json:"id"`
	CommunityID uuid.UUID `json:"community_id"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

type Membership struct {
	CommunityID uuid.UUID `json:"community_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Message order is server-assigned creation order; readers never reorder.
type Message struct {
	ID        uuid.UUID       `json:"id"`
	ChannelID uuid.UUID       `json:"channel_id"`
	SenderID  uuid.UUID       `json:"sender_id"`
	Sender    *ProfileSummary `json:"sender,omitempty"`
	Content   string          `json:"content"`
	IsDeleted bool            `json:"is_deleted"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateCommunityRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommunityScreen is the payload behind the chat screen state machine:
// community, the viewer's membership, the channel list and the default
// (first) channel selection.
type CommunityScreen struct {
	Community       Community `json:"community"`
	Channels        []Channel `json:"channels"`
	SelectedChannel *Channel  `json:"selected_channel,omitempty"`
	Role            string    `json:"role"`
}
