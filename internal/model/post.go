package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaAttachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Alt  string `json:"alt,omitempty"`
}

type Post struct {
	ID             uuid.UUID         `json:"id"`
	AuthorID       uuid.UUID         `json:"author_id"`
	Author         *ProfileSummary   `json:"author,omitempty"`
	Content        string            `json:"content"`
	PostType       string            `json:"post_type"` // text, image, video, music, event, service_request
	Visibility     string            `json:"visibility"`
	RelatedID      *uuid.UUID        `json:"related_id,omitempty"` // service_requests row when post_type = service_request
	Media          []MediaAttachment `json:"media,omitempty"`
	LikesCount     int               `json:"likes_count"`
	CommentsCount  int               `json:"comments_count"`
	ViewerHasLiked bool              `json:"viewer_has_liked"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type CreatePostRequest struct {
	Content    string            `json:"content" validate:"required,max=1000"`
	PostType   string            `json:"post_type" validate:"required,post_type"`
	Visibility string            `json:"visibility"`
	Media      []MediaAttachment `json:"media,omitempty"`

	AuthorID  uuid.UUID  `json:"-"`
	RelatedID *uuid.UUID `json:"-"`
}

type Comment struct {
	ID        uuid.UUID       `json:"id"`
	PostID    uuid.UUID       `json:"post_id"`
	AuthorID  uuid.UUID       `json:"author_id"`
	Author    *ProfileSummary `json:"author,omitempty"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
}

type AddCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ToggleLikeResult reports the server-confirmed state after a toggle.
type ToggleLikeResult struct {
	PostID     uuid.UUID `json:"post_id"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likes_count"`
}

// FeedItem is a post plus the card payload the client discriminates on:
// service-request posts carry their linked listing, everything else renders
// as a plain post card.
type FeedItem struct {
	Post
	CardType       string          `json:"card_type"` // post | service_request
	ServiceRequest *ServiceRequest `json:"service_request,omitempty"`
}

type FeedPage struct {
	Items      []FeedItem `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}
