package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is a structured supply/demand listing linked 1:1 to a post
// with post_type = service_request.
type ServiceRequest struct {
	ID           uuid.UUID       `json:"id"`
	AuthorID     uuid.UUID       `json:"author_id"`
	Author       *ProfileSummary `json:"author,omitempty"`
	RequestType  string          `json:"request_type"` // offer | demand
	Category     string          `json:"category"`
	Location     *string         `json:"location,omitempty"`
	BudgetMin    *int            `json:"budget_min,omitempty"`
	BudgetMax    *int            `json:"budget_max,omitempty"`
	EventDate    *time.Time      `json:"event_date,omitempty"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	Description  string          `json:"description"`
	Requirements []string        `json:"requirements,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CreateServiceRequestRequest struct {
	RequestType  string     `json:"request_type" validate:"required,request_type"`
	Category     string     `json:"category" validate:"required"`
	Location     *string    `json:"location,omitempty"`
	BudgetMin    *int       `json:"budget_min,omitempty"`
	BudgetMax    *int       `json:"budget_max,omitempty"`
	EventDate    *time.Time `json:"event_date,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Description  string     `json:"description" validate:"required,max=1000"`
	Requirements []string   `json:"requirements,omitempty"`

	AuthorID uuid.UUID `json:"-"`
}

// AnnouncementsParams filters the published listing board.
type AnnouncementsParams struct {
	Category     string
	RequestType  string
	BudgetFilter string // low | medium | high
	Page         int
	PageSize     int
}
