package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a user in the directory. Posts and messages
// reference profiles, never raw users.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Slug        string    `json:"slug"`
	ProfileType string    `json:"profile_type"`
	Bio         *string   `json:"bio,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Location    *string   `json:"location,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileSummary is the denormalized sender/author shape attached to posts,
// comments and chat messages at read time.
type ProfileSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	ProfileType string    `json:"profile_type"`
}

type UpsertProfileRequest struct {
	DisplayName string  `json:"display_name" validate:"required"`
	ProfileType string  `json:"profile_type" validate:"required,profile_type"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}
