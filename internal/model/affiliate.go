package model

import (
	"time"

	"github.com/google/uuid"
)

type AffiliateLink struct {
	ID               uuid.UUID `json:"id"`
	ProfileID        uuid.UUID `json:"profile_id"`
	Code             string    `json:"code"`
	CommissionRate   float64   `json:"commission_rate"`
	ClicksCount      int       `json:"clicks_count"`
	ConversionsCount int       `json:"conversions_count"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type AffiliateConversion struct {
	ID         uuid.UUID `json:"id"`
	LinkID     uuid.UUID `json:"link_id"`
	Amount     float64   `json:"amount"`
	Commission float64   `json:"commission"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateAffiliateLinkRequest struct {
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=1"`
}

type RecordConversionRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// AffiliateStats aggregates a link's performance for the dashboard.
type AffiliateStats struct {
	Link            AffiliateLink `json:"link"`
	TotalRevenue    float64       `json:"total_revenue"`
	TotalCommission float64       `json:"total_commission"`
}
