package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is a catalog entry for a premium tier. Seeded at startup; prices are
// in USD, features is a display list for the pricing page.
type Plan struct {
	ID        string         `gorm:"primaryKey" json:"id"` // "monthly", "yearly"
	Name      string         `gorm:"not null" json:"name"`
	PriceUSD  float64        `gorm:"not null" json:"price_usd"`
	Currency  string         `gorm:"default:'USD'" json:"currency"`
	Features  datatypes.JSON `gorm:"type:jsonb" json:"features"` // ["Unlimited workout logs", ...]
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// Subscription is the durable record of a premium purchase. It is created
// pending together with the Lightning invoice and flipped to active by the
// settlement checker, matched by PaymentID.
//
// A subscription grants premium access iff status == active AND
// expires_at > now; expiry is evaluated at read time.
type Subscription struct {
	BaseModel
	UserID    string             `gorm:"not null;index" json:"user_id"`
	PlanID    string             `gorm:"not null" json:"plan_id"`
	Status    SubscriptionStatus `gorm:"default:'pending'" json:"status"`
	Amount    float64            `json:"amount"`
	PaymentID string             `gorm:"uniqueIndex" json:"payment_id"`
	Invoice   string             `json:"invoice"` // BOLT11 payment request
	ExpiresAt time.Time          `gorm:"index" json:"expires_at"`
	StartedAt *time.Time         `json:"started_at"`
}

// IsPremium reports whether the subscription currently grants premium access.
func (s *Subscription) IsPremium(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt.After(now)
}
