package models

type SubscriptionStatus string
type PaymentStatus string
type PlanID string

const (
	SubscriptionStatusPending SubscriptionStatus = "pending"
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"

	// PaymentStatus is monotonic: once paid, a payment never reverts.
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	PlanMonthly PlanID = "monthly"
	PlanYearly  PlanID = "yearly"
)

// Valid reports whether the plan is one of the catalog plans.
func (p PlanID) Valid() bool {
	return p == PlanMonthly || p == PlanYearly
}
