package dto

import (
	"gymgrub_backend/internal/models"
)

type SubscriptionStatusResponse struct {
	IsPremium    bool                 `json:"isPremium"`
	Subscription *models.Subscription `json:"subscription"`
}

type PlanListResponse struct {
	Plans []models.Plan `json:"plans"`
	Total int           `json:"total"`
}
