package services

import (
	"context"
	"errors"
	"time"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/repositories"
)

type SubscriptionService interface {
	// GetStatus reports whether the user currently has premium access,
	// together with the backing subscription when one exists.
	GetStatus(ctx context.Context, userID string) (*dto.SubscriptionStatusResponse, error)

	// GetPlans returns the purchasable plan catalog.
	GetPlans(ctx context.Context) (*dto.PlanListResponse, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

func (s *subscriptionService) GetStatus(ctx context.Context, userID string) (*dto.SubscriptionStatusResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &dto.SubscriptionStatusResponse{IsPremium: false}, nil
		}
		return nil, err
	}

	// Premium is evaluated at read time: an active row whose expiry has
	// passed no longer grants access even before the sweep flips it.
	return &dto.SubscriptionStatusResponse{
		IsPremium:    sub.IsPremium(time.Now()),
		Subscription: sub,
	}, nil
}

func (s *subscriptionService) GetPlans(ctx context.Context) (*dto.PlanListResponse, error) {
	plans, err := s.subscriptionRepo.FindActivePlans()
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return &dto.PlanListResponse{Plans: plans, Total: len(plans)}, nil
}
