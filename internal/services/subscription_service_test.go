package services

import (
	"context"
	"testing"
	"time"

	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusRepo struct {
	fakeSubscriptionRepo
	active    *models.Subscription
	activeErr error
	plans     []models.Plan
}

func (r *fakeStatusRepo) FindActiveByUser(userID string) (*models.Subscription, error) {
	if r.activeErr != nil {
		return nil, r.activeErr
	}
	return r.active, nil
}

func (r *fakeStatusRepo) FindActivePlans() ([]models.Plan, error) {
	return r.plans, nil
}

func TestGetStatus_NoSubscription(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{activeErr: repositories.ErrSubscriptionNotFound}
	svc := NewSubscriptionService(repo)

	resp, err := svc.GetStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, resp.IsPremium)
	assert.Nil(t, resp.Subscription)
}

func TestGetStatus_ActiveSubscriptionIsPremium(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{active: &models.Subscription{
		UserID:    "user-1",
		Status:    models.SubscriptionStatusActive,
		ExpiresAt: time.Now().AddDate(0, 1, 0),
	}}
	svc := NewSubscriptionService(repo)

	resp, err := svc.GetStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, resp.IsPremium)
	require.NotNil(t, resp.Subscription)
}

func TestGetStatus_ExpiryIsEvaluatedAtReadTime(t *testing.T) {
	t.Parallel()

	// The row still says active but its expiry has passed; the sweep just
	// has not caught up yet. Premium must already be gone.
	repo := &fakeStatusRepo{active: &models.Subscription{
		UserID:    "user-1",
		Status:    models.SubscriptionStatusActive,
		ExpiresAt: time.Now().Add(-time.Hour),
	}}
	svc := NewSubscriptionService(repo)

	resp, err := svc.GetStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, resp.IsPremium)
}

func TestGetPlans_EmptyCatalogIsNotNull(t *testing.T) {
	t.Parallel()

	svc := NewSubscriptionService(&fakeStatusRepo{})

	resp, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Plans, "JSON output must be [] rather than null")
	assert.Equal(t, 0, resp.Total)
}
