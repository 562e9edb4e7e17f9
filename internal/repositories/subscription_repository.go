package repositories

import (
	"errors"
	"time"

	"gymgrub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("plan not found")
)

type SubscriptionRepository interface {
	// Plan catalog operations
	CreatePlan(plan *models.Plan) error
	FindPlanByID(id string) (*models.Plan, error)
	FindActivePlans() ([]models.Plan, error)

	// Subscription operations
	Create(subscription *models.Subscription) error
	FindByPaymentID(paymentID string) (*models.Subscription, error)
	FindActiveByUser(userID string) (*models.Subscription, error)

	// Activate flips a pending subscription to active, matched by payment_id.
	// Idempotent at the caller level: re-activating an active row rewrites
	// the same status.
	Activate(paymentID string, startedAt time.Time) error

	// MarkExpired flags active rows whose expires_at has passed. Reporting
	// only; premium gating always compares expires_at against now at read
	// time.
	MarkExpired(now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

// Plan catalog operations

func (r *SubscriptionRepositoryImpl) CreatePlan(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(id string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) FindActivePlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).Order("price_usd ASC").Find(&plans).Error
	return plans, err
}

// Subscription operations

func (r *SubscriptionRepositoryImpl) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *SubscriptionRepositoryImpl) FindByPaymentID(paymentID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.Where("payment_id = ?", paymentID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(userID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.
		Where("user_id = ? AND status = ? AND expires_at > ?",
			userID, models.SubscriptionStatusActive, time.Now()).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) Activate(paymentID string, startedAt time.Time) error {
	result := r.db.Model(&models.Subscription{}).
		Where("payment_id = ?", paymentID).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusActive,
			"started_at": startedAt,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at < ?", models.SubscriptionStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
