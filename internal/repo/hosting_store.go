package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type HostingStore struct{ db *gorm.DB }

func NewHostingStore(db *gorm.DB) *HostingStore { return &HostingStore{db: db} }

// ListPlans returns the global plan catalog.
func (s *HostingStore) ListPlans(ctx context.Context) ([]models.HostingPlan, error) {
	var plans []models.HostingPlan
	err := s.db.WithContext(ctx).Order("price asc").Find(&plans).Error
	return plans, err
}

func (s *HostingStore) GetPlan(ctx context.Context, id uint) (*models.HostingPlan, error) {
	var plan models.HostingPlan
	err := s.db.WithContext(ctx).First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *HostingStore) CreateOrder(ctx context.Context, o *models.HostingOrder) error {
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentStatusPending
	}
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *HostingStore) ListOrdersByUser(ctx context.Context, userID uint) ([]models.HostingOrder, error) {
	var orders []models.HostingOrder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}
