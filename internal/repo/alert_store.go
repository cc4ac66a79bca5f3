package repo

import (
	"context"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type AlertStore struct{ db *gorm.DB }

func NewAlertStore(db *gorm.DB) *AlertStore { return &AlertStore{db: db} }

// List returns the newest alerts, optionally filtered by status.
func (s *AlertStore) List(ctx context.Context, status string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 10
	}
	q := s.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var alerts []models.Alert
	err := q.Order("created_at desc").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (s *AlertStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Alert{}).
		Where("status = ?", models.AlertStatusActive).Count(&n).Error
	return n, err
}
