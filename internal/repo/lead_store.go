package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type LeadStore struct{ db *gorm.DB }

func NewLeadStore(db *gorm.DB) *LeadStore { return &LeadStore{db: db} }

func (s *LeadStore) ListByOwner(ctx context.Context, ownerID uint, status string) ([]models.CRMLead, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leads []models.CRMLead
	err := q.Order("id asc").Find(&leads).Error
	return leads, err
}

func (s *LeadStore) GetByID(ctx context.Context, id uint) (*models.CRMLead, error) {
	var lead models.CRMLead
	err := s.db.WithContext(ctx).First(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *LeadStore) Create(ctx context.Context, lead *models.CRMLead) error {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.Temperature == "" {
		lead.Temperature = "cold"
	}
	return s.db.WithContext(ctx).Create(lead).Error
}

// LeadPatch applies only the fields that are present. Merge rule: a
// non-nil pointer overwrites, nil leaves the stored value untouched.
type LeadPatch struct {
	Status    *string `json:"status"`
	LeadScore *int    `json:"lead_score"`
}

func (s *LeadStore) Patch(ctx context.Context, lead *models.CRMLead, patch LeadPatch) error {
	updates := map[string]any{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.LeadScore != nil {
		updates["lead_score"] = *patch.LeadScore
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(lead).Updates(updates).Error
}
