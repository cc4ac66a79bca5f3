package repo

import (
	"context"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type TemplateStore struct{ db *gorm.DB }

func NewTemplateStore(db *gorm.DB) *TemplateStore { return &TemplateStore{db: db} }

// List returns the site template catalog, optionally by category.
func (s *TemplateStore) List(ctx context.Context, category string) ([]models.SiteTemplate, error) {
	q := s.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var tpls []models.SiteTemplate
	err := q.Order("id asc").Find(&tpls).Error
	return tpls, err
}
