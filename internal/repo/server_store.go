package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type ServerStore struct{ db *gorm.DB }

func NewServerStore(db *gorm.DB) *ServerStore { return &ServerStore{db: db} }

func (s *ServerStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Server, error) {
	var servers []models.Server
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id asc").
		Find(&servers).Error
	return servers, err
}

func (s *ServerStore) GetByID(ctx context.Context, id uint) (*models.Server, error) {
	var srv models.Server
	err := s.db.WithContext(ctx).First(&srv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

func (s *ServerStore) Create(ctx context.Context, srv *models.Server) error {
	if srv.Status == "" {
		srv.Status = models.ServerStatusActive
	}
	if srv.UptimePercentage == 0 {
		srv.UptimePercentage = 99.99
	}
	return s.db.WithContext(ctx).Create(srv).Error
}

func (s *ServerStore) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Server{}).
		Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}

type MetricInput struct {
	CPUUsage    float64
	MemoryUsage float64
	NetworkIn   float64
	NetworkOut  float64
}

// AddMetric appends a metric row and rolls the latest cpu/memory up
// onto the server row in one transaction. Ownership of srv has already
// been established by the caller.
func (s *ServerStore) AddMetric(ctx context.Context, srv *models.Server, in MetricInput) (*models.ServerMetric, error) {
	m := &models.ServerMetric{
		ServerID:    srv.ID,
		CPUUsage:    in.CPUUsage,
		MemoryUsage: in.MemoryUsage,
		NetworkIn:   in.NetworkIn,
		NetworkOut:  in.NetworkOut,
		Timestamp:   time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.Server{}).
			Where("id = ?", srv.ID).
			Updates(map[string]any{
				"cpu_usage":    in.CPUUsage,
				"memory_usage": in.MemoryUsage,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMetrics returns the newest metric rows for a server, most recent
// first.
func (s *ServerStore) ListMetrics(ctx context.Context, serverID uint, limit int) ([]models.ServerMetric, error) {
	if limit <= 0 {
		limit = 100
	}
	var metrics []models.ServerMetric
	err := s.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Order("timestamp desc").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}
