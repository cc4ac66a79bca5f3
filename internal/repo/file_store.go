package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nexus/internal/models"
)

type FileStore struct{ db *gorm.DB }

func NewFileStore(db *gorm.DB) *FileStore { return &FileStore{db: db} }

func (s *FileStore) ListByOwner(ctx context.Context, ownerID uint, folder string) ([]models.CloudFile, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if folder != "" {
		q = q.Where("folder = ?", folder)
	}
	var files []models.CloudFile
	err := q.Order("uploaded_at desc").Find(&files).Error
	return files, err
}

func (s *FileStore) Create(ctx context.Context, f *models.CloudFile) error {
	if f.Folder == "" {
		f.Folder = "Documents"
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(f).Error
}

// TotalSizeMB sums file sizes (MB) for one owner.
func (s *FileStore) TotalSizeMB(ctx context.Context, ownerID uint) (float64, error) {
	var total *float64
	err := s.db.WithContext(ctx).Model(&models.CloudFile{}).
		Where("owner_id = ?", ownerID).
		Select("SUM(file_size)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
