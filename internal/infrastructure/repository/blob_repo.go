package repository

import (
	"context"
	"errors"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileBlob - одна строка key/value. Содержимое профиля для базы непрозрачно.
type ProfileBlob struct {
	Key       string `gorm:"column:profile_key;primaryKey;size:191"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (ProfileBlob) TableName() string {
	return "profile_blobs"
}

type BlobRepository struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Migrate создаёт таблицу, если её ещё нет.
func (r *BlobRepository) Migrate() error {
	return r.db.AutoMigrate(&ProfileBlob{})
}

func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var blob ProfileBlob
	err := r.db.WithContext(ctx).Where("profile_key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return blob.Data, nil
}

// Put перезаписывает значение целиком (upsert по ключу).
func (r *BlobRepository) Put(ctx context.Context, key string, data []byte) error {
	blob := ProfileBlob{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&blob).Error
}

func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("profile_key = ?", key).Delete(&ProfileBlob{}).Error
}

func (r *BlobRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
