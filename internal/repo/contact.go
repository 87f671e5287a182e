package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/models"
)

// ==========================
// ContactRepo
// ==========================
type ContactRepo struct {
	DB *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{DB: db}
}

func (r *ContactRepo) Create(ctx context.Context, c *models.Contact) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *ContactRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Contact{}).Count(&n).Error
	return n, translate(err)
}
