package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/models"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// Create inserts the post in a single statement; date_posted is assigned by the
// database layer at insert and the post is either fully visible afterwards or
// not at all.
func (r *PostRepo) Create(ctx context.Context, p *models.Post) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

// ListByUser returns all posts owned by userID ordered by post_id.
func (r *PostRepo) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("post_id").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, translate(err)
}
