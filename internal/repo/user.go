package repo

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create hashes the plaintext password and inserts the user. The raw password
// is never stored. Duplicate username or email returns ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)

	return translate(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user := &models.User{}
	err := r.DB.WithContext(ctx).First(user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(user).Error
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (r *UserRepo) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, translate(err)
}
