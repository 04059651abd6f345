package postgres

import (
	"context"
	"errors"
	"fmt"

	"adventura/business/user"
	"adventura/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	var u domain.User
	err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, errors.New("user not found")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	var u domain.User
	err := r.DB.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, errors.New("user not found")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return u, nil
}
