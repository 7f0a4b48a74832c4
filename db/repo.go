package db

import (
	"context"
	"errors"

	"go_crm_backend/models"

	"gorm.io/gorm"
)

// Sentinel errors the auth flows translate at the route boundary.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrInviteInvalid = errors.New("invite is invalid or expired")
)

type Repo struct{ DB *gorm.DB }

func NewRepo(conn *gorm.DB) *Repo { return &Repo{DB: conn} }

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", nowFunc()).Error
}

func (r *Repo) UpdateProfile(ctx context.Context, userID string, updates map[string]any) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &u, nil
}
