package db

import (
	"context"
	"errors"
	"strings"

	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterOwner creates a team and its owner in one transaction; a team
// always starts with exactly one owner.
func (r *Repo) RegisterOwner(ctx context.Context, email, passwordHash, name, teamName string) (*models.User, *models.Team, error) {
	email = strings.ToLower(email)

	var existing models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	team := &models.Team{ID: uuid.NewString(), Name: teamName}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         models.RoleOwner,
		PasswordHash: passwordHash,
		TeamID:       team.ID,
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return user, team, nil
}

// AcceptInvite consumes a pending, unexpired invite: the new member is
// created with the invited role and the invite row is deleted.
func (r *Repo) AcceptInvite(ctx context.Context, token, name, passwordHash string) (*models.User, error) {
	var inv models.Invite
	err := r.DB.WithContext(ctx).
		Where("token = ? AND status = ? AND expires_at > ?", token, models.InviteStatusPending, nowFunc()).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteInvalid
	}
	if err != nil {
		return nil, err
	}

	var existing models.User
	err = r.DB.WithContext(ctx).Where("email = ?", inv.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        inv.Email,
		Name:         name,
		Role:         inv.Role,
		PasswordHash: passwordHash,
		TeamID:       inv.TeamID,
	}
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
