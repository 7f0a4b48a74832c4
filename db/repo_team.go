package db

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const inviteTTL = 7 * 24 * time.Hour

// TeamError is a lifecycle guard violation with a stable code the route
// layer maps to an HTTP status.
type TeamError struct {
	Code    string
	Message string
}

func (e *TeamError) Error() string { return e.Message }

func teamErr(code, message string) *TeamError { return &TeamError{Code: code, Message: message} }

func (r *Repo) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var t models.Team
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", teamID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) UpdateTeamName(ctx context.Context, teamID, name string) (*models.Team, error) {
	var t models.Team
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", teamID).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&t).Update("name", name).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) ListMembers(ctx context.Context, teamID string) ([]models.User, error) {
	var members []models.User
	err := r.DB.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

// InviteUser runs its guards in order: an email that is already a member
// wins over one that already holds a pending invite.
func (r *Repo) InviteUser(ctx context.Context, teamID, email, role string) (*models.Invite, error) {
	email = strings.ToLower(email)

	var existing models.User
	err := r.DB.WithContext(ctx).Where("email = ? AND team_id = ?", email, teamID).First(&existing).Error
	if err == nil {
		return nil, teamErr("USER_EXISTS", "User is already a member of this team")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var pending models.Invite
	err = r.DB.WithContext(ctx).
		Where("email = ? AND team_id = ? AND status = ?", email, teamID, models.InviteStatusPending).
		First(&pending).Error
	if err == nil {
		return nil, teamErr("INVITE_EXISTS", "An invite has already been sent to this email")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inv := &models.Invite{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		Token:     newInviteToken(),
		Status:    models.InviteStatusPending,
		TeamID:    teamID,
		ExpiresAt: nowFunc().Add(inviteTTL),
	}
	if err := r.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// PendingInvites applies lazy expiry: rows past their expiry stay in
// storage but are filtered at read time.
func (r *Repo) PendingInvites(ctx context.Context, teamID string) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND status = ? AND expires_at > ?", teamID, models.InviteStatusPending, nowFunc()).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *Repo) CancelInvite(ctx context.Context, teamID, inviteID string) error {
	var inv models.Invite
	err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", inviteID, teamID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return teamErr("INVITE_NOT_FOUND", "Invite not found")
	}
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&inv).Error
}

// RemoveMember guard order is pinned: the owner check runs before the
// self check, so removing an owner-self reports CANNOT_REMOVE_OWNER.
// The removed user is returned so callers can revoke their sessions.
func (r *Repo) RemoveMember(ctx context.Context, teamID, userID, requestingUserID string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", userID, teamID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, teamErr("USER_NOT_FOUND", "User not found in team")
	}
	if err != nil {
		return nil, err
	}

	if u.Role == models.RoleOwner {
		return nil, teamErr("CANNOT_REMOVE_OWNER", "Cannot remove the team owner")
	}
	if userID == requestingUserID {
		return nil, teamErr("CANNOT_REMOVE_SELF", "Cannot remove yourself from the team")
	}

	if err := r.DB.WithContext(ctx).Delete(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMemberRole shares RemoveMember's pinned guard ordering.
func (r *Repo) UpdateMemberRole(ctx context.Context, teamID, userID, role, requestingUserID string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", userID, teamID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, teamErr("USER_NOT_FOUND", "User not found in team")
	}
	if err != nil {
		return nil, err
	}

	if u.Role == models.RoleOwner {
		return nil, teamErr("CANNOT_CHANGE_OWNER", "Cannot change the owner role")
	}
	if role == models.RoleOwner {
		return nil, teamErr("CANNOT_ASSIGN_OWNER", "Cannot assign owner role")
	}
	if userID == requestingUserID {
		return nil, teamErr("CANNOT_CHANGE_SELF", "Cannot change your own role")
	}

	if err := r.DB.WithContext(ctx).Model(&u).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// newInviteToken returns 32 random bytes hex encoded; never derived from
// guessable data.
func newInviteToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
