package db

import (
	"context"
	"time"

	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityFilter struct {
	Type      string
	DealID    string
	ContactID string
	UserID    string
	Completed string // "", "true" or "false"
	DueBefore *time.Time
	DueAfter  *time.Time
}

func (r *Repo) activityScope(ctx context.Context, teamID string, f ActivityFilter) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(&models.Activity{}).Where("team_id = ?", teamID)
	if f.Type != "" {
		tx = tx.Where("type = ?", f.Type)
	}
	if f.DealID != "" {
		tx = tx.Where("deal_id = ?", f.DealID)
	}
	if f.ContactID != "" {
		tx = tx.Where("contact_id = ?", f.ContactID)
	}
	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	switch f.Completed {
	case "true":
		tx = tx.Where("completed_at IS NOT NULL")
	case "false":
		tx = tx.Where("completed_at IS NULL")
	}
	if f.DueBefore != nil {
		tx = tx.Where("due_at <= ?", *f.DueBefore)
	}
	if f.DueAfter != nil {
		tx = tx.Where("due_at >= ?", *f.DueAfter)
	}
	return tx
}

// activityIncludes resolves the include whitelist; the assigned user is
// always attached regardless of what was requested.
func activityIncludes(tx *gorm.DB, q listquery.Params) *gorm.DB {
	if q.HasInclude("deal") {
		tx = tx.Preload("Deal")
	}
	if q.HasInclude("contact") {
		tx = tx.Preload("Contact")
	}
	return tx.Preload("User")
}

func (r *Repo) ListActivities(ctx context.Context, teamID string, f ActivityFilter, q listquery.Params) ([]models.Activity, listquery.Pagination, error) {
	tx := r.activityScope(ctx, teamID, f)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, listquery.Pagination{}, err
	}

	if q.Cursor != "" {
		tx = r.seekAfter(ctx, tx, models.ActivityTable, q.SortColumn, q.Desc, teamID, q.Cursor)
	}

	var rows []models.Activity
	if err := applySort(activityIncludes(tx, q), q.SortColumn, q.Desc).
		Limit(q.Limit + 1).
		Find(&rows).Error; err != nil {
		return nil, listquery.Pagination{}, err
	}

	hasMore := len(rows) > q.Limit
	if hasMore {
		rows = rows[:q.Limit]
	}
	page := listquery.Pagination{Total: total, Limit: q.Limit, HasMore: hasMore}
	if hasMore {
		id := rows[len(rows)-1].ID
		page.Cursor = &id
	}
	return rows, page, nil
}

func (r *Repo) GetActivity(ctx context.Context, teamID, id string, q listquery.Params) (*models.Activity, error) {
	var a models.Activity
	tx := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID)
	if err := activityIncludes(tx, q).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) CreateActivity(ctx context.Context, teamID, userID string, a *models.Activity) error {
	a.ID = uuid.NewString()
	a.TeamID = teamID
	a.UserID = userID
	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Preload("User").First(a, "id = ?", a.ID).Error
}

func (r *Repo) UpdateActivity(ctx context.Context, teamID, id string, updates map[string]any) (*models.Activity, error) {
	var a models.Activity
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&a).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&a).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetActivity(ctx, teamID, id, listquery.Params{})
}

func (r *Repo) DeleteActivity(ctx context.Context, teamID, id string) error {
	var a models.Activity
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&a).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&a).Error
}

// ToggleActivity flips completion both ways: done activities reopen.
func (r *Repo) ToggleActivity(ctx context.Context, teamID, id string) (*models.Activity, error) {
	var a models.Activity
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&a).Error; err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if a.CompletedAt == nil {
		now := nowFunc()
		completedAt = &now
	}
	if err := r.DB.WithContext(ctx).Model(&a).Update("completed_at", completedAt).Error; err != nil {
		return nil, err
	}
	return r.GetActivity(ctx, teamID, id, listquery.Params{})
}

// UpcomingActivities lists the user's incomplete activities due within
// [now, now+days], soonest first, capped at 20.
func (r *Repo) UpcomingActivities(ctx context.Context, teamID, userID string, days int) ([]models.Activity, error) {
	now := nowFunc()
	future := now.Add(time.Duration(days) * 24 * time.Hour)

	var rows []models.Activity
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND completed_at IS NULL", teamID, userID).
		Where("due_at >= ? AND due_at <= ?", now, future).
		Preload("Deal").
		Preload("Contact").
		Preload("User").
		Order("due_at ASC, id ASC").
		Limit(20).
		Find(&rows).Error
	return rows, err
}

func (r *Repo) OverdueActivities(ctx context.Context, teamID, userID string) ([]models.Activity, error) {
	var rows []models.Activity
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND completed_at IS NULL AND due_at < ?", teamID, userID, nowFunc()).
		Preload("Deal").
		Preload("Contact").
		Preload("User").
		Order("due_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
