package db

import (
	"context"
	"strings"

	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealFilter struct {
	Search    string
	Stage     string
	CompanyID string
	ContactID string
	OwnerID   string
}

func (r *Repo) dealScope(ctx context.Context, teamID string, f DealFilter) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(&models.Deal{}).Where("team_id = ?", teamID)
	if s := strings.TrimSpace(f.Search); s != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.Stage != "" {
		tx = tx.Where("stage = ?", f.Stage)
	}
	if f.CompanyID != "" {
		tx = tx.Where("company_id = ?", f.CompanyID)
	}
	if f.ContactID != "" {
		tx = tx.Where("contact_id = ?", f.ContactID)
	}
	if f.OwnerID != "" {
		tx = tx.Where("owner_id = ?", f.OwnerID)
	}
	return tx
}

func dealIncludes(tx *gorm.DB, q listquery.Params) *gorm.DB {
	if q.HasInclude("company") {
		tx = tx.Preload("Company")
	}
	if q.HasInclude("contact") {
		tx = tx.Preload("Contact")
	}
	return tx
}

func (r *Repo) ListDeals(ctx context.Context, teamID string, f DealFilter, q listquery.Params) ([]models.Deal, listquery.Pagination, error) {
	tx := r.dealScope(ctx, teamID, f)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, listquery.Pagination{}, err
	}

	if q.Cursor != "" {
		tx = r.seekAfter(ctx, tx, models.DealTable, q.SortColumn, q.Desc, teamID, q.Cursor)
	}

	var rows []models.Deal
	if err := applySort(dealIncludes(tx, q), q.SortColumn, q.Desc).
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

func (r *Repo) GetDeal(ctx context.Context, teamID, id string, q listquery.Params) (*models.Deal, error) {
	var d models.Deal
	tx := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID)
	if err := dealIncludes(tx, q).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) CreateDeal(ctx context.Context, teamID string, d *models.Deal) error {
	d.ID = uuid.NewString()
	d.TeamID = teamID
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *Repo) UpdateDeal(ctx context.Context, teamID, id string, updates map[string]any) (*models.Deal, error) {
	var d models.Deal
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&d).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&d).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &d, nil
}

func (r *Repo) DeleteDeal(ctx context.Context, teamID, id string) error {
	var d models.Deal
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&d).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&d).Error
}

// DealsByStage returns the whole pipeline for Kanban rendering: every
// stage is present as a key even when empty.
func (r *Repo) DealsByStage(ctx context.Context, teamID string) (map[string][]models.Deal, error) {
	var rows []models.Deal
	if err := r.DB.WithContext(ctx).
		Where("team_id = ?", teamID).
		Preload("Company").
		Preload("Contact").
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	pipeline := make(map[string][]models.Deal, len(models.DealStages))
	for _, stage := range models.DealStages {
		pipeline[stage] = []models.Deal{}
	}
	for _, d := range rows {
		pipeline[d.Stage] = append(pipeline[d.Stage], d)
	}
	return pipeline, nil
}
