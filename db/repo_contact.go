package db

import (
	"context"
	"strings"

	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactFilter struct {
	Search    string
	CompanyID string
	OwnerID   string
}

func (r *Repo) contactScope(ctx context.Context, teamID string, f ContactFilter) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(&models.Contact{}).Where("team_id = ?", teamID)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.CompanyID != "" {
		tx = tx.Where("company_id = ?", f.CompanyID)
	}
	if f.OwnerID != "" {
		tx = tx.Where("owner_id = ?", f.OwnerID)
	}
	return tx
}

func contactIncludes(tx *gorm.DB, q listquery.Params) *gorm.DB {
	if q.HasInclude("company") {
		tx = tx.Preload("Company")
	}
	return tx
}

func (r *Repo) ListContacts(ctx context.Context, teamID string, f ContactFilter, q listquery.Params) ([]models.Contact, listquery.Pagination, error) {
	tx := r.contactScope(ctx, teamID, f)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, listquery.Pagination{}, err
	}

	if q.Cursor != "" {
		tx = r.seekAfter(ctx, tx, models.ContactTable, q.SortColumn, q.Desc, teamID, q.Cursor)
	}

	var rows []models.Contact
	if err := applySort(contactIncludes(tx, q), q.SortColumn, q.Desc).
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

func (r *Repo) GetContact(ctx context.Context, teamID, id string, q listquery.Params) (*models.Contact, error) {
	var c models.Contact
	tx := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID)
	if err := contactIncludes(tx, q).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateContact(ctx context.Context, teamID string, c *models.Contact) error {
	c.ID = uuid.NewString()
	c.TeamID = teamID
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) UpdateContact(ctx context.Context, teamID, id string, updates map[string]any) (*models.Contact, error) {
	var c models.Contact
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&c).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *Repo) DeleteContact(ctx context.Context, teamID, id string) error {
	var c models.Contact
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&c).Error
}
