package db

import (
	"context"
	"fmt"
	"strings"

	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyFilter struct {
	Search   string
	Industry string
}

// companyCounts attaches contact/deal counts to every returned row.
var companyCounts = fmt.Sprintf(
	"%[1]s.*, "+
		"(SELECT COUNT(*) FROM %[2]s WHERE %[2]s.company_id = %[1]s.id) AS contact_count, "+
		"(SELECT COUNT(*) FROM %[3]s WHERE %[3]s.company_id = %[1]s.id) AS deal_count",
	models.CompanyTable, models.ContactTable, models.DealTable,
)

func (r *Repo) companyScope(ctx context.Context, teamID string, f CompanyFilter) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(&models.Company{}).Where("team_id = ?", teamID)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(domain) LIKE ?", like, like)
	}
	if f.Industry != "" {
		tx = tx.Where("industry = ?", f.Industry)
	}
	return tx
}

func (r *Repo) ListCompanies(ctx context.Context, teamID string, f CompanyFilter, q listquery.Params) ([]models.Company, listquery.Pagination, error) {
	tx := r.companyScope(ctx, teamID, f)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, listquery.Pagination{}, err
	}

	if q.Cursor != "" {
		tx = r.seekAfter(ctx, tx, models.CompanyTable, q.SortColumn, q.Desc, teamID, q.Cursor)
	}

	var rows []models.Company
	if err := applySort(tx.Select(companyCounts), q.SortColumn, q.Desc).
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

func (r *Repo) GetCompany(ctx context.Context, teamID, id string) (*models.Company, error) {
	var c models.Company
	if err := r.DB.WithContext(ctx).
		Select(companyCounts).
		Where("id = ? AND team_id = ?", id, teamID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateCompany(ctx context.Context, teamID string, c *models.Company) error {
	c.ID = uuid.NewString()
	c.TeamID = teamID
	return r.DB.WithContext(ctx).Create(c).Error
}

// UpdateCompany re-verifies team ownership with a read before writing;
// a filtered single-statement update would hide the not-found case.
func (r *Repo) UpdateCompany(ctx context.Context, teamID, id string, updates map[string]any) (*models.Company, error) {
	var c models.Company
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&c).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetCompany(ctx, teamID, id)
}

func (r *Repo) DeleteCompany(ctx context.Context, teamID, id string) error {
	var c models.Company
	if err := r.DB.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&c).Error
}
