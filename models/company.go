package models

import "time"

const CompanyTable = "crm_companies"

type Company struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string  `gorm:"size:200;not null;index" json:"name"`
	Domain   *string `gorm:"size:200" json:"domain"`
	Industry *string `gorm:"size:100" json:"industry"`
	TeamID   string  `gorm:"type:uuid;index;not null" json:"teamId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated by subselects on reads, not stored.
	ContactCount int64 `gorm:"->;-:migration" json:"contactCount"`
	DealCount    int64 `gorm:"->;-:migration" json:"dealCount"`
}

func (Company) TableName() string { return CompanyTable }
