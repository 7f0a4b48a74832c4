package models

import "time"

const ContactTable = "crm_contacts"

type Contact struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string  `gorm:"size:200;not null;index" json:"name"`
	Email     *string `gorm:"size:200" json:"email"`
	Phone     *string `gorm:"size:50" json:"phone"`
	Title     *string `gorm:"size:100" json:"title"`
	CompanyID *string `gorm:"type:uuid;index" json:"companyId"`
	OwnerID   string  `gorm:"type:uuid;index;not null" json:"ownerId"`
	TeamID    string  `gorm:"type:uuid;index;not null" json:"teamId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Contact) TableName() string { return ContactTable }
