package models

import "time"

const DealTable = "crm_deals"

// Pipeline stages, in Kanban order.
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

var DealStages = []string{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

type Deal struct {
	ID          string   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string   `gorm:"size:200;not null;index" json:"title"`
	Value       *float64 `json:"value"`
	Stage       string   `gorm:"size:20;not null;default:'lead';index" json:"stage"`
	Probability *float64 `json:"probability"`
	CompanyID   *string  `gorm:"type:uuid;index" json:"companyId"`
	ContactID   *string  `gorm:"type:uuid;index" json:"contactId"`
	OwnerID     string   `gorm:"type:uuid;index;not null" json:"ownerId"`
	TeamID      string   `gorm:"type:uuid;index;not null" json:"teamId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

func (Deal) TableName() string { return DealTable }

func ValidDealStage(stage string) bool {
	for _, s := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}
