package models

import "time"

const InviteTable = "crm_invites"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusExpired  = "expired"
)

// Invite expiry is lazy: ExpiresAt is compared to now at read time, the
// stored status is not flipped by a background job.
type Invite struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"index;size:200;not null" json:"email"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	TeamID    string    `gorm:"type:uuid;index;not null" json:"teamId"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Invite) TableName() string { return InviteTable }
