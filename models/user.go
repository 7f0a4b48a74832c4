package models

import "time"

const UserTable = "crm_users"

// Roles a team member can hold. Exactly one owner exists per team; the
// owner role is never assignable through the role-update path.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:200;not null" json:"email"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Role         string `gorm:"size:20;not null;default:'member'" json:"role"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	TeamID       string `gorm:"type:uuid;index;not null" json:"teamId"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

// ValidMemberRole reports whether role can be granted to a member.
// Owner is excluded on purpose.
func ValidMemberRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}
