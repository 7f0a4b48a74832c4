package models

import "time"

const ActivityTable = "crm_activities"

const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityTask    = "task"
)

// Completion is the presence of CompletedAt, not a boolean.
type Activity struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string     `gorm:"size:20;not null;index" json:"type"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"size:2000" json:"description"`
	DueAt       *time.Time `gorm:"index" json:"dueAt"`
	CompletedAt *time.Time `gorm:"index" json:"completedAt"`
	DealID      *string    `gorm:"type:uuid;index" json:"dealId"`
	ContactID   *string    `gorm:"type:uuid;index" json:"contactId"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"userId"`
	TeamID      string     `gorm:"type:uuid;index;not null" json:"teamId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Deal    *Deal    `gorm:"foreignKey:DealID" json:"deal,omitempty"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	User    *UserRef `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Activity) TableName() string { return ActivityTable }

// UserRef is the slim assigned-user shape attached to activities.
// It reads from the users table but never migrates or writes.
type UserRef struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (UserRef) TableName() string { return UserTable }

func ValidActivityType(t string) bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityTask:
		return true
	}
	return false
}
