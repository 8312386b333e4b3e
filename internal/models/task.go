package models

import (
	"time"
)

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	AssigneeID  *uint64   `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator  User      `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"creator,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"comments,omitempty"`
}

// IsAssignedTo reports whether userID is the current assignee.
func (t *Task) IsAssignedTo(userID uint64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
