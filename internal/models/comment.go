package models

import "time"

// Comment is append-only: it is never updated after creation.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author,omitempty"`
}
