package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Thread struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ForumID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"forum_id"`
	Forum     Forum          `gorm:"constraint:OnDelete:CASCADE" json:"forum,omitempty"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	User      User           `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Tags      datatypes.JSON `gorm:"type:jsonb" json:"tags"` // ordered list of strings
	Views     int            `gorm:"default:0" json:"views"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}
