package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the user table owned by the external identity provider. The
// discussion service only reads display names from it; rows may be missing
// for valid user ids, in which case callers synthesize a placeholder name.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
