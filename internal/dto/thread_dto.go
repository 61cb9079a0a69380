package dto

import (
	"time"

	"github.com/google/uuid"
)

type ThreadFilter struct {
	ForumID string `form:"forum_id"`
	ListQuery
}

type CreateThreadRequest struct {
	ForumID       string   `json:"forum_id" binding:"required,uuid"`
	Title         string   `json:"title" binding:"required,min=3,max=255"`
	Body          string   `json:"body" binding:"required"`
	Tags          []string `json:"tags" binding:"max=10,dive,min=1,max=50"`
	AttachmentIDs []uint   `json:"attachment_ids"`
}

type ThreadResponse struct {
	ID            uuid.UUID `json:"id"`
	ForumID       uuid.UUID `json:"forum_id"`
	Title         string    `json:"title"`
	Tags          []string  `json:"tags"`
	AuthorName    string    `json:"author_name"`
	Views         int       `json:"views"`
	PostCount     int64     `json:"post_count"`
	ReactionCount int64     `json:"reaction_count"`
	LastActivity  time.Time `json:"last_activity"`
	CreatedAt     time.Time `json:"created_at"`
}

type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
