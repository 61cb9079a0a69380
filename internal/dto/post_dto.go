package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostFilter struct {
	IncludeReplies string `form:"include_replies"`
	Limit          string `form:"limit"`
	Offset         string `form:"offset"`
}

type CreatePostRequest struct {
	Body          string  `json:"body" binding:"required"`
	ParentID      *string `json:"parent_id" binding:"omitempty,uuid"`
	AttachmentIDs []uint  `json:"attachment_ids"`
}

type PostResponse struct {
	ID          uuid.UUID            `json:"id"`
	ThreadID    uuid.UUID            `json:"thread_id"`
	ParentID    *uuid.UUID           `json:"parent_id,omitempty"`
	AuthorName  string               `json:"author_name"`
	Body        string               `json:"body"`
	Attachments []AttachmentResponse `json:"attachments"`
	Reactions   []ReactionCount      `json:"reactions"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PostDetailResponse is the single-post shape: the post itself plus its
// direct replies in creation order.
type PostDetailResponse struct {
	PostResponse
	Replies []PostResponse `json:"replies"`
}

type PostListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
