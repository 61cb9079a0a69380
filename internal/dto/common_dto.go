package dto

// ReactionCount is one entry of a post's reaction summary. Types with zero
// reactions are never emitted.
type ReactionCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type AuthorResponse struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ListQuery carries the raw pagination/sort query values. Values are
// normalized by pkg/pagination, never rejected.
type ListQuery struct {
	Limit  string `form:"limit"`
	Offset string `form:"offset"`
	Sort   string `form:"sort"`
}
