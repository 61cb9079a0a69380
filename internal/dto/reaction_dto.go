package dto

import "github.com/google/uuid"

type ToggleReactionRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
	Type   string    `json:"type" binding:"required,min=1,max=30"`
}

// ToggleReactionResponse reports the state after a toggle: Active is the
// reaction type the user now holds on the post, empty when the toggle
// removed it.
type ToggleReactionResponse struct {
	Active string `json:"active"`
}
