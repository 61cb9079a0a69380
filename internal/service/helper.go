package service

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
)

// displayName resolves an author name, falling back to a synthesized
// placeholder when the identity provider has no row for the user. Never
// empty, never an error.
func displayName(name string, userID uuid.UUID) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("User %s", userID)
}

func decodeTags(tags datatypes.JSON) []string {
	if len(tags) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(tags, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}

func toAttachmentResponses(attachments []model.Attachment) []dto.AttachmentResponse {
	out := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, att := range attachments {
		out = append(out, dto.AttachmentResponse{
			ID:       att.ID,
			FileURL:  att.FileURL,
			FileType: att.FileType,
		})
	}
	return out
}
