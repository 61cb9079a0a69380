package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*model.Attachment, error)
	// AttachToPost links previously uploaded attachments to a post. Only
	// unlinked attachments owned by the uploading user are updated.
	AttachToPost(ctx context.Context, ids []uint, postID uuid.UUID, userID uuid.UUID) error
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*model.Attachment, error) {
	if len(postIDs) == 0 {
		return []*model.Attachment{}, nil
	}

	var attachments []*model.Attachment
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("id ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *attachmentRepository) AttachToPost(ctx context.Context, ids []uint, postID uuid.UUID, userID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&model.Attachment{}).
		Where("id IN ? AND user_id = ? AND post_id IS NULL", ids, userID).
		Update("post_id", postID).Error
}
