package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
)

type ForumRepository interface {
	Create(ctx context.Context, forum *model.Forum) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Forum, error)
	FindBySlug(ctx context.Context, slug string) (*model.Forum, error)
	FindAll(ctx context.Context) ([]*model.Forum, error)
}

type forumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) Create(ctx context.Context, forum *model.Forum) error {
	return r.db.WithContext(ctx).Create(forum).Error
}

func (r *forumRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Forum, error) {
	var forum model.Forum
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&forum).Error; err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) FindBySlug(ctx context.Context, slug string) (*model.Forum, error) {
	var forum model.Forum
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&forum).Error; err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) FindAll(ctx context.Context) ([]*model.Forum, error) {
	var forums []*model.Forum
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&forums).Error
	return forums, err
}
