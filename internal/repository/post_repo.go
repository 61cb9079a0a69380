package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// FindThreadPage returns one page of a thread's posts in reading order:
	// primary key is the creation time of each row's top-level ancestor (a
	// reply sorts next to its parent, not at its own timestamp), then
	// top-level rows before replies, then each row's own creation time.
	// includeReplies=false restricts the listing to top-level posts.
	FindThreadPage(ctx context.Context, threadID uuid.UUID, includeReplies bool, limit, offset int) ([]*model.Post, error)
	// CountForThread counts all rows in scope of the same filter, independent
	// of any page slice.
	CountForThread(ctx context.Context, threadID uuid.UUID, includeReplies bool) (int64, error)
	FindReplies(ctx context.Context, parentID uuid.UUID) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Attachments").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindThreadPage(ctx context.Context, threadID uuid.UUID, includeReplies bool, limit, offset int) ([]*model.Post, error) {
	replyFilter := ""
	if !includeReplies {
		replyFilter = "AND p.parent_id IS NULL"
	}

	// The ordering timestamp is the parent's creation time for replies and the
	// row's own for top-level posts, so the flat list interleaves each reply
	// right after its parent. Because limit/offset slice this flat list, a
	// page boundary can split a parent from its replies.
	query := fmt.Sprintf(`
		SELECT p.id, p.thread_id, p.parent_id, p.user_id, p.body, p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN posts parent ON parent.id = p.parent_id
		WHERE p.thread_id = ? %s
		ORDER BY
			COALESCE(parent.created_at, p.created_at) ASC,
			CASE WHEN p.parent_id IS NULL THEN 0 ELSE 1 END ASC,
			p.created_at ASC
		LIMIT ? OFFSET ?`, replyFilter)

	var posts []*model.Post
	if err := r.db.WithContext(ctx).
		Raw(query, threadID, limit, offset).
		Scan(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) CountForThread(ctx context.Context, threadID uuid.UUID, includeReplies bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("thread_id = ?", threadID)

	if !includeReplies {
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *postRepository) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Attachments").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}
