package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
)

type ReactionRepository interface {
	// Toggle applies the single-reaction-per-(post,user) rule: a repeated type
	// removes the row, a different type replaces it, no row creates one. The
	// returned string is the type now active, empty after a removal.
	Toggle(ctx context.Context, reaction *model.Reaction) (string, error)
	// CountByPost returns the type->count map for one post. Types without
	// reactions never appear.
	CountByPost(ctx context.Context, postID uuid.UUID) (map[string]int64, error)
	// CountByPosts aggregates reaction counts for a whole page of post ids in
	// a single grouped query. Posts without reactions are absent from the map.
	CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]map[string]int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, reaction *model.Reaction) (string, error) {
	// Find with a slice avoids gorm's "record not found" log noise from First
	var existing []model.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", reaction.PostID, reaction.UserID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return "", err
	}

	if len(existing) == 0 {
		if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
			return "", err
		}
		return reaction.Type, nil
	}

	record := existing[0]
	if record.Type == reaction.Type {
		// Same type again -> toggle off
		if err := r.db.WithContext(ctx).Delete(&record).Error; err != nil {
			return "", err
		}
		return "", nil
	}

	record.Type = reaction.Type
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return "", err
	}
	return record.Type, nil
}

func (r *reactionRepository) CountByPost(ctx context.Context, postID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Type  string
		Count int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, res := range results {
		counts[res.Type] = res.Count
	}
	return counts, nil
}

func (r *reactionRepository) CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]map[string]int64, error) {
	counts := make(map[uuid.UUID]map[string]int64)
	if len(postIDs) == 0 {
		return counts, nil
	}

	type result struct {
		PostID uuid.UUID
		Type   string
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("post_id, type, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id, type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		if counts[res.PostID] == nil {
			counts[res.PostID] = make(map[string]int64)
		}
		counts[res.PostID][res.Type] = res.Count
	}
	return counts, nil
}
