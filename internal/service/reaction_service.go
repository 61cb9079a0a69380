package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/pkg/apperror"
)

// ReactionService aggregates reaction counts for posts and applies reaction
// toggles. Counts are always recomputed from the reaction rows visible at
// query time; there is no cache to drift from the store.
type ReactionService interface {
	Summarize(ctx context.Context, postID uuid.UUID) ([]dto.ReactionCount, error)
	// SummarizeAll aggregates one page of post ids in a single query. Every
	// requested id is present in the result; posts without reactions map to an
	// empty list.
	SummarizeAll(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]dto.ReactionCount, error)
	Toggle(ctx context.Context, userID uuid.UUID, req dto.ToggleReactionRequest) (*dto.ToggleReactionResponse, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	logger       *zap.Logger
}

func NewReactionService(reactionRepo repository.ReactionRepository, postRepo repository.PostRepository, logger *zap.Logger) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		logger:       logger,
	}
}

func (s *reactionService) Summarize(ctx context.Context, postID uuid.UUID) ([]dto.ReactionCount, error) {
	counts, err := s.reactionRepo.CountByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to count reactions",
			zap.String("post_id", postID.String()), zap.Error(err))
		return nil, err
	}
	return sortedCounts(counts), nil
}

func (s *reactionService) SummarizeAll(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]dto.ReactionCount, error) {
	counts, err := s.reactionRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		s.logger.Error("failed to count reactions for page",
			zap.Int("posts", len(postIDs)), zap.Error(err))
		return nil, err
	}

	summaries := make(map[uuid.UUID][]dto.ReactionCount, len(postIDs))
	for _, id := range postIDs {
		summaries[id] = sortedCounts(counts[id])
	}
	return summaries, nil
}

func (s *reactionService) Toggle(ctx context.Context, userID uuid.UUID, req dto.ToggleReactionRequest) (*dto.ToggleReactionResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	active, err := s.reactionRepo.Toggle(ctx, &model.Reaction{
		PostID: req.PostID,
		UserID: userID,
		Type:   req.Type,
	})
	if err != nil {
		s.logger.Error("failed to toggle reaction",
			zap.String("post_id", req.PostID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	return &dto.ToggleReactionResponse{Active: active}, nil
}

// sortedCounts converts a type->count map into the response list. Highest
// count first, ties broken by type name so repeated reads render identically.
func sortedCounts(counts map[string]int64) []dto.ReactionCount {
	out := make([]dto.ReactionCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, dto.ReactionCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
