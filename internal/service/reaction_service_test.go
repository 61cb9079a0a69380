package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/pkg/apperror"
)

func TestReactionService_Summarize_Ordering(t *testing.T) {
	reactionRepo := &mockReactionRepo{
		countByPostFn: func(_ context.Context, _ uuid.UUID) (map[string]int64, error) {
			return map[string]int64{"like": 2, "helpful": 5, "insightful": 2}, nil
		},
	}

	svc := NewReactionService(reactionRepo, &mockPostRepo{}, zap.NewNop())
	counts, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)

	// Highest count first, ties alphabetical by type.
	assert.Equal(t, []dto.ReactionCount{
		{Type: "helpful", Count: 5},
		{Type: "insightful", Count: 2},
		{Type: "like", Count: 2},
	}, counts)
}

func TestReactionService_SummarizeAll_EveryIDPresent(t *testing.T) {
	reacted := uuid.New()
	silent := uuid.New()

	reactionRepo := &mockReactionRepo{
		countByPostsFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]map[string]int64, error) {
			return map[uuid.UUID]map[string]int64{
				reacted: {"like": 1},
			}, nil
		},
	}

	svc := NewReactionService(reactionRepo, &mockPostRepo{}, zap.NewNop())
	summaries, err := svc.SummarizeAll(context.Background(), []uuid.UUID{reacted, silent})
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, []dto.ReactionCount{{Type: "like", Count: 1}}, summaries[reacted])

	got, ok := summaries[silent]
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReactionService_Toggle_PostMissing(t *testing.T) {
	postRepo := &mockPostRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Post, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewReactionService(&mockReactionRepo{}, postRepo, zap.NewNop())
	_, err := svc.Toggle(context.Background(), uuid.New(), dto.ToggleReactionRequest{
		PostID: uuid.New(),
		Type:   "like",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReactionService_Toggle_ReportsActiveType(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	var seen *model.Reaction
	reactionRepo := &mockReactionRepo{
		toggleFn: func(_ context.Context, reaction *model.Reaction) (string, error) {
			seen = reaction
			return "", nil // toggled off
		},
	}

	svc := NewReactionService(reactionRepo, &mockPostRepo{}, zap.NewNop())
	resp, err := svc.Toggle(context.Background(), userID, dto.ToggleReactionRequest{
		PostID: postID,
		Type:   "like",
	})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Active)

	require.NotNil(t, seen)
	assert.Equal(t, postID, seen.PostID)
	assert.Equal(t, userID, seen.UserID)
	assert.Equal(t, "like", seen.Type)
}
