package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/pkg/apperror"
	"github.com/edulane/discussion/pkg/pagination"
)

func newThreadService(threadRepo *mockThreadRepo, forumRepo *mockForumRepo, postRepo *mockPostRepo, attachmentRepo *mockAttachmentRepo) ThreadService {
	return NewThreadService(threadRepo, forumRepo, postRepo, attachmentRepo, nil, zap.NewNop(), time.Minute)
}

func TestThreadService_List_ZeroPostThread(t *testing.T) {
	createdAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	thread := &model.Thread{
		ID:        uuid.New(),
		ForumID:   uuid.New(),
		UserID:    uuid.New(),
		Title:     "quiet",
		CreatedAt: createdAt,
	}

	threadRepo := &mockThreadRepo{
		findPageFn: func(_ context.Context, _ *uuid.UUID, _ pagination.Params) ([]*model.Thread, int64, error) {
			return []*model.Thread{thread}, 1, nil
		},
		metricsFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]repository.ThreadMetrics, error) {
			// Threads without posts have no metric rows at all.
			return map[uuid.UUID]repository.ThreadMetrics{}, nil
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	resp, err := svc.List(context.Background(), dto.ThreadFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Threads, 1)

	got := resp.Threads[0]
	assert.Equal(t, int64(0), got.PostCount)
	assert.Equal(t, int64(0), got.ReactionCount)
	assert.Equal(t, createdAt, got.LastActivity)
	assert.Equal(t, []string{}, got.Tags)
}

func TestThreadService_List_LastActivityFromLatestPost(t *testing.T) {
	createdAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	lastPost := createdAt.Add(3 * time.Hour)
	thread := &model.Thread{ID: uuid.New(), UserID: uuid.New(), CreatedAt: createdAt}

	threadRepo := &mockThreadRepo{
		findPageFn: func(_ context.Context, _ *uuid.UUID, _ pagination.Params) ([]*model.Thread, int64, error) {
			return []*model.Thread{thread}, 1, nil
		},
		metricsFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]repository.ThreadMetrics, error) {
			return map[uuid.UUID]repository.ThreadMetrics{
				thread.ID: {PostCount: 4, ReactionCount: 7, LastPostAt: &lastPost},
			}, nil
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	resp, err := svc.List(context.Background(), dto.ThreadFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Threads, 1)

	got := resp.Threads[0]
	assert.Equal(t, int64(4), got.PostCount)
	assert.Equal(t, int64(7), got.ReactionCount)
	assert.Equal(t, lastPost, got.LastActivity)
}

func TestThreadService_List_AuthorNameFallback(t *testing.T) {
	userID := uuid.New()
	thread := &model.Thread{ID: uuid.New(), UserID: userID}

	threadRepo := &mockThreadRepo{
		findPageFn: func(_ context.Context, _ *uuid.UUID, _ pagination.Params) ([]*model.Thread, int64, error) {
			return []*model.Thread{thread}, 1, nil
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	resp, err := svc.List(context.Background(), dto.ThreadFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Threads, 1)
	assert.Equal(t, fmt.Sprintf("User %s", userID), resp.Threads[0].AuthorName)
}

func TestThreadService_List_InvalidForumID(t *testing.T) {
	svc := newThreadService(&mockThreadRepo{}, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	_, err := svc.List(context.Background(), dto.ThreadFilter{ForumID: "not-a-uuid"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestThreadService_GetByID_NotFound(t *testing.T) {
	threadRepo := &mockThreadRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Thread, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestThreadService_GetByID_ViewIncrementReflected(t *testing.T) {
	thread := &model.Thread{ID: uuid.New(), UserID: uuid.New(), Views: 10}

	var incremented int
	threadRepo := &mockThreadRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Thread, error) {
			copied := *thread
			return &copied, nil
		},
		incrementViewsFn: func(_ context.Context, _ uuid.UUID) error {
			incremented++
			return nil
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	resp, err := svc.GetByID(context.Background(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, incremented)
	assert.Equal(t, 11, resp.Views)
}

func TestThreadService_GetByID_ViewIncrementFailureDoesNotFailRead(t *testing.T) {
	thread := &model.Thread{ID: uuid.New(), UserID: uuid.New(), Views: 10}

	threadRepo := &mockThreadRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Thread, error) {
			copied := *thread
			return &copied, nil
		},
		incrementViewsFn: func(_ context.Context, _ uuid.UUID) error {
			return errors.New("connection reset")
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, &mockPostRepo{}, &mockAttachmentRepo{})
	resp, err := svc.GetByID(context.Background(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Views)
}

func TestThreadService_Create_BodyBecomesOpeningPost(t *testing.T) {
	forumID := uuid.New()
	userID := uuid.New()

	var created *model.Post
	postRepo := &mockPostRepo{
		createFn: func(_ context.Context, post *model.Post) error {
			post.ID = uuid.New()
			created = post
			return nil
		},
	}
	threadRepo := &mockThreadRepo{
		createFn: func(_ context.Context, thread *model.Thread) error {
			thread.ID = uuid.New()
			return nil
		},
	}

	svc := newThreadService(threadRepo, &mockForumRepo{}, postRepo, &mockAttachmentRepo{})
	resp, err := svc.Create(context.Background(), userID, dto.CreateThreadRequest{
		ForumID: forumID.String(),
		Title:   "introductions",
		Body:    "hello everyone",
		Tags:    []string{"meta"},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "hello everyone", created.Body)
	assert.Nil(t, created.ParentID)
	assert.Equal(t, userID, created.UserID)

	assert.Equal(t, "introductions", resp.Title)
	assert.Equal(t, []string{"meta"}, resp.Tags)
	assert.Equal(t, int64(1), resp.PostCount)
}

func TestThreadService_Create_ForumMissing(t *testing.T) {
	forumRepo := &mockForumRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Forum, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newThreadService(&mockThreadRepo{}, forumRepo, &mockPostRepo{}, &mockAttachmentRepo{})
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateThreadRequest{
		ForumID: uuid.NewString(),
		Title:   "lost",
		Body:    "body",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
