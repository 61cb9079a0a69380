package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/pkg/apperror"
	"github.com/edulane/discussion/pkg/pagination"
)

type ThreadService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateThreadRequest) (*dto.ThreadResponse, error)
	List(ctx context.Context, filter dto.ThreadFilter) (*dto.ThreadListResponse, error)
	// GetByID returns the thread enriched with its metrics and bumps the view
	// counter as a best-effort side effect: an increment failure is logged
	// and never fails the read.
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ThreadResponse, error)
}

type threadService struct {
	threadRepo      repository.ThreadRepository
	forumRepo       repository.ForumRepository
	postRepo        repository.PostRepository
	attachmentRepo  repository.AttachmentRepository
	redisClient     *redis.Client
	logger          *zap.Logger
	createRateLimit time.Duration
}

func NewThreadService(
	threadRepo repository.ThreadRepository,
	forumRepo repository.ForumRepository,
	postRepo repository.PostRepository,
	attachmentRepo repository.AttachmentRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
	createRateLimit time.Duration,
) ThreadService {
	return &threadService{
		threadRepo:      threadRepo,
		forumRepo:       forumRepo,
		postRepo:        postRepo,
		attachmentRepo:  attachmentRepo,
		redisClient:     redisClient,
		logger:          logger,
		createRateLimit: createRateLimit,
	}
}

func (s *threadService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateThreadRequest) (*dto.ThreadResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_thread", s.createRateLimit)
	if err != nil {
		s.logger.Warn("rate limit check failed, allowing request", zap.Error(err))
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	forumID, err := uuid.Parse(req.ForumID)
	if err != nil {
		return nil, apperror.ErrBadRequest
	}

	if _, err := s.forumRepo.FindByID(ctx, forumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	thread := &model.Thread{
		ForumID: forumID,
		UserID:  userID,
		Title:   req.Title,
		Tags:    encodeTags(req.Tags),
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		s.logger.Error("failed to create thread",
			zap.String("forum_id", forumID.String()), zap.Error(err))
		return nil, err
	}

	// The thread body lives in its opening top-level post.
	opening := &model.Post{
		ThreadID: thread.ID,
		UserID:   userID,
		Body:     req.Body,
	}
	if err := s.postRepo.Create(ctx, opening); err != nil {
		s.logger.Error("failed to create opening post",
			zap.String("thread_id", thread.ID.String()), zap.Error(err))
		return nil, err
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.attachmentRepo.AttachToPost(ctx, req.AttachmentIDs, opening.ID, userID); err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(thread, repository.ThreadMetrics{
		PostCount:  1,
		LastPostAt: &opening.CreatedAt,
	})
	return &resp, nil
}

func (s *threadService) List(ctx context.Context, filter dto.ThreadFilter) (*dto.ThreadListResponse, error) {
	var forumID *uuid.UUID
	if filter.ForumID != "" {
		id, err := uuid.Parse(filter.ForumID)
		if err != nil {
			return nil, apperror.ErrBadRequest
		}
		forumID = &id
	}

	params := pagination.Parse(filter.Limit, filter.Offset, filter.Sort)

	threads, total, err := s.threadRepo.FindPage(ctx, forumID, params)
	if err != nil {
		s.logger.Error("failed to list threads",
			zap.Any("forum_id", forumID), zap.Error(err))
		return nil, err
	}

	ids := lo.Map(threads, func(t *model.Thread, _ int) uuid.UUID { return t.ID })
	metrics, err := s.threadRepo.Metrics(ctx, ids)
	if err != nil {
		s.logger.Error("failed to compute thread metrics",
			zap.Int("threads", len(ids)), zap.Error(err))
		return nil, err
	}

	responses := lo.Map(threads, func(t *model.Thread, _ int) dto.ThreadResponse {
		return s.toResponse(t, metrics[t.ID])
	})

	return &dto.ThreadListResponse{
		Threads: responses,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}, nil
}

func (s *threadService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ThreadResponse, error) {
	thread, err := s.threadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("failed to fetch thread",
			zap.String("thread_id", id.String()), zap.Error(err))
		return nil, err
	}

	metrics, err := s.threadRepo.Metrics(ctx, []uuid.UUID{id})
	if err != nil {
		s.logger.Error("failed to compute thread metrics",
			zap.String("thread_id", id.String()), zap.Error(err))
		return nil, err
	}

	if err := s.threadRepo.IncrementViews(ctx, id); err != nil {
		// Views are a popularity signal, not part of the read's success
		s.logger.Warn("failed to increment thread views",
			zap.String("thread_id", id.String()), zap.Error(err))
	} else {
		thread.Views++
	}

	resp := s.toResponse(thread, metrics[id])
	return &resp, nil
}

func (s *threadService) toResponse(t *model.Thread, m repository.ThreadMetrics) dto.ThreadResponse {
	lastActivity := t.CreatedAt
	if m.LastPostAt != nil && m.LastPostAt.After(lastActivity) {
		lastActivity = *m.LastPostAt
	}

	return dto.ThreadResponse{
		ID:            t.ID,
		ForumID:       t.ForumID,
		Title:         t.Title,
		Tags:          decodeTags(t.Tags),
		AuthorName:    displayName(t.User.DisplayName, t.UserID),
		Views:         t.Views,
		PostCount:     m.PostCount,
		ReactionCount: m.ReactionCount,
		LastActivity:  lastActivity,
		CreatedAt:     t.CreatedAt,
	}
}
