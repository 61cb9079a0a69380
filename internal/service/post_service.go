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

type PostService interface {
	Create(ctx context.Context, userID, threadID uuid.UUID, req dto.CreatePostRequest) (*dto.PostResponse, error)
	// ListByThread returns one page of a thread's posts in reading order, each
	// carrying its reaction summary and attachments. includeReplies=false
	// restricts the page and the total to top-level posts.
	ListByThread(ctx context.Context, threadID uuid.UUID, includeReplies bool, params pagination.Params) (*dto.PostListResponse, error)
	// GetByID returns one post with its direct replies, attachments and
	// reaction summary. No view counter is touched.
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PostDetailResponse, error)
}

type postService struct {
	postRepo        repository.PostRepository
	threadRepo      repository.ThreadRepository
	userRepo        repository.UserRepository
	attachmentRepo  repository.AttachmentRepository
	reactions       ReactionService
	redisClient     *redis.Client
	logger          *zap.Logger
	createRateLimit time.Duration
}

func NewPostService(
	postRepo repository.PostRepository,
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	attachmentRepo repository.AttachmentRepository,
	reactions ReactionService,
	redisClient *redis.Client,
	logger *zap.Logger,
	createRateLimit time.Duration,
) PostService {
	return &postService{
		postRepo:        postRepo,
		threadRepo:      threadRepo,
		userRepo:        userRepo,
		attachmentRepo:  attachmentRepo,
		reactions:       reactions,
		redisClient:     redisClient,
		logger:          logger,
		createRateLimit: createRateLimit,
	}
}

func (s *postService) Create(ctx context.Context, userID, threadID uuid.UUID, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_post", s.createRateLimit)
	if err != nil {
		s.logger.Warn("rate limit check failed, allowing request", zap.Error(err))
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, apperror.ErrBadRequest
		}

		parent, err := s.postRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		if parent.ThreadID != threadID {
			return nil, apperror.ErrBadRequest
		}

		// Reply depth is one level: replying to a reply attaches the new post
		// to the top-level ancestor instead.
		if parent.ParentID != nil {
			parentID = parent.ParentID
		} else {
			parentID = &parent.ID
		}
	}

	post := &model.Post{
		ThreadID: threadID,
		ParentID: parentID,
		UserID:   userID,
		Body:     req.Body,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			zap.String("thread_id", threadID.String()), zap.Error(err))
		return nil, err
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.attachmentRepo.AttachToPost(ctx, req.AttachmentIDs, post.ID, userID); err != nil {
			return nil, err
		}
	}

	names, err := s.authorNames(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}

	resp := toPostResponse(post, names, []dto.AttachmentResponse{}, []dto.ReactionCount{})
	return &resp, nil
}

func (s *postService) ListByThread(ctx context.Context, threadID uuid.UUID, includeReplies bool, params pagination.Params) (*dto.PostListResponse, error) {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	total, err := s.postRepo.CountForThread(ctx, threadID, includeReplies)
	if err != nil {
		s.logger.Error("failed to count thread posts",
			zap.String("thread_id", threadID.String()), zap.Error(err))
		return nil, err
	}

	posts, err := s.postRepo.FindThreadPage(ctx, threadID, includeReplies, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error("failed to fetch thread posts",
			zap.String("thread_id", threadID.String()), zap.Error(err))
		return nil, err
	}

	postIDs := lo.Map(posts, func(p *model.Post, _ int) uuid.UUID { return p.ID })

	summaries, err := s.reactions.SummarizeAll(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error("failed to fetch post attachments",
			zap.String("thread_id", threadID.String()), zap.Error(err))
		return nil, err
	}
	attachmentsByPost := make(map[uuid.UUID][]dto.AttachmentResponse, len(posts))
	for _, att := range attachments {
		if att.PostID == nil {
			continue
		}
		attachmentsByPost[*att.PostID] = append(attachmentsByPost[*att.PostID], dto.AttachmentResponse{
			ID:       att.ID,
			FileURL:  att.FileURL,
			FileType: att.FileType,
		})
	}

	userIDs := lo.Uniq(lo.Map(posts, func(p *model.Post, _ int) uuid.UUID { return p.UserID }))
	names, err := s.authorNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		atts := attachmentsByPost[p.ID]
		if atts == nil {
			atts = []dto.AttachmentResponse{}
		}
		responses = append(responses, toPostResponse(p, names, atts, summaries[p.ID]))
	}

	return &dto.PostListResponse{
		Posts:  responses,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("failed to fetch post",
			zap.String("post_id", id.String()), zap.Error(err))
		return nil, err
	}

	replies, err := s.postRepo.FindReplies(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch replies",
			zap.String("post_id", id.String()), zap.Error(err))
		return nil, err
	}

	ids := append([]uuid.UUID{post.ID}, lo.Map(replies, func(p *model.Post, _ int) uuid.UUID { return p.ID })...)
	summaries, err := s.reactions.SummarizeAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	replyResponses := make([]dto.PostResponse, 0, len(replies))
	for _, reply := range replies {
		replyResponses = append(replyResponses, toLoadedPostResponse(reply, summaries[reply.ID]))
	}

	return &dto.PostDetailResponse{
		PostResponse: toLoadedPostResponse(post, summaries[post.ID]),
		Replies:      replyResponses,
	}, nil
}

func (s *postService) authorNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("failed to resolve author names",
			zap.Int("users", len(userIDs)), zap.Error(err))
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}

func toPostResponse(p *model.Post, names map[uuid.UUID]string, attachments []dto.AttachmentResponse, reactions []dto.ReactionCount) dto.PostResponse {
	if reactions == nil {
		reactions = []dto.ReactionCount{}
	}
	return dto.PostResponse{
		ID:          p.ID,
		ThreadID:    p.ThreadID,
		ParentID:    p.ParentID,
		AuthorName:  displayName(names[p.UserID], p.UserID),
		Body:        p.Body,
		Attachments: attachments,
		Reactions:   reactions,
		CreatedAt:   p.CreatedAt,
	}
}

// toLoadedPostResponse builds a response from a post fetched with its User
// and Attachments associations preloaded.
func toLoadedPostResponse(p *model.Post, reactions []dto.ReactionCount) dto.PostResponse {
	if reactions == nil {
		reactions = []dto.ReactionCount{}
	}

	return dto.PostResponse{
		ID:          p.ID,
		ThreadID:    p.ThreadID,
		ParentID:    p.ParentID,
		AuthorName:  displayName(p.User.DisplayName, p.UserID),
		Body:        p.Body,
		Attachments: toAttachmentResponses(p.Attachments),
		Reactions:   reactions,
		CreatedAt:   p.CreatedAt,
	}
}
