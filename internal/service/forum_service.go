package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
)

type ForumService interface {
	Create(ctx context.Context, req dto.CreateForumRequest) (*dto.ForumResponse, error)
	List(ctx context.Context) ([]dto.ForumResponse, error)
}

type forumService struct {
	forumRepo repository.ForumRepository
	logger    *zap.Logger
}

func NewForumService(forumRepo repository.ForumRepository, logger *zap.Logger) ForumService {
	return &forumService{forumRepo: forumRepo, logger: logger}
}

func (s *forumService) Create(ctx context.Context, req dto.CreateForumRequest) (*dto.ForumResponse, error) {
	slug := strings.ReplaceAll(strings.ToLower(req.Name), " ", "-")

	// Basic slug uniqueness check
	if existing, _ := s.forumRepo.FindBySlug(ctx, slug); existing != nil {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}

	forum := &model.Forum{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.forumRepo.Create(ctx, forum); err != nil {
		s.logger.Error("failed to create forum", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	resp := toForumResponse(forum)
	return &resp, nil
}

func (s *forumService) List(ctx context.Context) ([]dto.ForumResponse, error) {
	forums, err := s.forumRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list forums", zap.Error(err))
		return nil, err
	}

	return lo.Map(forums, func(f *model.Forum, _ int) dto.ForumResponse {
		return toForumResponse(f)
	}), nil
}

func toForumResponse(f *model.Forum) dto.ForumResponse {
	return dto.ForumResponse{
		ID:          f.ID,
		Name:        f.Name,
		Slug:        f.Slug,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}
