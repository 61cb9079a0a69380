package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/pkg/pagination"
)

// Function-field mocks: each test assigns only the calls it expects, the
// rest return zero values.

type mockThreadRepo struct {
	createFn         func(ctx context.Context, thread *model.Thread) error
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	findPageFn       func(ctx context.Context, forumID *uuid.UUID, p pagination.Params) ([]*model.Thread, int64, error)
	metricsFn        func(ctx context.Context, threadIDs []uuid.UUID) (map[uuid.UUID]repository.ThreadMetrics, error)
	incrementViewsFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockThreadRepo) Create(ctx context.Context, thread *model.Thread) error {
	if m.createFn != nil {
		return m.createFn(ctx, thread)
	}
	return nil
}

func (m *mockThreadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &model.Thread{ID: id}, nil
}

func (m *mockThreadRepo) FindPage(ctx context.Context, forumID *uuid.UUID, p pagination.Params) ([]*model.Thread, int64, error) {
	if m.findPageFn != nil {
		return m.findPageFn(ctx, forumID, p)
	}
	return []*model.Thread{}, 0, nil
}

func (m *mockThreadRepo) Metrics(ctx context.Context, threadIDs []uuid.UUID) (map[uuid.UUID]repository.ThreadMetrics, error) {
	if m.metricsFn != nil {
		return m.metricsFn(ctx, threadIDs)
	}
	return map[uuid.UUID]repository.ThreadMetrics{}, nil
}

func (m *mockThreadRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

type mockPostRepo struct {
	createFn         func(ctx context.Context, post *model.Post) error
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Post, error)
	findThreadPageFn func(ctx context.Context, threadID uuid.UUID, includeReplies bool, limit, offset int) ([]*model.Post, error)
	countForThreadFn func(ctx context.Context, threadID uuid.UUID, includeReplies bool) (int64, error)
	findRepliesFn    func(ctx context.Context, parentID uuid.UUID) ([]*model.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &model.Post{ID: id}, nil
}

func (m *mockPostRepo) FindThreadPage(ctx context.Context, threadID uuid.UUID, includeReplies bool, limit, offset int) ([]*model.Post, error) {
	if m.findThreadPageFn != nil {
		return m.findThreadPageFn(ctx, threadID, includeReplies, limit, offset)
	}
	return []*model.Post{}, nil
}

func (m *mockPostRepo) CountForThread(ctx context.Context, threadID uuid.UUID, includeReplies bool) (int64, error) {
	if m.countForThreadFn != nil {
		return m.countForThreadFn(ctx, threadID, includeReplies)
	}
	return 0, nil
}

func (m *mockPostRepo) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*model.Post, error) {
	if m.findRepliesFn != nil {
		return m.findRepliesFn(ctx, parentID)
	}
	return []*model.Post{}, nil
}

type mockForumRepo struct {
	createFn     func(ctx context.Context, forum *model.Forum) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*model.Forum, error)
	findBySlugFn func(ctx context.Context, slug string) (*model.Forum, error)
	findAllFn    func(ctx context.Context) ([]*model.Forum, error)
}

func (m *mockForumRepo) Create(ctx context.Context, forum *model.Forum) error {
	if m.createFn != nil {
		return m.createFn(ctx, forum)
	}
	return nil
}

func (m *mockForumRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Forum, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &model.Forum{ID: id}, nil
}

func (m *mockForumRepo) FindBySlug(ctx context.Context, slug string) (*model.Forum, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, nil
}

func (m *mockForumRepo) FindAll(ctx context.Context) ([]*model.Forum, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []*model.Forum{}, nil
}

type mockUserRepo struct {
	findByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	if m.findByIDsFn != nil {
		return m.findByIDsFn(ctx, ids)
	}
	return []*model.User{}, nil
}

type mockAttachmentRepo struct {
	createFn        func(ctx context.Context, attachment *model.Attachment) error
	findByPostIDsFn func(ctx context.Context, postIDs []uuid.UUID) ([]*model.Attachment, error)
	attachToPostFn  func(ctx context.Context, ids []uint, postID uuid.UUID, userID uuid.UUID) error
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *model.Attachment) error {
	if m.createFn != nil {
		return m.createFn(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepo) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*model.Attachment, error) {
	if m.findByPostIDsFn != nil {
		return m.findByPostIDsFn(ctx, postIDs)
	}
	return []*model.Attachment{}, nil
}

func (m *mockAttachmentRepo) AttachToPost(ctx context.Context, ids []uint, postID uuid.UUID, userID uuid.UUID) error {
	if m.attachToPostFn != nil {
		return m.attachToPostFn(ctx, ids, postID, userID)
	}
	return nil
}

type mockReactionRepo struct {
	toggleFn       func(ctx context.Context, reaction *model.Reaction) (string, error)
	countByPostFn  func(ctx context.Context, postID uuid.UUID) (map[string]int64, error)
	countByPostsFn func(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]map[string]int64, error)
}

func (m *mockReactionRepo) Toggle(ctx context.Context, reaction *model.Reaction) (string, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, reaction)
	}
	return reaction.Type, nil
}

func (m *mockReactionRepo) CountByPost(ctx context.Context, postID uuid.UUID) (map[string]int64, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return map[string]int64{}, nil
}

func (m *mockReactionRepo) CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]map[string]int64, error) {
	if m.countByPostsFn != nil {
		return m.countByPostsFn(ctx, postIDs)
	}
	return map[uuid.UUID]map[string]int64{}, nil
}
