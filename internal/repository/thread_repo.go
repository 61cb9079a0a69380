package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/pkg/pagination"
)

// ThreadMetrics holds the per-thread derived numbers for one listing page.
// LastPostAt is nil for threads without posts.
type ThreadMetrics struct {
	PostCount     int64
	ReactionCount int64
	LastPostAt    *time.Time
}

type ThreadRepository interface {
	Create(ctx context.Context, thread *model.Thread) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	// FindPage returns one sorted page of threads for the given forum scope
	// (nil forumID means all forums) plus the unfiltered total for that scope.
	FindPage(ctx context.Context, forumID *uuid.UUID, p pagination.Params) ([]*model.Thread, int64, error)
	// Metrics computes post count, reaction total and latest post time for the
	// given id set in batched queries, never per-thread round-trips.
	Metrics(ctx context.Context, threadIDs []uuid.UUID) (map[uuid.UUID]ThreadMetrics, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *model.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	var thread model.Thread
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// orderClause maps each sort strategy onto its SQL ordering key. Every clause
// ends with the thread id so that ties order identically across calls.
func orderClause(s pagination.Sort) string {
	switch s {
	case pagination.SortNewest:
		return "t.created_at DESC, t.id"
	case pagination.SortOldest:
		return "t.created_at ASC, t.id"
	case pagination.SortPopular:
		return "t.views DESC, t.id"
	case pagination.SortEngaging:
		return "COUNT(r.id) DESC, t.id"
	default: // active
		return "CASE WHEN MAX(p.created_at) IS NULL OR MAX(p.created_at) < t.created_at THEN t.created_at ELSE MAX(p.created_at) END DESC, t.id"
	}
}

func (r *threadRepository) FindPage(ctx context.Context, forumID *uuid.UUID, p pagination.Params) ([]*model.Thread, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&model.Thread{})
	if forumID != nil {
		countQuery = countQuery.Where("forum_id = ?", forumID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// The sorted page is resolved as a plain id list first: the derived sort
	// keys (last activity, reaction total) need aggregation over joined rows,
	// and COUNT(DISTINCT p.id) would otherwise be required everywhere to undo
	// the reactions join fan-out on thread columns.
	where := ""
	args := make([]interface{}, 0, 3)
	if forumID != nil {
		where = "WHERE t.forum_id = ?"
		args = append(args, *forumID)
	}

	query := fmt.Sprintf(`
		SELECT t.id
		FROM threads t
		LEFT JOIN posts p ON p.thread_id = t.id
		LEFT JOIN reactions r ON r.post_id = p.id
		%s
		GROUP BY t.id, t.created_at, t.views
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, orderClause(p.Sort))
	args = append(args, p.Limit, p.Offset)

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error; err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return []*model.Thread{}, total, nil
	}

	var threads []*model.Thread
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&threads).Error; err != nil {
		return nil, 0, err
	}

	// Reorder fetched rows to match the sorted id page
	threadMap := make(map[uuid.UUID]*model.Thread, len(threads))
	for _, t := range threads {
		threadMap[t.ID] = t
	}

	ordered := make([]*model.Thread, 0, len(ids))
	for _, id := range ids {
		if t, ok := threadMap[id]; ok {
			ordered = append(ordered, t)
		}
	}

	return ordered, total, nil
}

func (r *threadRepository) Metrics(ctx context.Context, threadIDs []uuid.UUID) (map[uuid.UUID]ThreadMetrics, error) {
	metrics := make(map[uuid.UUID]ThreadMetrics, len(threadIDs))
	if len(threadIDs) == 0 {
		return metrics, nil
	}

	type countRow struct {
		ThreadID uuid.UUID
		Count    int64
	}
	var counts []countRow
	if err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("thread_id, COUNT(*) AS count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	for _, row := range counts {
		m := metrics[row.ThreadID]
		m.PostCount = row.Count
		metrics[row.ThreadID] = m
	}

	// Latest post per thread, selected as a plain column rather than
	// MAX(created_at) so drivers keep the timestamp type intact.
	type latestRow struct {
		ThreadID  uuid.UUID
		CreatedAt time.Time
	}
	var latest []latestRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.thread_id AS thread_id, p.created_at AS created_at
		FROM posts p
		WHERE p.thread_id IN ?
		AND NOT EXISTS (
			SELECT 1 FROM posts p2
			WHERE p2.thread_id = p.thread_id AND p2.created_at > p.created_at
		)`, threadIDs).Scan(&latest).Error; err != nil {
		return nil, err
	}

	for _, row := range latest {
		m := metrics[row.ThreadID]
		if m.LastPostAt == nil || row.CreatedAt.After(*m.LastPostAt) {
			t := row.CreatedAt
			m.LastPostAt = &t
		}
		metrics[row.ThreadID] = m
	}

	type reactionRow struct {
		ThreadID uuid.UUID
		Count    int64
	}
	var reactions []reactionRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.thread_id AS thread_id, COUNT(r.id) AS count
		FROM reactions r
		JOIN posts p ON p.id = r.post_id
		WHERE p.thread_id IN ?
		GROUP BY p.thread_id`, threadIDs).Scan(&reactions).Error; err != nil {
		return nil, err
	}

	for _, row := range reactions {
		m := metrics[row.ThreadID]
		m.ReactionCount = row.Count
		metrics[row.ThreadID] = m
	}

	return metrics, nil
}

func (r *threadRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Thread{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
