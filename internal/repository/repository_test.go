package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Forum{},
		&model.Thread{},
		&model.Post{},
		&model.Reaction{},
		&model.Attachment{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedForum(t *testing.T, db *gorm.DB) *model.Forum {
	t.Helper()

	forum := &model.Forum{
		Name: "General",
		Slug: "general-" + uuid.NewString()[:8],
	}
	if err := db.Create(forum).Error; err != nil {
		t.Fatalf("failed to seed forum: %v", err)
	}
	return forum
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{ID: uuid.New(), DisplayName: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedThread(t *testing.T, db *gorm.DB, forumID, userID uuid.UUID, title string, createdAt time.Time) *model.Thread {
	t.Helper()

	thread := &model.Thread{
		ForumID:   forumID,
		UserID:    userID,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(thread).Error; err != nil {
		t.Fatalf("failed to seed thread %q: %v", title, err)
	}
	return thread
}

func seedPost(t *testing.T, db *gorm.DB, threadID, userID uuid.UUID, parentID *uuid.UUID, body string, createdAt time.Time) *model.Post {
	t.Helper()

	post := &model.Post{
		ThreadID:  threadID,
		ParentID:  parentID,
		UserID:    userID,
		Body:      body,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post %q: %v", body, err)
	}
	return post
}
