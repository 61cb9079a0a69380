package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edulane/discussion/internal/config"
	"github.com/edulane/discussion/internal/handler"
	"github.com/edulane/discussion/internal/metrics"
	"github.com/edulane/discussion/internal/middleware"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/internal/service"
	"github.com/edulane/discussion/pkg/database"
	"github.com/edulane/discussion/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedForums(db); err != nil {
			log.Fatalf("failed to seed forums: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		logger.Warn("REDIS_URL not set, write rate limiting disabled")
	}

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	forumRepo := repository.NewForumRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	forumService := service.NewForumService(forumRepo, logger)
	forumHandler := handler.NewForumHandler(forumService)

	reactionService := service.NewReactionService(reactionRepo, postRepo, logger)
	reactionHandler := handler.NewReactionHandler(reactionService)

	threadService := service.NewThreadService(threadRepo, forumRepo, postRepo, attachmentRepo, redisClient, logger, cfg.RateLimitThread)
	threadHandler := handler.NewThreadHandler(threadService)

	postService := service.NewPostService(postRepo, threadRepo, userRepo, attachmentRepo, reactionService, redisClient, logger, cfg.RateLimitPost)
	postHandler := handler.NewPostHandler(postService)

	attachmentService := service.NewAttachmentService(attachmentRepo, fileStorage, cfg.CloudinaryUploadFolder, logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)

	router := gin.Default()
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)

	api := router.Group("/api")

	// Public read surface; a valid token only decorates the request.
	reads := api.Group("")
	reads.Use(authMiddleware.OptionalAuth())
	{
		reads.GET("/forums", forumHandler.GetAllForums)
		reads.GET("/threads", threadHandler.GetAllThreads)
		reads.GET("/threads/:thread_id", threadHandler.GetThreadByID)
		reads.GET("/threads/:thread_id/posts", postHandler.GetPostsByThreadID)
		reads.GET("/posts/:post_id", postHandler.GetPostByID)
	}

	writes := api.Group("")
	writes.Use(authMiddleware.RequireAuth())
	{
		writes.POST("/forums", forumHandler.CreateForum)
		writes.POST("/threads", threadHandler.CreateThread)
		writes.POST("/threads/:thread_id/posts", postHandler.CreatePost)
		writes.POST("/reactions/toggle", reactionHandler.ToggleReaction)
		writes.POST("/upload", attachmentHandler.UploadAttachment)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Forum{},
		&model.Thread{},
		&model.Post{},
		&model.Reaction{},
		&model.Attachment{},
	)
}

func seedForums(db *gorm.DB) error {
	defaultForums := []model.Forum{
		{Name: "General", Slug: "general", Description: "General discussion"},
		{Name: "Course Q&A", Slug: "course-qa", Description: "Questions and answers about course material"},
	}

	for _, forum := range defaultForums {
		var count int64
		if err := db.Model(&model.Forum{}).
			Where("slug = ?", forum.Slug).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&forum).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
