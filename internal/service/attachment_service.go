package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edulane/discussion/internal/dto"
	"github.com/edulane/discussion/internal/model"
	"github.com/edulane/discussion/internal/repository"
	"github.com/edulane/discussion/pkg/storage"
)

type AttachmentService interface {
	// Upload stores the file with the storage provider and records it,
	// unlinked until a post creation claims it.
	Upload(ctx context.Context, userID uuid.UUID, r io.Reader, fileName string) (*dto.AttachmentResponse, error)
}

type attachmentService struct {
	attachmentRepo repository.AttachmentRepository
	fileStorage    storage.FileStorage
	uploadFolder   string
	logger         *zap.Logger
}

func NewAttachmentService(attachmentRepo repository.AttachmentRepository, fileStorage storage.FileStorage, uploadFolder string, logger *zap.Logger) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		fileStorage:    fileStorage,
		uploadFolder:   uploadFolder,
		logger:         logger,
	}
}

func (s *attachmentService) Upload(ctx context.Context, userID uuid.UUID, r io.Reader, fileName string) (*dto.AttachmentResponse, error) {
	url, err := s.fileStorage.UploadFile(ctx, r, s.uploadFolder, fileName)
	if err != nil {
		s.logger.Error("failed to upload attachment",
			zap.String("user_id", userID.String()),
			zap.String("file_name", fileName),
			zap.Error(err))
		return nil, err
	}

	attachment := &model.Attachment{
		UserID:   userID,
		FileURL:  url,
		FileType: strings.TrimPrefix(filepath.Ext(fileName), "."),
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		s.logger.Error("failed to record attachment",
			zap.String("file_url", url), zap.Error(err))
		return nil, err
	}

	return &dto.AttachmentResponse{
		ID:       attachment.ID,
		FileURL:  attachment.FileURL,
		FileType: attachment.FileType,
	}, nil
}
