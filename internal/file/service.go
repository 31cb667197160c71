package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/storage"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

const thumbnailSize = 200

var allowedTypes = []string{"image/jpeg", "image/png"}

// UploadInput describes one photo upload.
type UploadInput struct {
	CampSiteID string
	UserID     string
	Filename   string
	Content    io.Reader
}

type Service interface {
	// Upload stores an image for a campsite. The caller needs PHOTO_MANAGE.
	Upload(ctx context.Context, in UploadInput) (*Photo, error)
	List(ctx context.Context, campSiteID string) ([]*Photo, error)
	Delete(ctx context.Context, campSiteID, id, actorID string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo     Repository
	storage  storage.Storage
	imgProc  *storage.ImageProcessor
	authz    team.Authorizer
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a photo service. maxBytes <= 0 disables the size limit.
func NewService(repo Repository, store storage.Storage, authz team.Authorizer, maxBytes int64, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:     repo,
		storage:  store,
		imgProc:  storage.NewImageProcessor(),
		authz:    authz,
		maxBytes: maxBytes,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	if err := s.authz.Authorize(ctx, in.CampSiteID, in.UserID, team.PermPhotoManage); err != nil {
		return nil, err
	}

	content, err := s.read(in.Content)
	if err != nil {
		return nil, err
	}

	mime := mimetype.Detect(content)
	if !mimetype.EqualsAny(mime.String(), allowedTypes...) || !s.imgProc.IsImage(bytes.NewReader(content)) {
		return nil, ErrUnsupportedType
	}

	photoID := uuid.NewString()

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, mime.Extension())

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save photo to storage failed: %w", err)
	}

	// A failed thumbnail does not fail the upload.
	var thumbnailPath *string
	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), thumbnailSize, thumbnailSize)
	if err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err = s.storage.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "thumbnail generation failed",
			slog.String("photo_id", photoID),
			slog.String("error", err.Error()),
		)
	}

	p := &Photo{
		ID:            photoID,
		CampSiteID:    in.CampSiteID,
		UserID:        in.UserID,
		Filename:      filepath.Base(in.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   mime.String(),
		Size:          int64(len(content)),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.removeBlobs(ctx, p)
		return nil, err
	}

	s.logger.InfoContext(ctx, "photo uploaded",
		slog.String("photo_id", p.ID),
		slog.String("campsite_id", p.CampSiteID),
		slog.Int64("size", p.Size),
	)
	return p, nil
}

// read buffers the upload so it can be sniffed, thumbnailed and saved.
func (s *service) read(r io.Reader) ([]byte, error) {
	if s.maxBytes > 0 {
		r = io.LimitReader(r, s.maxBytes+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(content)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	return content, nil
}

func (s *service) List(ctx context.Context, campSiteID string) ([]*Photo, error) {
	return s.repo.ListByCampSite(ctx, campSiteID)
}

func (s *service) Delete(ctx context.Context, campSiteID, id, actorID string) error {
	if err := s.authz.Authorize(ctx, campSiteID, actorID, team.PermPhotoManage); err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CampSiteID != campSiteID {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBlobs(ctx, p)
	return nil
}

// removeBlobs is best effort; orphaned blobs are only logged.
func (s *service) removeBlobs(ctx context.Context, p *Photo) {
	paths := []string{p.StoragePath}
	if p.ThumbnailPath != nil {
		paths = append(paths, *p.ThumbnailPath)
	}
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			s.logger.WarnContext(ctx, "delete photo blob failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s.open(ctx, p, p.StoragePath, ErrNotFound)
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailNotFound
	}
	return s.open(ctx, p, *p.ThumbnailPath, ErrThumbnailNotFound)
}

func (s *service) open(ctx context.Context, p *Photo, path string, missing error) (io.ReadCloser, *Photo, error) {
	stream, err := s.storage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, missing
		}
		return nil, nil, fmt.Errorf("retrieve photo from storage failed: %w", err)
	}
	return stream, p, nil
}
