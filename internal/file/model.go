package file

import (
	"net/http"
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "photo not found")
	ErrThumbnailNotFound = apperror.New(http.StatusNotFound, "thumbnail not available for this photo")
	ErrEmptyFile         = apperror.New(http.StatusBadRequest, "file is empty")
	ErrFileTooLarge      = apperror.New(http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	ErrUnsupportedType   = apperror.New(http.StatusUnsupportedMediaType, "only JPEG and PNG images are accepted")
)

// Photo is an image attached to a campsite.
type Photo struct {
	ID            string
	CampSiteID    string
	UserID        string
	Filename      string
	StoragePath   string  // internal path
	ThumbnailPath *string // internal path
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a photo by its ID.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for accessing a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
