package http

import (
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/file"
)

// PhotoURI binds /campsites/:id/photos/:photo_id.
type PhotoURI struct {
	CampSiteID string `uri:"id" binding:"required,uuid"`
	PhotoID    string `uri:"photo_id" binding:"required,uuid"`
}

type PhotoResponse struct {
	ID           string    `json:"id"`
	CampSiteID   string    `json:"campsite_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPhotoResponse(p *file.Photo) PhotoResponse {
	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := file.ThumbnailURL(p.ID)
		thumbURL = &t
	}
	return PhotoResponse{
		ID:           p.ID,
		CampSiteID:   p.CampSiteID,
		Filename:     p.Filename,
		ContentType:  p.ContentType,
		Size:         p.Size,
		URL:          file.FileURL(p.ID),
		ThumbnailURL: thumbURL,
		CreatedAt:    p.CreatedAt,
	}
}
