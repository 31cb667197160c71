package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/file"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
)

const formFieldName = "file"

type FileHandler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// Upload attaches an image to a campsite from the multipart "file" field.
func (h *FileHandler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	fileHeader, err := c.FormFile(formFieldName)
	if err != nil {
		response.BadRequest(c, formFieldName+" is required", err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	p, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		CampSiteID: uri.ID,
		UserID:     auth.GetUserID(c),
		Filename:   fileHeader.Filename,
		Content:    src,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

func (h *FileHandler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	photos, err := h.fileService.List(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *FileHandler) Delete(c *gin.Context) {
	var uri PhotoURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), uri.CampSiteID, uri.PhotoID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ServeFile serves the photo content by ID
func (h *FileHandler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	stream, p, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, p.ContentType, p.Filename)
}

// ServeThumbnail serves the thumbnail image by photo ID
func (h *FileHandler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	stream, p, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG.
	h.stream(c, stream, "image/jpeg", p.Filename+"_thumb.jpg")
}

func (h *FileHandler) stream(c *gin.Context, r io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, r); err != nil {
		// Response already started.
		slog.WarnContext(c.Request.Context(), "stream photo failed", slog.String("error", err.Error()))
	}
}
