package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder for uploads
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor produces thumbnails for uploaded photos.
type ImageProcessor struct {
	quality int
}

// NewImageProcessor creates an ImageProcessor encoding JPEGs at quality 80.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// IsImage reports whether content decodes as a supported image.
func (p *ImageProcessor) IsImage(content io.Reader) bool {
	_, _, err := image.DecodeConfig(content)
	return err == nil
}

// GenerateThumbnail fits the image into maxWidth x maxHeight and returns it as a JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf, nil
}
