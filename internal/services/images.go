package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageArchive stores submitted crop images in Cloudinary so a
// prediction's source image stays reviewable.
type ImageArchive struct {
	cld *cloudinary.Cloudinary
}

func NewImageArchive(cloudName, apiKey, apiSecret string) (*ImageArchive, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &ImageArchive{cld: cld}, nil
}

// Upload stores an image and returns its public URL.
func (s *ImageArchive) Upload(ctx context.Context, image []byte, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.SecureURL, nil
}
