package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Image is a stored listing photo.
type Image struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// ImageStore holds listing photos.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder, name string) (*Image, error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStore implements ImageStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

// Upload streams a file into folder and returns its permanent URL.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder, name string) (*Image, error) {
	overwrite := false
	params := uploader.UploadParams{
		Folder:       folder,
		PublicID:     name,
		Overwrite:    &overwrite,
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStore: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStore: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStore: no public ID returned")
	}
	return &Image{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// Delete removes an image given its public ID.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryStore: failed to delete image: %w", err)
	}
	return nil
}
