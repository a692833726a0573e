package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StoredImage is a blob held by the image store.
type StoredImage struct {
	PublicID string
	URL      string
}

type ImageStore interface {
	Upload(ctx context.Context, file io.Reader) (StoredImage, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryImageStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryImageStore {
	return &CloudinaryImageStore{cld: cld, folder: folder}
}

func (s *CloudinaryImageStore) Upload(ctx context.Context, file io.Reader) (StoredImage, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return StoredImage{}, err
	}
	if resp.Error.Message != "" {
		return StoredImage{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return StoredImage{PublicID: resp.PublicID, URL: resp.SecureURL}, nil
}

func (s *CloudinaryImageStore) Destroy(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}
