package repository

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go-image-processing/internal/imaging"
	"go-image-processing/internal/storage"
)

// ErrInvalidImageURL indicates the provided URL cannot identify an image.
var ErrInvalidImageURL = errors.New("invalid image URL")

// ImageRepository retrieves images as the toolkit's numeric representation.
type ImageRepository interface {
	FetchImage(ctx context.Context, imageURL string) (*imaging.Image, error)
	ValidateImageURL(imageURL string) error
}

// HTTPImageRepository implements ImageRepository over an HTTP fetcher,
// with optional blob-store routing for Azure-hosted sources.
type HTTPImageRepository struct {
	fetcher storage.ImageFetcher
	blobs   storage.BlobStorage
}

// NewHTTPImageRepository creates a new HTTP-based image repository.
func NewHTTPImageRepository(fetcher storage.ImageFetcher) ImageRepository {
	return &HTTPImageRepository{fetcher: fetcher}
}

// NewBlobImageRepository creates a repository that routes blob-store URLs
// through blob storage and everything else through the HTTP fetcher.
func NewBlobImageRepository(fetcher storage.ImageFetcher, blobs storage.BlobStorage) ImageRepository {
	return &HTTPImageRepository{fetcher: fetcher, blobs: blobs}
}

// FetchImage downloads the URL and converts the decoded image into the
// float64 pixel array the processing core consumes.
func (r *HTTPImageRepository) FetchImage(ctx context.Context, imageURL string) (*imaging.Image, error) {
	if r.blobs != nil && isBlobURL(imageURL) {
		decoded, err := r.blobs.GetImage(ctx, imageURL)
		if err != nil {
			return nil, err
		}
		return imaging.FromImage(decoded), nil
	}

	decoded, err := r.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return imaging.FromImage(decoded), nil
}

func isBlobURL(imageURL string) bool {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(parsed.Hostname(), ".blob.core.windows.net")
}

// ValidateImageURL checks that the URL parses and carries a host.
func (r *HTTPImageRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrInvalidImageURL
	}
	return nil
}
