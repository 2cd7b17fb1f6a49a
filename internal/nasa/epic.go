package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
	"go-image-processing/internal/repository"
)

// EPICImage is one entry of the EPIC (Earth Polychromatic Imaging Camera)
// metadata listing. Only the fields needed to build archive URLs are kept.
type EPICImage struct {
	Image string `json:"image"`
	Date  string `json:"date"`
}

// Client downloads EPIC imagery from the NASA API. It lists the most
// recent natural-color metadata, derives archive URLs and fetches the
// images through the repository.
type Client struct {
	baseURL      string
	apiKey       string
	defaultCount int
	httpClient   *http.Client
	images       repository.ImageRepository
}

// DefaultImageCount is used when neither the caller nor the configuration
// supplies a usable image count.
const DefaultImageCount = 1

// NewClient creates an EPIC client. The base URL is the EPIC site root,
// e.g. https://epic.gsfc.nasa.gov/. An empty API key omits the api_key
// query parameter; the EPIC mirror does not require one. defaultCount is
// the fallback for non-positive fetch counts.
func NewClient(baseURL, apiKey string, defaultCount int, timeout time.Duration, images repository.ImageRepository) *Client {
	if defaultCount < 1 {
		defaultCount = DefaultImageCount
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/") + "/",
		apiKey:       apiKey,
		defaultCount: defaultCount,
		httpClient:   &http.Client{Timeout: timeout},
		images:       images,
	}
}

// ListImages retrieves the most recent EPIC metadata entries.
func (c *Client) ListImages(ctx context.Context) ([]EPICImage, error) {
	listURL := c.baseURL + "api/natural"
	if c.apiKey != "" {
		listURL += "?api_key=" + url.QueryEscape(c.apiKey)
	}
	logger.WithField("url", listURL).Debug("Requesting EPIC image listing")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, errors.NewValidationError("invalid EPIC listing URL", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("EPIC listing request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("EPIC listing returned status %d", resp.StatusCode), nil)
	}

	var listing []EPICImage
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, errors.NewProcessingError("failed to decode EPIC listing", err)
	}
	return listing, nil
}

// ImageURL builds the archive URL for a metadata entry. The date field
// ("2006-01-02 15:04:05") supplies the year, month and day path segments.
func (c *Client) ImageURL(meta EPICImage) (string, error) {
	year, month, day, err := splitDate(meta.Date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sarchive/natural/%s/%s/%s/png/%s.png",
		c.baseURL, year, month, day, meta.Image), nil
}

// FetchedImage pairs a downloaded EPIC capture with its metadata.
type FetchedImage struct {
	Meta  EPICImage
	URL   string
	Image *imaging.Image
}

// FetchImages downloads up to count of the most recent EPIC images. A
// non-positive count resets to the configured default with a diagnostic,
// and a count above what the listing provides is capped with a warning;
// neither is treated as an error.
func (c *Client) FetchImages(ctx context.Context, count int) ([]FetchedImage, error) {
	if count < 1 {
		logger.WithFields(logrus.Fields{
			"requested": count,
			"default":   c.defaultCount,
		}).Error("Image count must be a positive integer, resetting to default")
		count = c.defaultCount
	}

	listing, err := c.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	if len(listing) == 0 {
		return nil, errors.NewNotFoundError("EPIC listing is empty", nil)
	}
	if count > len(listing) {
		logger.WithFields(logrus.Fields{
			"requested": count,
			"available": len(listing),
		}).Warn("Requested more EPIC images than available, capping")
		count = len(listing)
	}

	fetched := make([]FetchedImage, 0, count)
	for i := 0; i < count; i++ {
		imageURL, err := c.ImageURL(listing[i])
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"index": i + 1,
			"url":   imageURL,
		}).Debug("Fetching EPIC image")

		img, err := c.images.FetchImage(ctx, imageURL)
		if err != nil {
			return nil, errors.NewNetworkError(
				fmt.Sprintf("failed to fetch EPIC image %s", listing[i].Image), err)
		}
		fetched = append(fetched, FetchedImage{Meta: listing[i], URL: imageURL, Image: img})
	}
	return fetched, nil
}

// splitDate extracts the year, month and day from an EPIC date string of
// the form "YYYY-MM-DD hh:mm:ss".
func splitDate(date string) (year, month, day string, err error) {
	dateAndTime := strings.SplitN(date, " ", 2)
	parts := strings.Split(dateAndTime[0], "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", errors.NewProcessingError(
			fmt.Sprintf("malformed EPIC image date: %q", date), nil)
	}
	return parts[0], parts[1], parts[2], nil
}
