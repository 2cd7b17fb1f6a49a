package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-image-processing/internal/imaging"
)

type stubRepository struct {
	fetched []string
	image   *imaging.Image
}

func (s *stubRepository) FetchImage(ctx context.Context, imageURL string) (*imaging.Image, error) {
	s.fetched = append(s.fetched, imageURL)
	return s.image, nil
}

func (s *stubRepository) ValidateImageURL(imageURL string) error { return nil }

func TestImageURL_BuiltFromDate(t *testing.T) {
	client := NewClient("https://epic.gsfc.nasa.gov/", "", 1, time.Second, &stubRepository{})

	got, err := client.ImageURL(EPICImage{
		Image: "epic_1b_20220101003633",
		Date:  "2022-01-01 00:36:33",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "https://epic.gsfc.nasa.gov/archive/natural/2022/01/01/png/epic_1b_20220101003633.png"
	if got != expected {
		t.Errorf("Expected URL %s, got %s", expected, got)
	}
}

func TestImageURL_MalformedDate(t *testing.T) {
	client := NewClient("https://epic.gsfc.nasa.gov/", "", 1, time.Second, &stubRepository{})

	if _, err := client.ImageURL(EPICImage{Image: "x", Date: "not a date"}); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestListImages_DecodesMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/natural" {
			t.Errorf("Expected request to /api/natural, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"image":"epic_a","date":"2022-01-01 00:36:33"},{"image":"epic_b","date":"2022-01-01 02:36:33"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 1, time.Second, &stubRepository{})
	listing, err := client.ListImages(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(listing))
	}
	if listing[0].Image != "epic_a" {
		t.Errorf("Expected first entry epic_a, got %s", listing[0].Image)
	}
}

func TestFetchImages_CapsCountToAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"image":"epic_a","date":"2022-01-01 00:36:33"}]`))
	}))
	defer server.Close()

	repo := &stubRepository{image: imaging.NewGray(1, 1)}
	client := NewClient(server.URL, "", 1, time.Second, repo)

	images, err := client.FetchImages(context.Background(), 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(images) != 1 {
		t.Errorf("Expected count capped to 1 image, got %d", len(images))
	}
	if len(repo.fetched) != 1 {
		t.Errorf("Expected 1 fetch, got %d", len(repo.fetched))
	}
	if images[0].Meta.Image != "epic_a" {
		t.Errorf("Expected metadata epic_a, got %s", images[0].Meta.Image)
	}
}

func TestFetchImages_NonPositiveCountResetsToDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"image":"epic_a","date":"2022-01-01 00:36:33"},{"image":"epic_b","date":"2022-01-01 02:36:33"},{"image":"epic_c","date":"2022-01-01 04:36:33"}]`))
	}))
	defer server.Close()

	repo := &stubRepository{image: imaging.NewGray(1, 1)}
	client := NewClient(server.URL, "", 2, time.Second, repo)

	images, err := client.FetchImages(context.Background(), 0)
	if err != nil {
		t.Fatalf("Expected reset to default count, got error: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("Expected default count of 2 images, got %d", len(images))
	}

	repo.fetched = nil
	if _, err := client.FetchImages(context.Background(), -5); err != nil {
		t.Fatalf("Expected reset to default count, got error: %v", err)
	}
	if len(repo.fetched) != 2 {
		t.Errorf("Expected 2 fetches after reset, got %d", len(repo.fetched))
	}
}
