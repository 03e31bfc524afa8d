package favicon

import (
	"time"

	"github.com/samber/lo"
)

// AssetResponse is the API view of a derived asset, with its storage key
// rewritten into a public URL.
type AssetResponse struct {
	ID       string    `json:"id"`
	Type     AssetType `json:"type"`
	Size     *string   `json:"size"`
	Format   string    `json:"format"`
	MimeType string    `json:"mimeType"`
	URL      string    `json:"url"`
}

// DetailResponse is the full API view of a favicon.
type DetailResponse struct {
	ID               string           `json:"id"`
	Slug             string           `json:"slug"`
	Title            *string          `json:"title"`
	TargetDomain     *string          `json:"targetDomain"`
	PublishedURL     string           `json:"publishedUrl"`
	SourceURL        string           `json:"sourceUrl"`
	SourceType       SourceType       `json:"sourceType"`
	IsPublished      bool             `json:"isPublished"`
	CreatedAt        time.Time        `json:"createdAt"`
	GeneratedAt      *time.Time       `json:"generatedAt"`
	GenerationStatus GenerationStatus `json:"generationStatus"`
	GenerationError  *string          `json:"generationError"`
	Metadata         *string          `json:"metadata"`
	HasSteganography bool             `json:"hasSteganography"`
	Assets           []AssetResponse  `json:"assets"`
}

// DirectoryItem is the trimmed listing view used by the public directory.
type DirectoryItem struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        *string   `json:"title"`
	TargetDomain *string   `json:"targetDomain"`
	PublishedURL string    `json:"publishedUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DeleteResult reports the outcome of one deletion in a batch.
type DeleteResult struct {
	ID      string  `json:"id"`
	Success bool    `json:"success"`
	Error   *string `json:"error,omitempty"`
}

// DeleteResponse is the per-id outcome list of a batch deletion.
type DeleteResponse struct {
	Results []DeleteResult `json:"results"`
}

func newDetailResponse(fav *Favicon, assets []Asset) *DetailResponse {
	resp := &DetailResponse{
		ID:               fav.ID.String(),
		Slug:             fav.Slug,
		Title:            fav.Title,
		TargetDomain:     fav.TargetDomain,
		PublishedURL:     publishedURL(fav.Slug),
		SourceURL:        sourceURL(fav.ID.String()),
		SourceType:       fav.SourceType,
		IsPublished:      fav.IsPublished,
		CreatedAt:        fav.CreatedAt,
		GeneratedAt:      fav.GeneratedAt,
		GenerationStatus: fav.GenerationStatus,
		GenerationError:  fav.GenerationError,
		Metadata:         fav.Metadata,
		HasSteganography: fav.HasSteganography,
		Assets: lo.Map(assets, func(a Asset, _ int) AssetResponse {
			return AssetResponse{
				ID:       a.ID.String(),
				Type:     a.AssetType,
				Size:     a.Size,
				Format:   a.Format,
				MimeType: a.MimeType,
				URL:      assetURL(a.StorageKey),
			}
		}),
	}

	if resp.Assets == nil {
		resp.Assets = make([]AssetResponse, 0)
	}

	return resp
}

func newDirectoryItem(fav Favicon) DirectoryItem {
	return DirectoryItem{
		ID:           fav.ID.String(),
		Slug:         fav.Slug,
		Title:        fav.Title,
		TargetDomain: fav.TargetDomain,
		PublishedURL: publishedURL(fav.Slug),
		CreatedAt:    fav.CreatedAt,
	}
}

func publishedURL(slug string) string {
	return "/f/" + slug
}

func sourceURL(id string) string {
	return "/api/storage/sources/" + id + "/original"
}

func assetURL(storageKey string) string {
	return "/api/storage/" + storageKey
}
