package favicon

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rise-and-shine/iconreg/filestore"
	"github.com/rise-and-shine/iconreg/formdata"
	"github.com/rise-and-shine/iconreg/logger"
	"github.com/rise-and-shine/iconreg/pagination"
	"github.com/rise-and-shine/iconreg/sorter"
	"github.com/rise-and-shine/iconreg/validation"
)

const slugLength = 10

// directorySortColumns maps API sort field names onto database columns.
var directorySortColumns = map[string]string{
	"createdAt": "created_at",
	"slug":      "slug",
	"domain":    "target_domain",
}

// metadataStore is the persistence surface the service needs. *Repo
// implements it.
type metadataStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Favicon, error)
	GetBySlug(ctx context.Context, slug string) (*Favicon, error)
	FindDuplicate(ctx context.Context, contentHash string, fileSize int64) (*Favicon, error)
	Insert(ctx context.Context, fav *Favicon) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context, sort sorter.Opt, limit, offset int) ([]Favicon, int64, error)
	AssetsByFaviconID(ctx context.Context, faviconID uuid.UUID) ([]Asset, error)
	DeleteAssetsByFaviconID(ctx context.Context, faviconID uuid.UUID) error
}

// Service implements the favicon registry operations: ingestion with
// content-based deduplication, public reads and batch deletion.
type Service struct {
	repo  metadataStore
	store filestore.FileStore
	log   logger.Logger
}

func NewService(repo metadataStore, store filestore.FileStore, log logger.Logger) *Service {
	return &Service{repo: repo, store: store, log: log}
}

// CanvasRequest is the JSON payload of a canvas-drawn favicon submission.
type CanvasRequest struct {
	DataURL      string `json:"dataUrl" validate:"required"`
	Title        string `json:"title"`
	TargetDomain string `json:"targetDomain"`
	Metadata     string `json:"metadata"`
}

// DirectoryQuery carries the parameters of a public directory listing.
type DirectoryQuery struct {
	pagination.Request
	SortBy string `query:"sortBy"`
	Order  string `query:"order"`
}

type ingestInput struct {
	data         []byte
	declaredType string
	title        string
	targetDomain string
	metadata     string
	sourceType   SourceType
}

// IngestUpload decodes a multipart body and registers the uploaded image.
func (s *Service) IngestUpload(ctx context.Context, body []byte, boundary string) (*DetailResponse, error) {
	form := formdata.Parse(body, boundary)

	file, ok := form.File("file")
	if !ok {
		return nil, errx.New(
			"Missing file part",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeMissingFilePart),
		)
	}

	title, _ := form.Field("title")
	domain, _ := form.Field("targetDomain")
	metadata, _ := form.Field("metadata")

	return s.ingest(ctx, ingestInput{
		data:         file.Content,
		declaredType: file.ContentType,
		title:        title,
		targetDomain: domain,
		metadata:     metadata,
		sourceType:   SourceUpload,
	})
}

// IngestCanvas decodes a base64 data URL and registers the drawn image.
func (s *Service) IngestCanvas(ctx context.Context, req CanvasRequest) (*DetailResponse, error) {
	if err := validation.ValidateSchema(req); err != nil {
		return nil, err
	}

	mediaType, data, err := formdata.ParseDataURL(req.DataURL)
	if err != nil {
		return nil, err
	}

	return s.ingest(ctx, ingestInput{
		data:         data,
		declaredType: mediaType,
		title:        req.Title,
		targetDomain: req.TargetDomain,
		metadata:     req.Metadata,
		sourceType:   SourceCanvas,
	})
}

// ingest runs the shared pipeline: validation, content fingerprinting,
// dedup lookup, blob write and metadata insert. The blob is written before
// the row so a committed row always references a durably stored source image.
func (s *Service) ingest(ctx context.Context, in ingestInput) (*DetailResponse, error) {
	if err := validation.CheckFileSize(len(in.data)); err != nil {
		return nil, err
	}

	detectedType, err := validation.DetectImageType(in.data)
	if err != nil {
		return nil, err
	}

	if in.sourceType == SourceUpload && !strings.HasPrefix(in.declaredType, "image/") {
		return nil, errx.New(
			"Uploaded file is not an image",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeNotAnImageUpload),
			errx.WithDetails(errx.D{"content_type": in.declaredType}),
		)
	}

	domain := strings.TrimSpace(in.targetDomain)
	if domain != "" {
		if err := validation.ValidateDomain(domain); err != nil {
			return nil, err
		}
	}

	metadata := strings.TrimSpace(in.metadata)
	if metadata != "" {
		if err := validation.ValidateMetadata(metadata); err != nil {
			return nil, err
		}
	}

	hash := md5.Sum(in.data)
	contentHash := hex.EncodeToString(hash[:])
	fileSize := int64(len(in.data))

	// Lookup and insert are separate statements, so two concurrent
	// submissions of the same content can both pass the lookup and create
	// two rows. Later submissions resolve to whichever row the lookup
	// returns first.
	existing, err := s.repo.FindDuplicate(ctx, contentHash, fileSize)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.detail(ctx, existing)
	}

	id := uuid.New()
	fav := &Favicon{
		ID:               id,
		Slug:             newSlug(),
		SourceType:       in.sourceType,
		SourceMimeType:   &detectedType,
		ContentHash:      &contentHash,
		FileSize:         &fileSize,
		IsPublished:      true,
		GenerationStatus: GenerationPending,
	}
	if title := strings.TrimSpace(in.title); title != "" {
		fav.Title = &title
	}
	if domain != "" {
		fav.TargetDomain = &domain
	}
	if metadata != "" {
		fav.Metadata = &metadata
	}

	if err := s.store.Upload(ctx, SourceKey(id.String()), in.data, detectedType); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, fav); err != nil {
		return nil, err
	}

	return newDetailResponse(fav, nil), nil
}

// GetBySlug returns the full detail view of a favicon.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*DetailResponse, error) {
	fav, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, fav)
}

// SourceImage returns the original image bytes and their detected media type.
func (s *Service) SourceImage(ctx context.Context, id string) ([]byte, string, error) {
	faviconID, err := uuid.Parse(id)
	if err != nil {
		return nil, "", errx.New(
			"Favicon not found",
			errx.WithType(errx.T_NotFound),
			errx.WithCode(CodeFaviconNotFound),
			errx.WithDetails(errx.D{"id": id}),
		)
	}

	if _, err := s.repo.GetByID(ctx, faviconID); err != nil {
		return nil, "", err
	}

	data, err := s.store.Get(ctx, SourceKey(id))
	if err != nil {
		return nil, "", err
	}

	return data, filestore.DetectContentType(data), nil
}

// Directory returns one page of the public directory listing.
func (s *Service) Directory(ctx context.Context, query DirectoryQuery) (pagination.Response[DirectoryItem], error) {
	query.Normalize()

	sort := sorter.FromQuery(query.SortBy, query.Order, directorySortColumns, "target_domain")

	favicons, total, err := s.repo.ListPublished(ctx, sort, query.Limit(), query.Offset())
	if err != nil {
		return pagination.Response[DirectoryItem]{}, err
	}

	items := make([]DirectoryItem, 0, len(favicons))
	for _, fav := range favicons {
		items = append(items, newDirectoryItem(fav))
	}

	return pagination.NewResponse(items, total, query.Request), nil
}

// DeleteMany deletes favicons by id, reporting a per-id outcome. One failed
// deletion does not stop the rest of the batch. Blob deletions are
// best-effort: an unreachable object store leaves orphan blobs behind but
// never blocks removal of the metadata rows.
func (s *Service) DeleteMany(ctx context.Context, ids []string) DeleteResponse {
	results := make([]DeleteResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, s.deleteOne(ctx, id))
	}
	return DeleteResponse{Results: results}
}

func (s *Service) deleteOne(ctx context.Context, id string) DeleteResult {
	fail := func(msg string) DeleteResult {
		return DeleteResult{ID: id, Error: &msg}
	}

	faviconID, err := uuid.Parse(id)
	if err != nil {
		return fail("Not found")
	}

	if _, err := s.repo.GetByID(ctx, faviconID); err != nil {
		if errx.AsErrorX(err).Type() == errx.T_NotFound {
			return fail("Not found")
		}
		return fail("Failed to delete favicon")
	}

	assets, err := s.repo.AssetsByFaviconID(ctx, faviconID)
	if err != nil {
		return fail("Failed to delete favicon")
	}

	s.deleteBlob(ctx, SourceKey(id))
	for _, asset := range assets {
		s.deleteBlob(ctx, asset.StorageKey)
	}

	if err := s.repo.DeleteAssetsByFaviconID(ctx, faviconID); err != nil {
		return fail("Failed to delete favicon")
	}
	if err := s.repo.Delete(ctx, faviconID); err != nil {
		return fail("Failed to delete favicon")
	}

	return DeleteResult{ID: id, Success: true}
}

func (s *Service) deleteBlob(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.WithContext(ctx).Warnf("failed to delete blob %s: %v", key, err)
	}
}

func (s *Service) detail(ctx context.Context, fav *Favicon) (*DetailResponse, error) {
	assets, err := s.repo.AssetsByFaviconID(ctx, fav.ID)
	if err != nil {
		return nil, err
	}
	return newDetailResponse(fav, assets), nil
}

// SourceKey is the object-store key of a favicon's original image.
func SourceKey(id string) string {
	return "sources/" + id + "/original"
}

func newSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:slugLength]
}
