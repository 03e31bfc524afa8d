package favicon

import (
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rise-and-shine/iconreg/pg"
	"github.com/uptrace/bun"
)

// SourceType describes how the original image entered the registry.
type SourceType string

const (
	SourceUpload SourceType = "UPLOAD"
	SourceCanvas SourceType = "CANVAS"
)

// GenerationStatus tracks the derived-asset pipeline state of a favicon.
// The ingestion pipeline only ever writes PENDING; the generation worker
// owns the transitions to SUCCESS and FAILED.
type GenerationStatus string

const (
	GenerationPending GenerationStatus = "PENDING"
	GenerationSuccess GenerationStatus = "SUCCESS"
	GenerationFailed  GenerationStatus = "FAILED"
)

// AssetType identifies the format of a derived asset.
type AssetType string

const (
	AssetICO AssetType = "ICO"
	AssetPNG AssetType = "PNG"
	AssetSVG AssetType = "SVG"
)

// The enum types scan strictly: a stored value outside the closed set is
// treated as data corruption, not silently passed through.

func scanEnum[T ~string](dst *T, src any, valid []T, column string) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return errx.New(
			"Unexpected enum column type",
			errx.WithCode(CodeCorruptEnumValue),
			errx.WithDetails(errx.D{"column": column}),
		)
	}

	for _, v := range valid {
		if s == string(v) {
			*dst = T(s)
			return nil
		}
	}

	return errx.New(
		"Corrupt enum value in database",
		errx.WithCode(CodeCorruptEnumValue),
		errx.WithDetails(errx.D{"column": column, "value": s}),
	)
}

var (
	_ sql.Scanner   = (*SourceType)(nil)
	_ driver.Valuer = SourceType("")
	_ sql.Scanner   = (*GenerationStatus)(nil)
	_ driver.Valuer = GenerationStatus("")
	_ sql.Scanner   = (*AssetType)(nil)
	_ driver.Valuer = AssetType("")
)

func (t *SourceType) Scan(src any) error {
	return scanEnum(t, src, []SourceType{SourceUpload, SourceCanvas}, "source_type")
}

func (t SourceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (s *GenerationStatus) Scan(src any) error {
	return scanEnum(s, src,
		[]GenerationStatus{GenerationPending, GenerationSuccess, GenerationFailed},
		"generation_status",
	)
}

func (s GenerationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (t *AssetType) Scan(src any) error {
	return scanEnum(t, src, []AssetType{AssetICO, AssetPNG, AssetSVG}, "asset_type")
}

func (t AssetType) Value() (driver.Value, error) {
	return string(t), nil
}

// ParseAssetType validates an asset type supplied from outside the database.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case AssetICO, AssetPNG, AssetSVG:
		return AssetType(s), nil
	default:
		return "", errx.New(
			"Unknown asset type",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeUnknownAssetType),
			errx.WithDetails(errx.D{"value": s}),
		)
	}
}

// pgBaseModel lets pg.BaseModel be embedded alongside bun.BaseModel:
// both types are named BaseModel, so embedding them directly collides.
type pgBaseModel = pg.BaseModel

// Favicon is a registered favicon and its ingestion metadata.
// ContentHash together with FileSize forms the deduplication key.
type Favicon struct {
	bun.BaseModel `bun:"table:favicons,alias:f"`

	ID               uuid.UUID        `bun:"id,pk,type:uuid"`
	Slug             string           `bun:"slug,notnull"`
	Title            *string          `bun:"title"`
	TargetDomain     *string          `bun:"target_domain"`
	CanonicalSvgKey  *string          `bun:"canonical_svg_key"`
	SourceType       SourceType       `bun:"source_type,notnull"`
	SourceMimeType   *string          `bun:"source_mime_type"`
	ContentHash      *string          `bun:"content_hash"`
	FileSize         *int64           `bun:"file_size"`
	Metadata         *string          `bun:"metadata"`
	IsPublished      bool             `bun:"is_published,notnull"`
	GenerationStatus GenerationStatus `bun:"generation_status,notnull"`
	GenerationError  *string          `bun:"generation_error"`
	GeneratedAt      *time.Time       `bun:"generated_at"`
	HasSteganography bool             `bun:"has_steganography,notnull"`

	pgBaseModel
}

// Asset is a derived artifact (ICO, PNG, SVG) produced for a favicon.
type Asset struct {
	bun.BaseModel `bun:"table:favicon_assets,alias:fa"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	FaviconID  uuid.UUID `bun:"favicon_id,notnull,type:uuid"`
	AssetType  AssetType `bun:"asset_type,notnull"`
	Size       *string   `bun:"size"`
	Format     string    `bun:"format,notnull"`
	StorageKey string    `bun:"storage_key,notnull"`
	MimeType   string    `bun:"mime_type,notnull"`

	pgBaseModel
}
