package favicon

import (
	"context"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rise-and-shine/iconreg/pg"
	"github.com/rise-and-shine/iconreg/sorter"
	"github.com/uptrace/bun"
)

// Repo persists favicons and their derived assets in Postgres.
type Repo struct {
	db *bun.DB
}

func NewRepo(db *bun.DB) *Repo {
	return &Repo{db: db}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS favicons (
	id                UUID PRIMARY KEY,
	slug              TEXT NOT NULL UNIQUE,
	title             TEXT,
	target_domain     TEXT,
	canonical_svg_key TEXT,
	source_type       TEXT NOT NULL,
	source_mime_type  TEXT,
	content_hash      TEXT,
	file_size         BIGINT,
	metadata          TEXT,
	is_published      BOOLEAN NOT NULL DEFAULT TRUE,
	generation_status TEXT NOT NULL,
	generation_error  TEXT,
	generated_at      TIMESTAMPTZ,
	has_steganography BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_favicons_created ON favicons (created_at);
CREATE INDEX IF NOT EXISTS idx_favicons_published ON favicons (is_published);
CREATE INDEX IF NOT EXISTS idx_favicons_content ON favicons (content_hash, file_size);
CREATE INDEX IF NOT EXISTS idx_favicons_domain ON favicons (target_domain);

CREATE TABLE IF NOT EXISTS favicon_assets (
	id          UUID PRIMARY KEY,
	favicon_id  UUID NOT NULL REFERENCES favicons (id) ON DELETE CASCADE,
	asset_type  TEXT NOT NULL,
	size        TEXT,
	format      TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	mime_type   TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_favicon_assets_favicon ON favicon_assets (favicon_id);
`

// InitSchema creates the tables and indexes if they do not exist yet.
func (r *Repo) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return errx.Wrap(err, errx.WithCode(CodeDatabaseError))
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Favicon, error) {
	fav := new(Favicon)

	q := r.db.NewSelect().Model(fav).Where("f.id = ?", id)
	if err := q.Scan(ctx); err != nil {
		if pg.IsNotFound(err) {
			return nil, errx.New(
				"Favicon not found",
				errx.WithType(errx.T_NotFound),
				errx.WithCode(CodeFaviconNotFound),
				errx.WithDetails(errx.D{"id": id.String()}),
			)
		}
		return nil, wrapDBError(err, q)
	}

	return fav, nil
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*Favicon, error) {
	fav := new(Favicon)

	q := r.db.NewSelect().Model(fav).Where("f.slug = ?", slug)
	if err := q.Scan(ctx); err != nil {
		if pg.IsNotFound(err) {
			return nil, errx.New(
				"Favicon not found",
				errx.WithType(errx.T_NotFound),
				errx.WithCode(CodeFaviconNotFound),
				errx.WithDetails(errx.D{"slug": slug}),
			)
		}
		return nil, wrapDBError(err, q)
	}

	return fav, nil
}

// FindDuplicate looks up a favicon with the same content fingerprint.
// It returns (nil, nil) when no duplicate exists.
func (r *Repo) FindDuplicate(ctx context.Context, contentHash string, fileSize int64) (*Favicon, error) {
	fav := new(Favicon)

	q := r.db.NewSelect().
		Model(fav).
		Where("f.content_hash = ?", contentHash).
		Where("f.file_size = ?", fileSize).
		Limit(1)
	if err := q.Scan(ctx); err != nil {
		if pg.IsNotFound(err) {
			return nil, nil
		}
		return nil, wrapDBError(err, q)
	}

	return fav, nil
}

func (r *Repo) Insert(ctx context.Context, fav *Favicon) error {
	q := r.db.NewInsert().Model(fav)
	if _, err := q.Exec(ctx); err != nil {
		return wrapDBError(err, q)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, fav *Favicon) error {
	q := r.db.NewUpdate().Model(fav).WherePK()
	if _, err := q.Exec(ctx); err != nil {
		return wrapDBError(err, q)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.db.NewDelete().Model((*Favicon)(nil)).Where("id = ?", id)
	if _, err := q.Exec(ctx); err != nil {
		return wrapDBError(err, q)
	}
	return nil
}

// ListPublished returns one page of published favicons plus the total count.
func (r *Repo) ListPublished(ctx context.Context, sort sorter.Opt, limit, offset int) ([]Favicon, int64, error) {
	var items []Favicon

	q := r.db.NewSelect().
		Model(&items).
		Where("f.is_published = TRUE").
		OrderExpr(sort.ToSQL()).
		Limit(limit).
		Offset(offset)

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, wrapDBError(err, q)
	}

	return items, int64(total), nil
}

func (r *Repo) AssetsByFaviconID(ctx context.Context, faviconID uuid.UUID) ([]Asset, error) {
	var assets []Asset

	q := r.db.NewSelect().
		Model(&assets).
		Where("fa.favicon_id = ?", faviconID).
		Order("fa.created_at ASC")
	if err := q.Scan(ctx); err != nil {
		return nil, wrapDBError(err, q)
	}

	return assets, nil
}

func (r *Repo) InsertAsset(ctx context.Context, asset *Asset) error {
	q := r.db.NewInsert().Model(asset)
	if _, err := q.Exec(ctx); err != nil {
		return wrapDBError(err, q)
	}
	return nil
}

func (r *Repo) DeleteAssetsByFaviconID(ctx context.Context, faviconID uuid.UUID) error {
	q := r.db.NewDelete().Model((*Asset)(nil)).Where("favicon_id = ?", faviconID)
	if _, err := q.Exec(ctx); err != nil {
		return wrapDBError(err, q)
	}
	return nil
}

func wrapDBError(err error, query interface{ String() string }) error {
	return errx.Wrap(
		err,
		errx.WithCode(CodeDatabaseError),
		errx.WithDetails(pg.ErrorDetails(err, query)),
	)
}
