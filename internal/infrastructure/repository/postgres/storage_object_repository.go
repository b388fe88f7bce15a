package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NachoSamo/SamoScore/internal/domain/storage"
	qb "github.com/NachoSamo/SamoScore/internal/platform/querybuilder"
)

type storageObjectTableModel struct {
	Bucket      string    `db:"bucket"`
	Path        string    `db:"path"`
	ContentType string    `db:"content_type"`
	Data        []byte    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// StorageObjectRepository keeps small blobs such as avatars in Postgres.
type StorageObjectRepository struct {
	db *sqlx.DB
}

func NewStorageObjectRepository(db *sqlx.DB) *StorageObjectRepository {
	return &StorageObjectRepository{db: db}
}

func (r *StorageObjectRepository) Put(ctx context.Context, obj storage.Object) error {
	now := time.Now().UTC()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = now
	}

	query, args, err := qb.UpsertModel("storage_objects", storageObjectTableModel{
		Bucket:      obj.Bucket,
		Path:        obj.Path,
		ContentType: obj.ContentType,
		Data:        obj.Data,
		CreatedAt:   obj.CreatedAt,
		UpdatedAt:   obj.UpdatedAt,
	}, []string{"bucket", "path"})
	if err != nil {
		return fmt.Errorf("build upsert storage object query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert storage object: %w", err)
	}
	return nil
}

func (r *StorageObjectRepository) Get(ctx context.Context, bucket, objectPath string) (storage.Object, bool, error) {
	query, args, err := qb.Select("*").From("storage_objects").
		Where(qb.Eq("bucket", bucket), qb.Eq("path", objectPath)).
		Limit(1).
		ToSQL()
	if err != nil {
		return storage.Object{}, false, fmt.Errorf("build get storage object query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *StorageObjectRepository) LatestByPrefix(ctx context.Context, bucket, prefix string) (storage.Object, bool, error) {
	query, args, err := qb.Select("*").From("storage_objects").
		Where(
			qb.Eq("bucket", bucket),
			qb.Expr("starts_with(path, ?)", prefix),
		).
		OrderBy("created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return storage.Object{}, false, fmt.Errorf("build latest storage object query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *StorageObjectRepository) getOne(ctx context.Context, query string, args []any) (storage.Object, bool, error) {
	var row storageObjectTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return storage.Object{}, false, nil
		}
		return storage.Object{}, false, fmt.Errorf("get storage object: %w", err)
	}

	return storage.Object{
		Bucket:      row.Bucket,
		Path:        row.Path,
		ContentType: row.ContentType,
		Data:        row.Data,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}
