package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/storage"
)

type StorageObjectRepository struct {
	mu    sync.RWMutex
	items map[string]storage.Object
}

func NewStorageObjectRepository() *StorageObjectRepository {
	return &StorageObjectRepository{items: make(map[string]storage.Object)}
}

func (r *StorageObjectRepository) Put(_ context.Context, obj storage.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = now
	}
	obj.Data = append([]byte(nil), obj.Data...)
	r.items[objectKey(obj.Bucket, obj.Path)] = obj
	return nil
}

func (r *StorageObjectRepository) Get(_ context.Context, bucket, objectPath string) (storage.Object, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.items[objectKey(bucket, objectPath)]
	return obj, ok, nil
}

func (r *StorageObjectRepository) LatestByPrefix(_ context.Context, bucket, prefix string) (storage.Object, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest storage.Object
		found  bool
	)
	for _, obj := range r.items {
		if obj.Bucket != bucket || !strings.HasPrefix(obj.Path, prefix) {
			continue
		}
		if !found || obj.CreatedAt.After(latest.CreatedAt) {
			latest, found = obj, true
		}
	}
	return latest, found, nil
}

func objectKey(bucket, objectPath string) string {
	return bucket + "/" + objectPath
}
