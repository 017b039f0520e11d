package database

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepository[T any, PT Recordable[T]] struct {
	mutex   sync.RWMutex
	records []T
}

func NewMemoryRepository[T any, PT Recordable[T]]() *MemoryRepository[T, PT] {
	return &MemoryRepository[T, PT]{}
}

func (r *MemoryRepository[T, PT]) Insert(ctx context.Context, record *T) (string, error) {
	meta := PT(record).Meta()
	meta.ID = uuid.NewString()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.records = append(r.records, *record)

	return meta.ID, nil
}

func (r *MemoryRepository[T, PT]) List(ctx context.Context, options ListOptions) ([]*T, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	limit := options.limit()
	records := make([]*T, 0, min(limit, len(r.records)))

	for i := len(r.records) - 1; i >= 0 && len(records) < limit; i-- {
		record := r.records[i]
		records = append(records, &record)
	}

	return records, nil
}
