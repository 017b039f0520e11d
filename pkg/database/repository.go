package database

import (
	"context"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/rs/zerolog/log"
)

const defaultListLimit = 100

type ListOptions struct {
	Limit int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return defaultListLimit
	}

	return o.Limit
}

// Repository stores one kind of record. Records are only ever inserted and listed, newest first.
type Repository[T any] interface {
	Insert(ctx context.Context, record *T) (string, error)
	List(ctx context.Context, options ListOptions) ([]*T, error)
}

// Recordable ties a value type to its pointer implementing ctdf.Record.
type Recordable[T any] interface {
	*T
	ctdf.Record
}

// DocumentIndexer receives a copy of every inserted record.
type DocumentIndexer interface {
	Index(ctx context.Context, kind string, id string, document any) error
}

type indexedRepository[T any, PT Recordable[T]] struct {
	Repository[T]
	indexer DocumentIndexer
}

// WithIndexer indexes records after they are stored. Indexing failures are logged only, the
// store stays the source of truth.
func WithIndexer[T any, PT Recordable[T]](repository Repository[T], indexer DocumentIndexer) Repository[T] {
	if indexer == nil {
		return repository
	}

	return &indexedRepository[T, PT]{Repository: repository, indexer: indexer}
}

func (r *indexedRepository[T, PT]) Insert(ctx context.Context, record *T) (string, error) {
	id, err := r.Repository.Insert(ctx, record)
	if err != nil {
		return id, err
	}

	kind := PT(record).RecordKind()
	if err := r.indexer.Index(ctx, kind, id, record); err != nil {
		log.Error().Err(err).Str("kind", kind).Str("id", id).Msg("Failed to index record")
	}

	return id, nil
}
