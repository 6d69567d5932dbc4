package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// depend on narrow subsets, never on Store itself.
type Store interface {
	Pinger
	HashStore
	IndexManager
	Searcher
	Aggregator
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides FT.SEARCH over an index.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
}

// Aggregator provides FT.AGGREGATE pipelines over an index.
type Aggregator interface {
	Aggregate(ctx context.Context, q *AggregateQuery) ([]map[string]string, error)
}
