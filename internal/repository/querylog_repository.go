package repository

import (
	"context"

	"github.com/openscholar/paper-search-service/internal/domain"
)

// QueryLogRepository manages the persistence of search query analytics.
type QueryLogRepository interface {
	// Insert records a single executed search. The entry's ID and
	// CreatedAt are assigned when unset; query text longer than the
	// column limit is truncated, never rejected.
	Insert(ctx context.Context, entry *domain.QueryLogEntry) error

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}
