package repository

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/openscholar/paper-search-service/internal/domain"
)

// Compile-time interface verification.
var _ QueryLogRepository = (*PgQueryLogRepository)(nil)

// PgQueryLogRepository is a PostgreSQL implementation of QueryLogRepository.
type PgQueryLogRepository struct {
	db DBTX
}

// NewPgQueryLogRepository creates a new PostgreSQL query log repository.
func NewPgQueryLogRepository(db DBTX) *PgQueryLogRepository {
	return &PgQueryLogRepository{db: db}
}

// Insert records a single executed search.
func (r *PgQueryLogRepository) Insert(ctx context.Context, entry *domain.QueryLogEntry) error {
	if entry == nil {
		return domain.NewValidationError("entry", "entry cannot be nil")
	}
	if !entry.RankingMode.Valid() {
		return domain.NewValidationError("ranking_mode", "must be one of relevance, open_access, best_match")
	}
	if entry.ResultCount < 0 {
		return domain.NewValidationError("result_count", "must not be negative")
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	queryText := truncateQueryText(entry.QueryText, domain.MaxQueryTextLength)

	query := `
		INSERT INTO query_logs (id, query_text, ranking_mode, result_count, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		queryText,
		string(entry.RankingMode),
		entry.ResultCount,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert query log: %w", err)
	}

	return nil
}

// truncateQueryText cuts text down to max characters. The column limit
// counts characters, not bytes, so the cut must land on a rune boundary.
func truncateQueryText(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

// ListRecent returns up to limit entries ordered newest first.
func (r *PgQueryLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	limit = applyListLimit(limit)

	query := `
		SELECT id, query_text, ranking_mode, result_count, created_at
		FROM query_logs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list query logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.QueryLogEntry, 0, limit)
	for rows.Next() {
		var entry domain.QueryLogEntry
		var mode string
		if err := rows.Scan(&entry.ID, &entry.QueryText, &mode, &entry.ResultCount, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query log: %w", err)
		}
		entry.RankingMode = domain.RankingMode(mode)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query logs: %w", err)
	}

	return entries, nil
}
