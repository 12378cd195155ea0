package domain

import (
	"time"

	"github.com/google/uuid"
)

// RankingMode selects which filter toggles a search applies. Modes do not
// re-order results locally; OpenAlex returns relevance-sorted results.
type RankingMode string

// Supported ranking modes.
const (
	ModeRelevance  RankingMode = "relevance"
	ModeOpenAccess RankingMode = "open_access"
	ModeBestMatch  RankingMode = "best_match"
)

// Valid reports whether m is one of the supported ranking modes.
func (m RankingMode) Valid() bool {
	switch m {
	case ModeRelevance, ModeOpenAccess, ModeBestMatch:
		return true
	}
	return false
}

// MaxQueryTextLength is the longest query text stored in a log entry.
// Longer queries are truncated at write time.
const MaxQueryTextLength = 500

// QueryLogEntry records one completed search for analytics. Entries are
// created once per request and never mutated or deleted by this service.
type QueryLogEntry struct {
	ID          uuid.UUID   `json:"id"`
	QueryText   string      `json:"query_text"`
	RankingMode RankingMode `json:"ranking_mode"`
	ResultCount int         `json:"result_count"`
	// CreatedAt is assigned at write time and immutable thereafter.
	CreatedAt time.Time `json:"created_at"`
}
