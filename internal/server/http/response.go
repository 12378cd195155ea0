package httpserver

import (
	"time"

	"github.com/openscholar/paper-search-service/internal/domain"
	"github.com/openscholar/paper-search-service/internal/openalex"
)

// Response types for JSON serialization.

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type searchResponse struct {
	Papers []domain.Paper `json:"papers"`
	Count  int            `json:"count"`
	Mode   string         `json:"mode"`
	Query  string         `json:"query"`
}

type authorSummaryResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ORCID        string   `json:"orcid"`
	WorksCount   int      `json:"works_count"`
	CitedByCount int      `json:"cited_by_count"`
	Institutions []string `json:"institutions"`
}

type searchAuthorsResponse struct {
	Authors []authorSummaryResponse `json:"authors"`
	Count   int                     `json:"count"`
	Query   string                  `json:"query"`
}

type queryLogResponse struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Mode        string    `json:"mode"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type listQueriesResponse struct {
	Queries []queryLogResponse `json:"queries"`
	Count   int                `json:"count"`
}

// Converter functions

func authorRecordToResponse(a openalex.AuthorRecord) authorSummaryResponse {
	institutions := make([]string, 0, len(a.LastKnownInstitutions))
	for _, inst := range a.LastKnownInstitutions {
		if inst.DisplayName != "" {
			institutions = append(institutions, inst.DisplayName)
		}
	}
	return authorSummaryResponse{
		ID:           a.ID,
		Name:         a.DisplayName,
		ORCID:        a.Orcid,
		WorksCount:   a.WorksCount,
		CitedByCount: a.CitedByCount,
		Institutions: institutions,
	}
}

func queryLogToResponse(e domain.QueryLogEntry) queryLogResponse {
	return queryLogResponse{
		ID:          e.ID.String(),
		Query:       e.QueryText,
		Mode:        string(e.RankingMode),
		ResultCount: e.ResultCount,
		CreatedAt:   e.CreatedAt,
	}
}
