package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openscholar/paper-search-service/internal/domain"
	"github.com/openscholar/paper-search-service/internal/observability"
	"github.com/openscholar/paper-search-service/internal/openalex"
)

// Request page size bounds. Values outside this range, or unparsable ones,
// fall back to the default rather than failing the request.
const (
	defaultPageSize = 25
	maxPageSize     = 50
)

// apiRootHandler handles GET /api/ and returns service metadata.
func (s *Server) apiRootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "paper-search-service",
		"endpoints": map[string]string{
			"search":  "/api/search/?q=<query>&mode=<relevance|open_access|best_match>&per_page=<1-50>",
			"authors": "/api/authors/?q=<name>&per_page=<1-50>",
			"queries": "/api/queries/?limit=<n>",
		},
	})
}

// searchHandler handles GET /api/search/. It validates the request, queries
// the provider, normalizes the results, and records the query for analytics.
// Analytics failures never fail the search.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeErrorCode(w, http.StatusBadRequest, "query parameter 'q' is required", "missing_query")
		return
	}

	// Carry the query on the context so downstream provider logs can
	// correlate back to the search that triggered them.
	ctx := observability.WithQuery(r.Context(), query)

	mode := domain.RankingMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModeRelevance
	}
	if !mode.Valid() {
		writeErrorCode(w, http.StatusBadRequest,
			"invalid mode: must be one of relevance, open_access, best_match", "invalid_mode")
		return
	}

	params := openalex.DefaultSearchParams(query)
	params.PerPage = parsePageSize(r.URL.Query().Get("per_page"))
	params.OAStatus = r.URL.Query().Get("oa_status")
	if mode == domain.ModeOpenAccess {
		params.OpenAccessOnly = true
	}

	logger := observability.WithSearchContext(s.logger, query, string(mode))

	start := time.Now()
	works, err := s.searcher.SearchWorks(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("search failed")
		s.metrics.RecordSearchFailed(string(mode), errorType(err))
		writeDomainError(w, err)
		return
	}

	papers := make([]domain.Paper, 0, len(works))
	for i := range works {
		papers = append(papers, openalex.NormalizeWork(&works[i]))
	}

	// Analytics are best effort: a failed write is logged and counted but
	// the search response is returned regardless.
	entry := &domain.QueryLogEntry{
		QueryText:   query,
		RankingMode: mode,
		ResultCount: len(papers),
	}
	logErr := s.queryLogs.Insert(ctx, entry)
	if logErr != nil {
		logger.Warn().Err(logErr).Msg("failed to record query log")
	}
	s.metrics.RecordQueryLogWrite(logErr)
	s.metrics.RecordSearch(string(mode), len(papers), time.Since(start).Seconds())

	logger.Info().Int("count", len(papers)).Dur("duration", time.Since(start)).Msg("search completed")

	writeJSON(w, http.StatusOK, searchResponse{
		Papers: papers,
		Count:  len(papers),
		Mode:   string(mode),
		Query:  query,
	})
}

// searchAuthorsHandler handles GET /api/authors/.
func (s *Server) searchAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeErrorCode(w, http.StatusBadRequest, "query parameter 'q' is required", "missing_query")
		return
	}

	ctx := observability.WithQuery(r.Context(), query)

	params := openalex.DefaultAuthorSearchParams(query)
	params.PerPage = parsePageSize(r.URL.Query().Get("per_page"))

	records, err := s.searcher.SearchAuthors(ctx, params)
	if err != nil {
		s.logger.Error().Str("query", query).Err(err).Msg("author search failed")
		writeDomainError(w, err)
		return
	}

	authors := make([]authorSummaryResponse, 0, len(records))
	for _, record := range records {
		authors = append(authors, authorRecordToResponse(record))
	}

	writeJSON(w, http.StatusOK, searchAuthorsResponse{
		Authors: authors,
		Count:   len(authors),
		Query:   query,
	})
}

// listQueriesHandler handles GET /api/queries/ and returns the most recent
// logged searches, newest first.
func (s *Server) listQueriesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := s.queryLogs.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list query logs")
		writeError(w, http.StatusInternalServerError, "failed to list queries")
		return
	}

	queries := make([]queryLogResponse, 0, len(entries))
	for _, entry := range entries {
		queries = append(queries, queryLogToResponse(entry))
	}

	writeJSON(w, http.StatusOK, listQueriesResponse{
		Queries: queries,
		Count:   len(queries),
	})
}

// parsePageSize parses a per_page parameter, falling back to the default
// when the value is missing, unparsable, or outside [1, maxPageSize].
func parsePageSize(raw string) int {
	if raw == "" {
		return defaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxPageSize {
		return defaultPageSize
	}
	return n
}

// errorType buckets an error for the failure metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "provider"
	default:
		return "internal"
	}
}
