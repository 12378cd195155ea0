// Package observability provides logging and metrics support for the
// paper search service.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("query", q).Msg("search started")
//
// Add search context to a logger:
//
//	logger = observability.WithSearchContext(logger, query, mode)
//
// # Metrics
//
// Initialize metrics once at startup:
//
//	metrics := observability.NewMetrics("papersearch")
//
// Record metrics:
//
//	metrics.RecordSearch("relevance", 25, 0.42)
//	metrics.RecordProviderRequest("works", 0.31, false)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - query: user's search query
//   - mode: ranking mode (relevance, open_access, best_match)
//   - provider: upstream metadata provider name
//   - endpoint: provider endpoint (works, authors)
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
