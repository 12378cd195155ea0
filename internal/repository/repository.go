// Package repository provides data access interfaces and implementations
// for the Paper Search Service.
//
// Repository interfaces abstract persistence from the HTTP layer. The
// PostgreSQL implementations accept the DBTX interface so they work with
// both a connection pool and a transaction, and can be tested against
// pgxmock without a live database.
//
// All methods return domain-specific errors from the domain package and
// wrap database errors with context using fmt.Errorf with the %w verb.
package repository

import (
	"github.com/openscholar/paper-search-service/internal/database"
)

// DBTX is the database interface supporting both pool and transaction
// contexts. Repository constructors accept DBTX rather than a concrete
// pool, which also makes them easy to test with mock implementations.
type DBTX = database.DBTX

// Listing pagination defaults and limits.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// applyListLimit clamps a listing limit to [1, maxListLimit], falling back
// to the default when the caller passes zero or a negative value.
func applyListLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
