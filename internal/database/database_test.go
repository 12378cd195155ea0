package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// mockDBTX verifies at compile time that the DBTX interface carries the
// method set repositories depend on.
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

func (m *mockDBTX) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func TestDBTX_Interface(t *testing.T) {
	var _ DBTX = (*mockDBTX)(nil)
	var _ DBTX = (*DB)(nil)
}

func TestHealthStatus_Fields(t *testing.T) {
	health := HealthStatus{
		Status:     "healthy",
		TotalConns: 5,
		IdleConns:  3,
		MaxConns:   10,
	}

	assert.Equal(t, "healthy", health.Status)
	assert.Empty(t, health.Error)
	assert.Equal(t, int32(5), health.TotalConns)
}
