package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendDSNParam(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"url without query", "postgres://u:p@localhost:54322/postgres", "postgres://u:p@localhost:54322/postgres?sslmode=disable"},
		{"url with query", "postgresql://u:p@localhost/db?application_name=api", "postgresql://u:p@localhost/db?application_name=api&sslmode=disable"},
		{"keyword value", "host=localhost port=5432 dbname=postgres", "host=localhost port=5432 dbname=postgres sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, appendDSNParam(tt.dsn, "sslmode=disable"))
		})
	}
}

func TestMigrationNamesAreOrdered(t *testing.T) {
	req := require.New(t)

	names, err := migrationNames()

	req.NoError(err)
	req.NotEmpty(names)
	req.Equal("0001_credit_ledger.sql", names[0])
	req.IsIncreasing(names)
}
