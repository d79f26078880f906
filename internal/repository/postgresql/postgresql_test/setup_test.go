package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// requireDB connects to TEST_DATABASE_URL, applies the schema and empties
// the tables. Tests are skipped when the variable is unset.
func requireDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		ctx := context.Background()
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn)
		if testDBErr != nil {
			return
		}
		schema, err := os.ReadFile("../../../../migrations/001_init.sql")
		if err != nil {
			testDBErr = err
			return
		}
		_, testDBErr = testDB.Exec(ctx, string(schema))
	})
	require.NoError(t, testDBErr)

	_, err := testDB.Exec(context.Background(), "TRUNCATE TABLE punches, requests, employee_profiles RESTART IDENTITY")
	require.NoError(t, err)

	return testDB
}

func strPtr(s string) *string { return &s }
