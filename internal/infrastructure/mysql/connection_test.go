package mysql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakerydash/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:            "db.internal",
		Port:            3307,
		User:            "baker",
		Password:        "p@ss",
		Name:            "bakerydash",
		ConnMaxLifetime: time.Minute,
	})

	assert.True(t, strings.HasPrefix(dsn, "baker:p@ss@tcp(db.internal:3307)/bakerydash"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestSchema(t *testing.T) {
	statements, err := Schema()
	require.NoError(t, err)
	require.Len(t, statements, 5)

	assert.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS Orders")
	assert.Contains(t, statements[1], "CREATE TABLE IF NOT EXISTS OrderItems")
	assert.Contains(t, statements[4], "CREATE TABLE IF NOT EXISTS AnnouncementComments")
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("DROP TABLE a;\n\n  DROP TABLE b ;\n")
	assert.Equal(t, []string{"DROP TABLE a", "DROP TABLE b"}, got)
	assert.Empty(t, splitStatements("   "))
}
