package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The repository packages hard-code their column lists; the DDL here must
// provide every one of them or the app fails on its own schema.
func TestSchemaCoversRepositoryColumns(t *testing.T) {
	columnsByTable := map[string][]string{
		// internal/users/repository.go
		"users": {"id", "email", "password_hash", "role", "created_at", "updated_at"},
		// internal/restaurants/repository.go restaurantColumns,
		// plus the promotion columns internal/payments/repository.go writes
		"restaurants": {
			"id", "name", "address", "category_name", "cover_img", "owner_id",
			"is_promoted", "promoted_until", "created_at", "updated_at",
		},
		// internal/payments/repository.go
		"payments": {"id", "reference", "transaction_id", "user_id", "restaurant_id", "created_at"},
	}

	for table, columns := range columnsByTable {
		block := tableBlock(t, table)
		for _, column := range columns {
			require.Containsf(t, block, column, "table %s is missing column %s", table, column)
		}
	}
}

func TestSchemaDropsRenamedColumns(t *testing.T) {
	require.NotContains(t, schemaDDL, "cover_image")
	require.NotContains(t, tableBlock(t, "users"), "password ")
}

// tableBlock returns the CREATE TABLE statement for one table.
func tableBlock(t *testing.T, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schemaDDL, marker)
	require.GreaterOrEqual(t, start, 0, "no CREATE TABLE for %s", table)
	rest := schemaDDL[start:]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}
