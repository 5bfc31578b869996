package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	dsn := buildDSN(DatabaseConfig{
		Host:     "db.internal",
		Port:     "3306",
		User:     "erp",
		Password: "secret",
		DBName:   "schoolhub_erp",
	})

	assert.Contains(t, dsn, "erp:secret@tcp(db.internal:3306)/schoolhub_erp")
	assert.Contains(t, dsn, "parseTime=True")

	// matched-rows semantics: a no-op UPDATE must not read as a missing row
	assert.Contains(t, dsn, "clientFoundRows=true")
}
