package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRebind verifies placeholder numbering for postgres only.
func TestRebind(t *testing.T) {
	q := `INSERT INTO runs (id, name) VALUES (?, ?)`
	assert.Equal(t, q, (&Store{driver: DriverSQLite}).rebind(q))
	assert.Equal(t, `INSERT INTO runs (id, name) VALUES ($1, $2)`, (&Store{driver: DriverPostgres}).rebind(q))
}
