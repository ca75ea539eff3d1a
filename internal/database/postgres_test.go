package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"001_initial_schema.sql", 1},
		{"012_add_index.sql", 12},
		{"embed.go", 0},
		{"initial.sql", 0},
		{"abc_initial.sql", 0},
		{"000_noop.sql", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, migrationVersion(tc.name))
		})
	}
}
