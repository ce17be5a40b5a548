package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_OrdenLexicografico(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestInit_LineasConservanHistorialAlBorrarProducto(t *testing.T) {
	sql, err := files.ReadFile("001_init.sql")
	require.NoError(t, err)
	s := string(sql)
	assert.Contains(t, s, "REFERENCES products (id) ON DELETE SET NULL")
	assert.True(t, strings.Contains(s, "users_email_lower_idx"))
}
