package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"002_books.sql": {Data: []byte("CREATE TABLE books();")},
		"001_init.sql":  {Data: []byte("CREATE TABLE grades();")},
		"README.md":     {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "001", migs[0].Version)
	assert.Equal(t, "001_init.sql", migs[0].Name)
	assert.Equal(t, "CREATE TABLE grades();", migs[0].SQL)
	assert.Equal(t, "002", migs[1].Version)
}

func TestLoad_RejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 2;")},
	}

	_, err := Load(fsys)
	assert.ErrorContains(t, err, "share version 001")
}
