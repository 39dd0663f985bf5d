package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_Array(t *testing.T) {
	path := writeFile(t, `[
		{"id": "a", "title": "Alpha", "kind": "show", "year": 2001},
		{"title": "Untitled"}
	]`)
	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, KindShow, got[0].Kind)
	assert.Equal(t, "file-00001", got[1].ID)
	assert.Equal(t, KindMovie, got[1].Kind)
}

func TestLoadFile_PageObject(t *testing.T) {
	path := writeFile(t, `  {"items": [{"id": "x", "title": "X"}], "page": 1, "total_pages": 1}`)
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeFile(t, `[{"id": 1`))
	assert.ErrorContains(t, err, "decode catalog")
}

func TestSample_Deterministic(t *testing.T) {
	a := Sample(200)
	b := Sample(200)
	require.Len(t, a, 200)
	assert.Equal(t, a, b)

	seen := map[string]bool{}
	for _, it := range a {
		assert.False(t, seen[it.ID])
		seen[it.ID] = true
		assert.NotEmpty(t, it.Title)
		assert.Len(t, it.Genres, 2)
		assert.GreaterOrEqual(t, it.Rating, 1.0)
		assert.LessOrEqual(t, it.Rating, 10.0)
		if it.Kind == KindShow {
			assert.Positive(t, it.Seasons)
		} else {
			assert.Positive(t, it.Runtime)
		}
	}
}

func TestSample_Empty(t *testing.T) {
	assert.Empty(t, Sample(0))
	assert.Empty(t, Sample(-3))
}
