package openapi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSpec = `openapi: 3.0.3
info:
  title: Users API
  version: "1.0"
paths: {}
components:
  schemas:
    User:
      type: object
      required: [id]
      properties:
        id:
          type: integer
        name:
          type: string
          nullable: false
`

func TestLoadData(t *testing.T) {
	doc, err := LoadData([]byte(userSpec), "users.yaml")
	require.NoError(t, err)
	require.NotNil(t, doc.Model)
	assert.Equal(t, "Users API", doc.Model.Info.Title)
	assert.Equal(t, "users.yaml", doc.Location)
}

func TestLoadDataJSON(t *testing.T) {
	data := `{"openapi": "3.0.3", "info": {"title": "J", "version": "1"}, "paths": {}}`
	doc, err := LoadData([]byte(data), "spec.json")
	require.NoError(t, err)
	assert.Equal(t, "J", doc.Model.Info.Title)
}

func TestLoadDataMissingVersion(t *testing.T) {
	_, err := LoadData([]byte("info:\n  title: X\n"), "no-version.yaml")
	require.Error(t, err)

	var specErr *SpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, ValidationError, specErr.Code)
	assert.Equal(t, "no-version.yaml", specErr.Location)
}

func TestLoadDataUnparseable(t *testing.T) {
	_, err := LoadData([]byte("{invalid"), "broken.yaml")
	require.Error(t, err)

	var specErr *SpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, ParseError, specErr.Code)
}

func TestRawSchema(t *testing.T) {
	doc, err := LoadData([]byte(userSpec), "users.yaml")
	require.NoError(t, err)

	raw := doc.RawSchema("User")
	require.NotNil(t, raw)

	props, ok := raw["properties"].(map[string]any)
	require.True(t, ok)
	name, ok := props["name"].(map[string]any)
	require.True(t, ok)

	// The raw mirror keeps the explicit nullable: false marker that the
	// typed model cannot distinguish from an absent one.
	v, present := name["nullable"]
	require.True(t, present)
	assert.Equal(t, false, v)

	assert.Nil(t, doc.RawSchema("Missing"))
}

func TestCacheLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userSpec), 0o644))

	cache, err := NewCache(4)
	require.NoError(t, err)

	first, err := cache.Load(path)
	require.NoError(t, err)
	second, err := cache.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheLoadMissingFile(t *testing.T) {
	cache, err := NewCache(4)
	require.NoError(t, err)

	_, err = cache.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var specErr *SpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, ParseError, specErr.Code)
}
