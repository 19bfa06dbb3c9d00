package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestFilesService_StaticProductImage(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "shirt.jpg")
	assert.NoError(t, os.WriteFile(imagePath, []byte("jpeg"), 0o644))

	files := services.NewFilesService(dir)

	path, err := files.StaticProductImage("shirt.jpg")
	assert.NoError(t, err)
	assert.Equal(t, imagePath, path)

	_, err = files.StaticProductImage("missing.jpg")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.jpg")

	// Path traversal is confined to the static directory.
	_, err = files.StaticProductImage("../shirt.jpg")
	assert.NoError(t, err)
}
