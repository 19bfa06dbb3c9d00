package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesService resolves static product image files served alongside the API.
type FilesService struct {
	staticDir string
}

// NewFilesService creates a new FilesService rooted at staticDir.
func NewFilesService(staticDir string) *FilesService {
	return &FilesService{
		staticDir: staticDir,
	}
}

// StaticProductImage resolves an image name under the static products
// directory and returns its path, or reports not-found when the file does
// not exist. Only the base name of the input is used, so a caller cannot
// escape the static directory.
func (s *FilesService) StaticProductImage(imageName string) (string, error) {
	path := filepath.Join(s.staticDir, filepath.Base(imageName))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no product image found with name %s", imageName)
	}
	return path, nil
}
