package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brightwell/svccat/internal/catalog"
)

// ResolveCatalogRoot returns the directory that catalogs/services.yaml is
// searched from. An explicit root must exist.
func ResolveCatalogRoot(root string) (string, error) {
	if root != "" {
		info, err := os.Stat(root)
		if err != nil {
			return "", fmt.Errorf("catalog root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("catalog root %s is not a directory", root)
		}
		return root, nil
	}
	if _, err := os.Stat(filepath.Join("catalogs", catalog.ServicesFileName)); err == nil {
		return ".", nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
