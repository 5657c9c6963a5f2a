package backend

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// Local reads files directly off the machine's filesystem.
type Local struct{}

func (Local) Name() string { return "local" }

func (Local) Fetch(_ context.Context, pathOrURL string) ([]byte, error) {
	return os.ReadFile(pathOrURL)
}

// List walks folderPath recursively and returns every matching file's path
// relative to folderPath.
func (Local) List(_ context.Context, folderPath string, extensions []string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(folderPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !hasSupportedExtension(path, extensions) {
			return nil
		}
		rel, err := filepath.Rel(folderPath, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
