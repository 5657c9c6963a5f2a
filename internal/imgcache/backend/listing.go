package backend

import "context"

// Lister is implemented by backends that can enumerate a folder's
// contents, used by Loader.OpenFolder to build the initial path catalog.
// Not every Backend needs to implement it: a bare HTTP reader backing a
// single known URL has nothing to list.
type Lister interface {
	// List returns every path under folderPath whose extension (case
	// sensitive, as stored) is one of extensions, relative to folderPath.
	List(ctx context.Context, folderPath string, extensions []string) ([]string, error)
}

func hasSupportedExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return true
		}
	}
	return len(extensions) == 0
}
