// Package backend abstracts over the transports an image path can resolve
// through: the local filesystem, SSH/SCP, plain HTTP, Azure Blob Storage,
// and Google Cloud Storage.
package backend

import "context"

// Backend fetches the raw bytes behind a path or URL. Implementations must
// be safe for concurrent use, since the cache calls Fetch from multiple
// worker goroutines at once.
type Backend interface {
	// Name identifies the backend in logs and error messages.
	Name() string
	// Fetch returns the complete contents addressed by pathOrURL.
	Fetch(ctx context.Context, pathOrURL string) ([]byte, error)
}
