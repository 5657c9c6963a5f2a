package imgcache

import (
	"context"
	"time"

	"github.com/bertiqwerty/rvimage-sub001/internal/catalog"
	"github.com/bertiqwerty/rvimage-sub001/internal/imgcache/backend"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
	"github.com/bertiqwerty/rvimage-sub001/internal/rvlog"
)

// SupportedExtensions lists the image file extensions OpenFolder will list.
var SupportedExtensions = []string{
	".PNG", ".png", ".JPG", ".jpg", ".JPEG", ".jpeg", ".TIF", ".tif", ".TIFF", ".tiff",
}

// Loader is the single entry point the rest of the system reads images
// through: it owns a FileCache and knows how to rebuild it, with backoff,
// if the backend it talks to drops the connection.
type Loader struct {
	newCache          func() (*FileCache, error)
	cache             *FileCache
	nCacheRecreations int
	recreationDelay   time.Duration
}

// NewLoader builds a Loader around newCache, the constructor used both for
// the initial cache and for every recreation after a failure.
// nCacheRecreations bounds how many times ReadImage will rebuild the cache
// before giving up and returning the underlying error (SSH backends pass
// the configured reconnection-attempt count here; others typically pass 0).
func NewLoader(newCache func() (*FileCache, error), nCacheRecreations int) (*Loader, error) {
	cache, err := newCache()
	if err != nil {
		return nil, rverr.New(rverr.IO, "imgcache.NewLoader", err)
	}
	return &Loader{
		newCache:          newCache,
		cache:             cache,
		nCacheRecreations: nCacheRecreations,
		recreationDelay:   500 * time.Millisecond,
	}, nil
}

// ReadImage loads the file at selectedIdx, recreating the cache (with a
// short backoff) up to nCacheRecreations times if loading fails. This is
// the mechanism that rides out a dropped SSH/HTTP connection without the
// caller needing to know the cache failed at all.
func (l *Loader) ReadImage(ctx context.Context, selectedIdx int, absFilePaths []string) (string, error) {
	path, err := l.cache.LoadFromCache(ctx, selectedIdx, absFilePaths)
	counter := 0
	for err != nil {
		if counter == l.nCacheRecreations {
			rvlog.L().Sugar().Infof("max cache recreations (=%d) reached", counter)
			return path, rverr.New(rverr.IO, "imgcache.Loader.ReadImage", err)
		}
		rvlog.L().Sugar().Infof("recreating cache (%d/%d), %v", counter+1, l.nCacheRecreations, err)
		time.Sleep(l.recreationDelay)
		l.cache.Close()
		newCache, recreateErr := l.newCache()
		if recreateErr != nil {
			return "", rverr.New(rverr.IO, "imgcache.Loader.ReadImage", recreateErr)
		}
		l.cache = newCache
		path, err = l.cache.LoadFromCache(ctx, selectedIdx, absFilePaths)
		counter++
	}
	return path, nil
}

// OpenFolder lists every supported image under absFolderPath through b and
// returns it as a catalog ready for sorting and filtering.
func OpenFolder(ctx context.Context, b backend.Lister, absFolderPath string) (*catalog.Catalog, error) {
	const op = "imgcache.OpenFolder"
	relatives, err := b.List(ctx, absFolderPath, SupportedExtensions)
	if err != nil {
		return nil, rverr.New(rverr.IO, op, err)
	}
	pairs := make([]catalog.PathPair, len(relatives))
	for i, rel := range relatives {
		pairs[i] = catalog.PathPair{Relative: rel, Absolute: absFolderPath + "/" + rel}
	}
	return catalog.New(pairs, absFolderPath), nil
}

// Close releases the loader's current cache.
func (l *Loader) Close() { l.cache.Close() }
