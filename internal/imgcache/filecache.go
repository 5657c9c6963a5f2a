package imgcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bertiqwerty/rvimage-sub001/internal/imgcache/backend"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// FileCacheConfig sizes a FileCache's prefetch window and worker pool.
type FileCacheConfig struct {
	NPrevImages int
	NNextImages int
	NThreads    int
	TmpDir      string
}

// DefaultFileCacheConfig mirrors the window the original cache opens
// around the selected image (2 behind, 8 ahead) over two worker threads.
func DefaultFileCacheConfig(tmpDir string) FileCacheConfig {
	return FileCacheConfig{NPrevImages: 2, NNextImages: 8, NThreads: 2, TmpDir: tmpDir}
}

type cacheState int

const (
	stateRunning cacheState = iota
	stateOK
)

type cacheEntry struct {
	state cacheState
	jobID string
	path  string
}

// FileCache keeps a sliding window of files, centered on whichever file
// index was last requested, prefetched into TmpDir by backend fetches run
// on a priority worker pool. A file further from the selected index is
// fetched at lower priority, so scrolling quickly towards it still lets
// the pool reprioritize in flight via ThreadPoolQueued.UpdatePriority.
type FileCache struct {
	cfg     FileCacheConfig
	backend backend.Backend
	tpq     *ThreadPoolQueued

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewFileCache builds a FileCache that fetches through b, staging files
// under cfg.TmpDir.
func NewFileCache(cfg FileCacheConfig, b backend.Backend) (*FileCache, error) {
	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return nil, rverr.New(rverr.IO, "imgcache.NewFileCache", err)
	}
	return &FileCache{
		cfg:     cfg,
		backend: b,
		tpq:     NewThreadPoolQueued(cfg.NThreads),
		cache:   map[string]cacheEntry{},
	}, nil
}

func filenameInTmpDir(path, tmpDir string) string {
	return filepath.Join(tmpDir, filepath.Base(path))
}

// LoadFromCache ensures the window of files around selectedIdx is queued
// for prefetch, then blocks until the selected file itself is ready,
// returning the local path it was staged to.
func (fc *FileCache) LoadFromCache(ctx context.Context, selectedIdx int, files []string) (string, error) {
	const op = "imgcache.FileCache.LoadFromCache"
	if len(files) == 0 {
		return "", rverr.Newf(rverr.Invariant, op, "no files to read from")
	}
	start := selectedIdx - fc.cfg.NPrevImages
	if start < 0 {
		start = 0
	}
	end := selectedIdx + fc.cfg.NNextImages + 1
	if end > len(files) {
		end = len(files)
	}
	nMaxPossible := fc.cfg.NPrevImages + fc.cfg.NNextImages + 1

	fc.mu.Lock()
	for idx := start; idx < end; idx++ {
		file := files[idx]
		dist := idx - selectedIdx
		if dist < 0 {
			dist = -dist
		}
		priority := nMaxPossible - dist
		if entry, ok := fc.cache[file]; ok {
			if entry.state == stateRunning {
				fc.tpq.UpdatePriority(entry.jobID, priority)
			}
			continue
		}
		dst := filenameInTmpDir(file, fc.cfg.TmpDir)
		fileForJob := file
		b := fc.backend
		jobID := fc.tpq.Apply(func() (string, error) {
			data, err := b.Fetch(ctx, fileForJob)
			if err != nil {
				return "", fmt.Errorf("imgcache.FileCache: fetch %s via %s: %w", fileForJob, b.Name(), err)
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return "", fmt.Errorf("imgcache.FileCache: stage %s: %w", fileForJob, err)
			}
			return dst, nil
		}, priority, 0)
		fc.cache[file] = cacheEntry{state: stateRunning, jobID: jobID}
	}
	fc.mu.Unlock()

	selected := files[selectedIdx]
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		fc.mu.Lock()
		entry := fc.cache[selected]
		if entry.state == stateOK {
			fc.mu.Unlock()
			return entry.path, nil
		}
		path, err, done := fc.tpq.Result(entry.jobID)
		if !done {
			fc.mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			delete(fc.cache, selected)
			fc.mu.Unlock()
			return "", rverr.New(rverr.IO, op, err)
		}
		fc.cache[selected] = cacheEntry{state: stateOK, path: path}
		fc.mu.Unlock()
		return path, nil
	}
}

// Close releases the cache's worker pool.
func (fc *FileCache) Close() { fc.tpq.Close() }
