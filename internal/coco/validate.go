package coco

import "github.com/tbonfort/gobs"

// ValidateImages runs check concurrently over every path, collecting the
// first error encountered. Import calls this against every image_id's
// file_name before trusting a COCO document, the way the teacher's tiler
// preloads every source dataset in parallel before trusting it opens.
func ValidateImages(paths []string, parallelism int, check func(path string) error) error {
	if parallelism <= 0 {
		parallelism = 1
	}
	pool := gobs.NewPool(parallelism)
	batch := pool.Batch()
	for _, p := range paths {
		p := p
		batch.Submit(func() error {
			return check(p)
		})
	}
	return batch.Wait()
}
