package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCS fetches images from Google Cloud Storage, given paths of the form
// "gs://<bucket>/<object>".
type GCS struct {
	client *storage.Client
}

// NewGCS wraps an already-authenticated storage client (application
// default credentials, a service-account key, or a workload identity).
func NewGCS(client *storage.Client) *GCS {
	return &GCS{client: client}
}

func (b *GCS) Name() string { return "gcs" }

func (b *GCS) Fetch(ctx context.Context, pathOrURL string) ([]byte, error) {
	bucket, object, err := splitGCSURL(pathOrURL)
	if err != nil {
		return nil, err
	}
	r, err := b.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend.GCS.Fetch: %s/%s: %w", bucket, object, err)
	}
	defer r.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("backend.GCS.Fetch: %s/%s: %w", bucket, object, err)
	}
	return out.Bytes(), nil
}

// List enumerates every object under folderPath's bucket+prefix whose name
// carries one of extensions.
func (b *GCS) List(ctx context.Context, folderPath string, extensions []string) ([]string, error) {
	bucket, prefix, err := splitGCSURL(folderPath)
	if err != nil {
		return nil, err
	}
	var out []string
	it := b.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("backend.GCS.List: %s: %w", folderPath, err)
		}
		name := strings.TrimPrefix(strings.TrimPrefix(attrs.Name, prefix), "/")
		if hasSupportedExtension(name, extensions) {
			out = append(out, name)
		}
	}
	return out, nil
}

func splitGCSURL(pathOrURL string) (bucket, object string, err error) {
	u, parseErr := url.Parse(pathOrURL)
	if parseErr != nil || u.Scheme != "gs" {
		return "", "", fmt.Errorf("backend.splitGCSURL: %q is not a gs:// url", pathOrURL)
	}
	object = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return "", "", fmt.Errorf("backend.splitGCSURL: %q has no <bucket>/<object> path", pathOrURL)
	}
	return u.Host, object, nil
}
