package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlob fetches images from Azure Blob Storage, given paths of the
// form "https://<account>.blob.core.windows.net/<container>/<blob>".
type AzureBlob struct {
	client *azblob.Client
}

// NewAzureBlob builds an Azure Blob backend from a credential already
// resolved by the caller (shared key, SAS token, or managed identity).
func NewAzureBlob(serviceURL string, cred azcore.TokenCredential) (*AzureBlob, error) {
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("backend.NewAzureBlob: %w", err)
	}
	return &AzureBlob{client: client}, nil
}

func (b *AzureBlob) Name() string { return "azblob" }

func (b *AzureBlob) Fetch(ctx context.Context, pathOrURL string) ([]byte, error) {
	container, blobName, err := splitAzureURL(pathOrURL)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("backend.AzureBlob.Fetch: %s/%s: %w", container, blobName, err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("backend.AzureBlob.Fetch: %s/%s: %w", container, blobName, err)
	}
	return out.Bytes(), nil
}

// List enumerates every blob under folderPath's container+prefix whose
// name carries one of extensions.
func (b *AzureBlob) List(ctx context.Context, folderPath string, extensions []string) ([]string, error) {
	container, prefix, err := splitAzureURL(folderPath)
	if err != nil {
		return nil, err
	}
	var out []string
	pager := b.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("backend.AzureBlob.List: %s: %w", folderPath, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := strings.TrimPrefix(*item.Name, prefix)
			name = strings.TrimPrefix(name, "/")
			if hasSupportedExtension(name, extensions) {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func splitAzureURL(pathOrURL string) (container, blob string, err error) {
	u, err := url.Parse(pathOrURL)
	if err != nil {
		return "", "", fmt.Errorf("backend.splitAzureURL: %q: %w", pathOrURL, err)
	}
	trimmed := strings.TrimPrefix(u.Path, "/")
	container, blob, found := strings.Cut(trimmed, "/")
	if !found {
		return "", "", fmt.Errorf("backend.splitAzureURL: %q has no <container>/<blob> path", pathOrURL)
	}
	return container, blob, nil
}
