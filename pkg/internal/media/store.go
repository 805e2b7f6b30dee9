package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	NamespacePhotos = "photos"
	NamespacePosts  = "posts"
)

// Store is the external object storage holding uploaded media.
// Deleting a key that does not exist must succeed.
type Store interface {
	Delete(ctx context.Context, key string) error
}

var M Store

// DeriveKey maps a public media url to its object key:
// {ownerExternalId}/{namespace}/{filename without extension}.
func DeriveKey(ownerExternalID, namespace, rawURL string) (string, error) {
	if len(ownerExternalID) == 0 {
		return "", fmt.Errorf("missing owner external id")
	}

	uri, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("unable to parse media url: %v", err)
	}

	filename := path.Base(uri.Path)
	filename = strings.TrimSuffix(filename, path.Ext(filename))
	if len(filename) == 0 || filename == "." || filename == "/" {
		return "", fmt.Errorf("media url %q has no filename", rawURL)
	}

	return fmt.Sprintf("%s/%s/%s", ownerExternalID, namespace, filename), nil
}
