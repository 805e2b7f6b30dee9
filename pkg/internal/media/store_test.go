package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		url      string
		expected string
	}{
		{"https://cdn.example.com/uploads/sunset.jpg", "acc/photos/sunset"},
		{"https://cdn.example.com/uploads/archive.tar.gz?v=2", "acc/photos/archive.tar"},
		{"https://cdn.example.com/noext", "acc/photos/noext"},
		{"/relative/path/photo.png", "acc/photos/photo"},
	}
	for _, item := range cases {
		key, err := DeriveKey("acc", NamespacePhotos, item.url)
		require.NoError(t, err, item.url)
		assert.Equal(t, item.expected, key)
	}
}

func TestDeriveKeyFailures(t *testing.T) {
	for _, url := range []string{
		"https://cdn.example.com/",
		"https://cdn.example.com",
		"https://cdn.example.com/.jpg",
		"://broken",
	} {
		_, err := DeriveKey("acc", NamespacePosts, url)
		assert.Error(t, err, url)
	}

	_, err := DeriveKey("", NamespacePosts, "https://cdn.example.com/a.jpg")
	assert.Error(t, err)
}
