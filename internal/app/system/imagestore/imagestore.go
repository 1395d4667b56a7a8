// Package imagestore persists donation photos and hands back public URLs.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store saves an uploaded image and returns the URL it will be served
// from. Implementations must not require the caller to know where the
// bytes end up.
type Store interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (publicURL string, err error)
}

// BuildObjectKey returns the storage key for a donation photo. Keys are
// grouped under food-images/ and carry a timestamp plus a random id so
// two donors uploading "photo.jpg" in the same second never collide.
func BuildObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("food-images/%d-%s%s", time.Now().Unix(), uuid.New().String()[:8], ext)
}
