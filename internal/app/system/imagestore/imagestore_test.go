package imagestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makanenak/makanenak/internal/app/system/imagestore"
)

func TestBuildObjectKey(t *testing.T) {
	key := imagestore.BuildObjectKey("Dinner Photo.PNG")
	if !strings.HasPrefix(key, "food-images/") {
		t.Errorf("expected food-images/ prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("expected lowered .png extension, got %q", key)
	}
}

func TestBuildObjectKey_NoExtension(t *testing.T) {
	key := imagestore.BuildObjectKey("photo")
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("expected .jpg default, got %q", key)
	}
}

func TestBuildObjectKey_Unique(t *testing.T) {
	a := imagestore.BuildObjectKey("a.jpg")
	b := imagestore.BuildObjectKey("a.jpg")
	if a == b {
		t.Errorf("expected distinct keys, got %q twice", a)
	}
}

func TestLocalStore_Upload(t *testing.T) {
	dir := t.TempDir()
	s := imagestore.NewLocal(dir, "/media/")

	url, err := s.Upload(context.Background(), "food-images/1-abc.jpg", "image/jpeg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/media/food-images/1-abc.jpg" {
		t.Errorf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "food-images", "1-abc.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Errorf("unexpected contents %q", data)
	}
}
