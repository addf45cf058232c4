package facades

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// ImageFSFacade stores recipe images under a local media root and serves them
// from mediaURL.
type ImageFSFacade struct {
	root     string
	mediaURL string
}

// NewImageFSFacade creates a facade writing below root. mediaURL is the public
// prefix under which root is served, e.g. "/media/".
func NewImageFSFacade(root, mediaURL string) *ImageFSFacade {
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &ImageFSFacade{root: root, mediaURL: mediaURL}
}

// Save writes data at key and returns its public reference.
func (f *ImageFSFacade) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	full, err := f.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		logger.Log.Errorw("failed to create media directory", "path", full, "error", err)
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		logger.Log.Errorw("failed to write image", "path", full, "error", err)
		return "", err
	}
	logger.Log.Infow("image stored", "backend", "fs", "key", key, "size", len(data))
	return f.mediaURL + key, nil
}

// Delete removes the file behind ref. Missing files are not an error.
func (f *ImageFSFacade) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, f.mediaURL)
	if !ok {
		return fmt.Errorf("reference %q is outside %s", ref, f.mediaURL)
	}
	full, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve maps a slash separated key into root, refusing keys that escape it.
func (f *ImageFSFacade) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.root, filepath.FromSlash(clean)), nil
}
