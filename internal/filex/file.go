// Package filex contains the small amount of filesystem work the client does:
// locating its data directory and vetting image files before upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps ID document and selfie uploads.
const MaxImageSize = 10 << 20

var (
	ErrUnsupportedImage = errors.New("only jpg, jpeg, png and webp images are allowed")
	ErrImageTooLarge    = errors.New("image too large (max 10MB)")
	ErrEmptyImage       = errors.New("image is empty")
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// EnsureDataDir creates dir (and parents) if missing and returns its absolute
// path. A relative dir is resolved against the working directory.
func EnsureDataDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ImageContentType returns the MIME type for an allowed image extension.
func ImageContentType(path string) (string, error) {
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ct, nil
}

// ReadImage validates path as an uploadable image and returns its bytes
// together with the MIME type.
func ReadImage(path string) ([]byte, string, error) {
	ct, err := ImageContentType(path)
	if err != nil {
		return nil, "", err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() == 0 {
		return nil, "", ErrEmptyImage
	}
	if fi.Size() > MaxImageSize {
		return nil, "", ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, ct, nil
}
