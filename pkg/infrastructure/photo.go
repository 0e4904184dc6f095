package infrastructure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ThumbnailSize bounds both sides of the processed profile picture.
const ThumbnailSize = 150

// PhotoProcessor prepares profile pictures for the rendered document.
type PhotoProcessor struct{}

func NewPhotoProcessor() *PhotoProcessor { return &PhotoProcessor{} }

// Thumbnail decodes src, scales it down to fit ThumbnailSize keeping the
// aspect ratio, and writes it to dst. The format follows dst's extension.
func (PhotoProcessor) Thumbnail(src, dst string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode photo %s: %w", src, err)
	}
	thumb := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(thumb, dst); err != nil {
		return fmt.Errorf("save thumbnail %s: %w", dst, err)
	}
	return nil
}

// Import checks that src is a decodable image and copies it into dir under
// its base name. It returns the path of the copy.
func (PhotoProcessor) Import(src, dir string) (string, error) {
	if _, err := imaging.Open(src); err != nil {
		return "", fmt.Errorf("not an image %s: %w", src, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if same, _ := samePath(src, dst); same {
		return dst, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
