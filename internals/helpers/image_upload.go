// file: internals/helpers/image_upload.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxBackgroundWidth = 2000 // px; background sertifikat di-resize kalau lebih lebar

// SaveBackgroundImage membaca file multipart (png/jpg/webp), resize bila perlu,
// re-encode ke webp, lalu simpan ke disk di bawah baseDir.
// Return: path relatif yang disimpan di kolom background_image_path.
func SaveBackgroundImage(baseDir, folder string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("file bukan gambar yang valid: %w", err)
	}

	if img.Bounds().Dx() > maxBackgroundWidth {
		img = imaging.Resize(img, maxBackgroundWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	rel := GenerateUniqueFilename(folder, fh.Filename)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".webp"
	abs := filepath.Join(baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan gambar: %w", err)
	}
	return rel, nil
}

// RemoveBackgroundImage menghapus file background dari disk (best-effort).
func RemoveBackgroundImage(baseDir, rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	return os.Remove(filepath.Join(baseDir, rel))
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameRe.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename: {folder}/{yyyymmdd}-{uuid}-{nama-aman}
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
