package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"contenthub/internal/core/errs"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads"

const sniffLen = 512

var fieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// LocalBlobStore ذخیره فایل‌های آپلود شده روی دیسک
type LocalBlobStore struct {
	Root     string
	MaxBytes int64
	Logger   *zap.Logger
}

func NewLocalBlobStore(root string, maxBytes int64, logger *zap.Logger) *LocalBlobStore {
	return &LocalBlobStore{
		Root:     root,
		MaxBytes: maxBytes,
		Logger:   logger,
	}
}

// Store writes an image under <Root>/<field>/ with a generated name and
// returns its public path. Non-image payloads are rejected.
func (s *LocalBlobStore) Store(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	if !fieldPattern.MatchString(field) {
		return "", fmt.Errorf("invalid upload field %q", field)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	head = head[:n]
	if n == 0 {
		return "", errs.BadRequest("Please upload an image")
	}

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errs.BadRequest("Only image files are allowed")
	}

	dir := filepath.Join(s.Root, field)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.Must(uuid.NewV4()).String() + extensionFor(filename, contentType)
	fullPath := filepath.Join(dir, name)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	src := io.MultiReader(bytes.NewReader(head), r)
	if s.MaxBytes > 0 {
		src = io.LimitReader(src, s.MaxBytes+1)
	}
	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		s.discard(fullPath)
		return "", copyErr
	case closeErr != nil:
		s.discard(fullPath)
		return "", closeErr
	case s.MaxBytes > 0 && written > s.MaxBytes:
		s.discard(fullPath)
		return "", errs.BadRequest("File is too large")
	}

	if err := ctx.Err(); err != nil {
		s.discard(fullPath)
		return "", err
	}

	return PublicPrefix + "/" + field + "/" + name, nil
}

func (s *LocalBlobStore) discard(path string) {
	if err := os.Remove(path); err != nil && s.Logger != nil {
		s.Logger.Warn("could not remove partial upload", zap.String("path", path), zap.Error(err))
	}
}

// sniffedExt names the types http.DetectContentType reports for images.
var sniffedExt = map[string]string{
	"image/png":    ".png",
	"image/jpeg":   ".jpg",
	"image/gif":    ".gif",
	"image/webp":   ".webp",
	"image/bmp":    ".bmp",
	"image/x-icon": ".ico",
	"image/avif":   ".avif",
}

// extensionFor keeps the client's extension only when it maps to the sniffed
// type, so a file is always served with the type it was checked as.
func extensionFor(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && byExt == contentType {
			return ext
		}
	}
	if ext, ok := sniffedExt[contentType]; ok {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
