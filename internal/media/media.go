// Package media stores uploaded blobs and turns stored references into
// public URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an uploaded blob.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindFile  Kind = "file"
)

var (
	ErrKindInvalid        = errors.New("media kind is invalid")
	ErrContentTypeInvalid = errors.New("media content type does not match kind")
	ErrImageUnreadable    = errors.New("media image cannot be decoded")
)

// ParseKind normalizes raw into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	case KindFile, "":
		return KindFile, nil
	default:
		return "", ErrKindInvalid
	}
}

// Resolver maps a stored reference to an absolute URL. A blank reference
// resolves to nil.
type Resolver interface {
	Resolve(ctx context.Context, ref string) *string
}

// Store persists uploaded blobs under a key.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}

// NewKey builds a unique object key such as images/2025/10/20251015-<uuid>.jpg.
func NewKey(kind Kind, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if len(ext) > 10 {
		ext = ""
	}
	name := fmt.Sprintf("%s-%s%s", now.Format("20060102"), uuid.NewString(), ext)
	return path.Join(string(kind)+"s", now.Format("2006"), now.Format("01"), name)
}

// IsAbsoluteURL reports whether ref already carries a scheme or is protocol-relative.
func IsAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

func stringPtr(value string) *string {
	return &value
}
