package media

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/regionportal/cms/internal/config"
	_ "golang.org/x/image/webp"
)

// Library pairs the blob store with the resolver for the configured backend.
type Library struct {
	Store    Store
	Resolver Resolver
	now      func() time.Time
}

// Saved describes a stored upload.
type Saved struct {
	Reference   string
	ContentType string
	Width       int
	Height      int
}

// New builds the Library selected by cfg.MediaBackend.
func New(ctx context.Context, cfg config.AppConfig) (*Library, error) {
	switch cfg.MediaBackend {
	case config.MediaBackendS3:
		backend, err := NewS3Backend(ctx, S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
			PresignExpiry:   time.Duration(cfg.S3.PresignSeconds) * time.Second,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return NewLibrary(backend, backend), nil
	default:
		store, err := NewLocalStore(cfg.MediaRoot)
		if err != nil {
			return nil, err
		}
		return NewLibrary(store, NewLocalResolver(cfg.SiteBaseURL, cfg.MediaURLPath)), nil
	}
}

// NewLibrary wires an arbitrary store and resolver together.
func NewLibrary(store Store, resolver Resolver) *Library {
	return &Library{Store: store, Resolver: resolver, now: time.Now}
}

// Save validates body against kind, stores it under a fresh key and returns
// the reference entities should keep.
func (l *Library) Save(ctx context.Context, kind Kind, filename string, body io.ReadSeeker) (*Saved, error) {
	contentType, err := sniffContentType(body)
	if err != nil {
		return nil, err
	}

	saved := &Saved{ContentType: contentType}
	switch kind {
	case KindImage:
		if !strings.HasPrefix(contentType, "image/") {
			return nil, ErrContentTypeInvalid
		}
		cfg, _, err := image.DecodeConfig(body)
		if err != nil {
			return nil, ErrImageUnreadable
		}
		saved.Width, saved.Height = cfg.Width, cfg.Height
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	case KindVideo:
		if !strings.HasPrefix(contentType, "video/") && contentType != "application/octet-stream" {
			return nil, ErrContentTypeInvalid
		}
	case KindFile:
	default:
		return nil, ErrKindInvalid
	}

	key := NewKey(kind, filename, l.now())
	if err := l.Store.Put(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	saved.Reference = key
	return saved, nil
}

// URL resolves ref through the configured resolver.
func (l *Library) URL(ctx context.Context, ref string) *string {
	return l.Resolver.Resolve(ctx, ref)
}

func sniffContentType(body io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
