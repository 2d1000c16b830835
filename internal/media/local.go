package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs below a root directory served as static files.
type LocalStore struct {
	Root string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &LocalStore{Root: root}, nil
}

// Put writes body to Root/key.
func (s *LocalStore) Put(_ context.Context, key string, body io.Reader, _ string) error {
	full, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return err
	}
	return f.Sync()
}

// Delete removes Root/key. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	full, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the filesystem location of key, refusing keys that escape Root.
func (s *LocalStore) Path(key string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(strings.TrimSpace(key)))
	if cleaned == string(filepath.Separator) {
		return "", errors.New("media key is empty")
	}
	return filepath.Join(s.Root, cleaned), nil
}

// LocalResolver prefixes relative references with the site base URL and the
// path the media root is served under.
type LocalResolver struct {
	baseURL   string
	mediaPath string
}

// NewLocalResolver builds a resolver for files served at baseURL+mediaPath.
func NewLocalResolver(baseURL, mediaPath string) *LocalResolver {
	mediaPath = strings.Trim(strings.TrimSpace(mediaPath), "/")
	if mediaPath != "" {
		mediaPath = "/" + mediaPath
	}
	return &LocalResolver{
		baseURL:   strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		mediaPath: mediaPath,
	}
}

// Resolve implements Resolver.
func (r *LocalResolver) Resolve(_ context.Context, ref string) *string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil
	case IsAbsoluteURL(ref):
		return stringPtr(ref)
	case strings.HasPrefix(ref, "/"):
		return stringPtr(r.baseURL + ref)
	default:
		return stringPtr(r.baseURL + r.mediaPath + "/" + ref)
	}
}
