package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3Backend.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string // custom endpoint for S3-compatible stores such as MinIO
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignExpiry   time.Duration
	PublicBaseURL   string // CDN or public bucket URL; disables presigning when set
}

// S3Backend stores blobs in an S3 bucket and resolves references either
// against a public base URL or as presigned GET URLs.
type S3Backend struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	usePathStyle  bool
	expiry        time.Duration
	publicBaseURL string

	mu     sync.Mutex
	signed map[string]signedURL
	now    func() time.Time
}

// signedURL is a presigned link reused until refreshAt so repeated reads of
// unchanged content return the same URL.
type signedURL struct {
	url       string
	refreshAt time.Time
}

// maxSignedURLs bounds the presigned URL cache; it is reset when exceeded.
const maxSignedURLs = 10000

// NewS3Backend loads AWS configuration and builds the S3 clients.
func NewS3Backend(ctx context.Context, opts S3Options) (*S3Backend, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = time.Hour
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &S3Backend{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		region:        opts.Region,
		endpoint:      strings.TrimSuffix(opts.Endpoint, "/"),
		usePathStyle:  opts.UsePathStyle,
		expiry:        opts.PresignExpiry,
		publicBaseURL: strings.TrimSuffix(strings.TrimSpace(opts.PublicBaseURL), "/"),
		signed:        make(map[string]signedURL),
		now:           time.Now,
	}, nil
}

// Put uploads body under key.
func (b *S3Backend) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	// The SDK needs a seekable body to sign the payload.
	if _, ok := body.(io.ReadSeeker); !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey(key)),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	b.Forget(key)
	return nil
}

// Delete removes key from the bucket.
func (b *S3Backend) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	b.Forget(key)
	return nil
}

// Resolve implements Resolver.
func (b *S3Backend) Resolve(ctx context.Context, ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if IsAbsoluteURL(ref) {
		return stringPtr(ref)
	}

	key := objectKey(ref)
	if b.publicBaseURL != "" {
		return stringPtr(b.publicBaseURL + "/" + escapeKey(key))
	}

	return stringPtr(b.presignedURL(ctx, key))
}

// presignedURL returns the cached link for key while it has at least half of
// its lifetime left, signing a fresh one otherwise.
func (b *S3Backend) presignedURL(ctx context.Context, key string) string {
	now := b.now()

	b.mu.Lock()
	cached, ok := b.signed[key]
	b.mu.Unlock()
	if ok && now.Before(cached.refreshAt) {
		return cached.url
	}

	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(b.expiry))
	if err != nil {
		slog.Warn("presigning media url failed, using direct object url", "key", key, "error", err)
		return b.directURL(key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if current, ok := b.signed[key]; ok && now.Before(current.refreshAt) {
		return current.url
	}
	if len(b.signed) >= maxSignedURLs {
		b.signed = make(map[string]signedURL)
	}
	b.signed[key] = signedURL{url: req.URL, refreshAt: now.Add(b.expiry / 2)}
	return req.URL
}

// Forget drops the cached link for ref, for use after the object changes.
func (b *S3Backend) Forget(ref string) {
	b.mu.Lock()
	delete(b.signed, objectKey(ref))
	b.mu.Unlock()
}

func (b *S3Backend) directURL(key string) string {
	if b.endpoint != "" {
		if b.usePathStyle {
			return fmt.Sprintf("%s/%s/%s", b.endpoint, b.bucket, escapeKey(key))
		}
		if parsed, err := url.Parse(b.endpoint); err == nil && parsed.Host != "" {
			return fmt.Sprintf("%s://%s.%s/%s", parsed.Scheme, b.bucket, parsed.Host, escapeKey(key))
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, escapeKey(key))
}

func objectKey(ref string) string {
	return strings.TrimPrefix(strings.TrimSpace(ref), "/")
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
