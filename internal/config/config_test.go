package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SITE_BASE_URL", "https://portal.example.org/")
	t.Setenv("MEDIA_URL_PATH", "media/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.ListenAddr)
	assert.Equal(t, "https://portal.example.org", cfg.SiteBaseURL)
	assert.Equal(t, "/media", cfg.MediaURLPath)
	assert.Equal(t, MediaBackendLocal, cfg.MediaBackend)
	assert.Equal(t, 5, cfg.ContactRatePerMinute)
	assert.False(t, cfg.MailConfigured())
}

func TestLoadSplitsRecipientLists(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENTS", " a@example.com, ,b@example.com ")
	t.Setenv("CONTACT_FALLBACK_RECIPIENTS", "admin@example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.ContactRecipients)
	assert.Equal(t, []string{"admin@example.com"}, cfg.ContactFallbackRecipients)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.True(t, cfg.MailConfigured())
}

func TestLoadTrustedProxies(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1 , ,192.168.0.0/16")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "relative base url", env: map[string]string{"SITE_BASE_URL": "/portal"}},
		{name: "unknown backend", env: map[string]string{"MEDIA_BACKEND": "ftp"}},
		{name: "s3 without bucket", env: map[string]string{"MEDIA_BACKEND": "s3"}},
		{name: "malformed trusted proxy", env: map[string]string{"TRUSTED_PROXIES": "10.0.0.1,not-an-ip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadS3Settings(t *testing.T) {
	t.Setenv("MEDIA_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "portal-media")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MediaBackendS3, cfg.MediaBackend)
	assert.Equal(t, "portal-media", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, 3600, cfg.S3.PresignSeconds)
	assert.True(t, cfg.S3.UsePathStyle)
}
