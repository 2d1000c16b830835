package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MEDIA_BACKEND 支持的媒体存储后端。
const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR"`
	Port          string `env:"PORT" envDefault:"8000"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"data/portal.db"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"portal-dev-secret"`
	GinMode       string `env:"GIN_MODE" envDefault:"release"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`

	SiteBaseURL  string `env:"SITE_BASE_URL" envDefault:"http://localhost:8000"`
	MediaRoot    string `env:"MEDIA_ROOT" envDefault:"media"`
	MediaURLPath string `env:"MEDIA_URL_PATH" envDefault:"/media"`
	MediaBackend string `env:"MEDIA_BACKEND" envDefault:"local"`

	S3 S3Config `envPrefix:"S3_"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// TrustedProxies 列出可信代理的 IP 或 CIDR，只有它们的 X-Forwarded-For 会被采纳。
	// 为空时以连接对端地址作为客户端地址。
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	SMTP SMTPConfig `envPrefix:"SMTP_"`

	ContactRecipients         []string `env:"CONTACT_RECIPIENTS" envSeparator:","`
	ContactFallbackRecipients []string `env:"CONTACT_FALLBACK_RECIPIENTS" envSeparator:","`
	ContactRatePerMinute      int      `env:"CONTACT_RATE_PER_MINUTE" envDefault:"5"`

	SuperRootUserName string `env:"SUPER_ROOT_USER_NAME"`
	SuperRootPassword string `env:"SUPER_ROOT_PASSWORD"`
}

// S3Config 描述 MEDIA_BACKEND=s3 时使用的对象存储。
type S3Config struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
	PresignSeconds  int    `env:"PRESIGN_SECONDS" envDefault:"3600"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
}

// SMTPConfig 保存外发邮件中继的配置。
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@localhost"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = ":" + c.Port
	}
	c.SiteBaseURL = strings.TrimSuffix(strings.TrimSpace(c.SiteBaseURL), "/")
	c.MediaURLPath = "/" + strings.Trim(strings.TrimSpace(c.MediaURLPath), "/")
	c.MediaBackend = strings.ToLower(strings.TrimSpace(c.MediaBackend))
	c.CORSAllowedOrigins = compact(c.CORSAllowedOrigins)
	c.TrustedProxies = compact(c.TrustedProxies)
	c.ContactRecipients = compact(c.ContactRecipients)
	c.ContactFallbackRecipients = compact(c.ContactFallbackRecipients)
	c.SuperRootUserName = strings.TrimSpace(c.SuperRootUserName)
	c.SuperRootPassword = strings.TrimSpace(c.SuperRootPassword)
	if c.ContactRatePerMinute <= 0 {
		c.ContactRatePerMinute = 5
	}
}

// Validate 拒绝会导致服务无法启动的配置。
func (c AppConfig) Validate() error {
	base, err := url.Parse(c.SiteBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("SITE_BASE_URL must be an absolute URL, got %q", c.SiteBaseURL)
	}

	switch c.MediaBackend {
	case MediaBackendLocal:
	case MediaBackendS3:
		if strings.TrimSpace(c.S3.Bucket) == "" {
			return errors.New("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported MEDIA_BACKEND %q", c.MediaBackend)
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}
	return nil
}

// MailConfigured 判断是否配置了 SMTP 中继主机。
func (c AppConfig) MailConfigured() bool {
	return strings.TrimSpace(c.SMTP.Host) != ""
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
