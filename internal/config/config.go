// Package config loads and describes the application configuration from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment, the Telegram and GitHub upstreams, image
// handling, the bot's behavior and the debug HTTP server.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Telegram contains Bot API related configuration
	Telegram struct {
		// Token is the bot token issued by BotFather; the bot refuses to start without it
		Token string `env:"TELEGRAM_BOT_TOKEN" yaml:"token"`
		// AllowedUsers lists the Telegram user IDs permitted to talk to the bot.
		// An empty list rejects every message.
		AllowedUsers []int64 `env:"TELEGRAM_ALLOWED_USERS" env-separator:"," yaml:"allowedUsers"`
		// APIBase is the Bot API root URL
		APIBase string `env:"TELEGRAM_API_BASE" env-default:"https://api.telegram.org" yaml:"apiBase"`
		// PollTimeout is the getUpdates long-poll timeout in seconds
		PollTimeout int `env:"TELEGRAM_POLL_TIMEOUT" env-default:"30" yaml:"pollTimeout"`
	} `yaml:"telegram"`

	// GitHub contains content repository related configuration
	GitHub struct {
		// Token is the personal access token; the bot refuses to start without it
		Token string `env:"GITHUB_TOKEN" yaml:"token"`
		// Owner is the account owning the content and image repositories
		Owner string `env:"GITHUB_OWNER" env-default:"ryusaksun" yaml:"owner"`
		// ContentRepo is the Astro blog repository essays are committed to
		ContentRepo string `env:"GITHUB_REPO" env-default:"astro_blog" yaml:"contentRepo"`
		// ContentBranch is the branch essays are committed to
		ContentBranch string `env:"GITHUB_BRANCH" env-default:"main" yaml:"contentBranch"`
		// APIBase is the GitHub REST API root URL
		APIBase string `env:"GITHUB_API_BASE" env-default:"https://api.github.com" yaml:"apiBase"`
		// RequestTimeout bounds every GitHub API call
		RequestTimeout time.Duration `env:"GITHUB_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
	} `yaml:"github"`

	// Images contains image hosting repository related configuration
	Images struct {
		// Repo is the image hosting repository
		Repo string `env:"IMAGE_REPO" env-default:"picx-images-hosting" yaml:"repo"`
		// Branch is the branch images are committed to
		Branch string `env:"IMAGE_BRANCH" env-default:"master" yaml:"branch"`
		// BasePath is the directory images are stored under, organized by year and month
		BasePath string `env:"IMAGE_PATH" env-default:"images" yaml:"basePath"`
		// CDN selects the public URL flavor: jsdelivr, statically or raw
		CDN string `env:"CDN_TYPE" env-default:"jsdelivr" yaml:"cdn"`
	} `yaml:"images"`

	// Imaging contains compression pipeline bounds
	Imaging struct {
		// MaxWidth is the widest a smart-compressed image may be
		MaxWidth int `env:"IMAGE_MAX_WIDTH" env-default:"1920" yaml:"maxWidth"`
		// MaxHeight is the tallest a smart-compressed image may be
		MaxHeight int `env:"IMAGE_MAX_HEIGHT" env-default:"1080" yaml:"maxHeight"`
		// Quality is the initial JPEG quality for smart compression, 0..1
		Quality float64 `env:"IMAGE_QUALITY" env-default:"0.85" yaml:"quality"`
		// TargetSize is the byte size smart compression aims to get under
		TargetSize int `env:"IMAGE_TARGET_SIZE" env-default:"5242880" yaml:"targetSize"`
		// CompressionThreshold is the input size above which smart compression kicks in
		CompressionThreshold int `env:"IMAGE_COMPRESSION_THRESHOLD" env-default:"10485760" yaml:"compressionThreshold"` //nolint: lll
	} `yaml:"imaging"`

	// Bot contains message handling behavior
	Bot struct {
		// MediaGroupDelay is how long to collect messages of one media group before publishing
		MediaGroupDelay time.Duration `env:"BOT_MEDIA_GROUP_DELAY" env-default:"1500ms" yaml:"mediaGroupDelay"`
		// MaxDocumentSize is the largest markdown document accepted for publishing
		MaxDocumentSize int64 `env:"BOT_MAX_DOCUMENT_SIZE" env-default:"5242880" yaml:"maxDocumentSize"`
		// ListDefaultLimit is how many essays /list shows without an argument
		ListDefaultLimit int `env:"BOT_LIST_DEFAULT_LIMIT" env-default:"10" yaml:"listDefaultLimit"`
		// ListMaxLimit caps the /list argument
		ListMaxLimit int `env:"BOT_LIST_MAX_LIMIT" env-default:"30" yaml:"listMaxLimit"`
	} `yaml:"bot"`

	// HTTP contains the debug server configuration (metrics, pprof, health)
	HTTP struct {
		// Addr is the address and port the debug server listens on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum time to wait for the next request on a kept-alive connection
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of request header bytes read
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// GracefulShutdownTimeout is the maximum duration to wait for in-flight work during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for the yaml config file and returns a filled Config
// struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
