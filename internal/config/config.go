package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"` // console or json

	// SessionSecret signs session cookies. Empty means a random key per process.
	SessionSecret string        `mapstructure:"session_secret" yaml:"session_secret"`
	SessionCookie string        `mapstructure:"session_cookie" yaml:"session_cookie"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	SecureCookies bool          `mapstructure:"secure_cookies" yaml:"secure_cookies"`

	EnforceCapacity bool `mapstructure:"enforce_capacity" yaml:"enforce_capacity"`
	MaxIDAttempts   int  `mapstructure:"max_id_attempts" yaml:"max_id_attempts"`

	// JournalPath is the SQLite file for the membership journal. Empty disables it.
	JournalPath   string `mapstructure:"journal_path" yaml:"journal_path"`
	JournalBuffer int    `mapstructure:"journal_buffer" yaml:"journal_buffer"`

	// WSRateLimit caps inbound websocket frames per minute per connection. 0 disables.
	WSRateLimit int `mapstructure:"ws_rate_limit" yaml:"ws_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              "127.0.0.1:8088",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		SessionCookie:     "presence_session",
		SessionTTL:        30 * 24 * time.Hour,
		MaxIDAttempts:     64,
		JournalBuffer:     256,
		WSRateLimit:       120,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.SessionSecret != "" {
		c.SessionSecret = other.SessionSecret
	}
	if other.SessionCookie != "" {
		c.SessionCookie = other.SessionCookie
	}
	if other.SessionTTL != 0 {
		c.SessionTTL = other.SessionTTL
	}
	if other.SecureCookies {
		c.SecureCookies = true
	}
	if other.EnforceCapacity {
		c.EnforceCapacity = true
	}
	if other.MaxIDAttempts != 0 {
		c.MaxIDAttempts = other.MaxIDAttempts
	}
	if other.JournalPath != "" {
		c.JournalPath = other.JournalPath
	}
	if other.JournalBuffer != 0 {
		c.JournalBuffer = other.JournalBuffer
	}
	if other.WSRateLimit != 0 {
		c.WSRateLimit = other.WSRateLimit
	}
}
