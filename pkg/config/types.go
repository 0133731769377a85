package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Youtube    YoutubeConfig    `mapstructure:"youtube"`
	Security   SecurityConfig   `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path              string `mapstructure:"path"`
	EnableWAL         bool   `mapstructure:"enable_wal"`
	EnableForeignKeys bool   `mapstructure:"enable_foreign_keys"`
	LogQueries        bool   `mapstructure:"log_queries"`
}

// StorageConfig contains object store and scratch space settings
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	TempDir   string `mapstructure:"temp_dir"`
}

// ProcessingConfig contains media processing and worker settings
type ProcessingConfig struct {
	Workers       int           `mapstructure:"workers"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	JobTimeout    time.Duration `mapstructure:"job_timeout"`
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
	MaxChunkBytes int64         `mapstructure:"max_chunk_bytes"`
	MaxConcurrent int           `mapstructure:"max_concurrent_chunks"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// GeminiConfig contains transcription API settings
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// YoutubeConfig contains YouTube Data API and OAuth settings
type YoutubeConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	APIBaseURL   string        `mapstructure:"api_base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	PlaylistID   string        `mapstructure:"playlist_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SyncCooldown time.Duration `mapstructure:"sync_cooldown"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS     bool           `mapstructure:"enable_cors"`
	CORSOrigins    []string       `mapstructure:"cors_origins"`
	EnableRecovery bool           `mapstructure:"enable_recovery"`
	RateLimits     map[string]int `mapstructure:"rate_limits"`
}
