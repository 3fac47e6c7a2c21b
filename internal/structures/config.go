package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AuthConfig struct {
	HeaderName string `yaml:"headerName" validate:"required"`
	KeysFile   string `yaml:"keysFile" validate:"required|unixPath"`
}

type StorageConfig struct {
	Bucket    string `yaml:"bucket" validate:"required"`
	ProjectID string `yaml:"projectId"`
	CacheDir  string `yaml:"cacheDir" validate:"required|unixPath"`
}

type QueryConfig struct {
	DefaultLimit int `yaml:"defaultLimit" validate:"required|min:1"`
	MaxLimit     int `yaml:"maxLimit" validate:"required|min:1"`
}

type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	FilePath   string `yaml:"filePath"`
	BufferSize int    `yaml:"bufferSize"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Version   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Auth      AuthConfig    `yaml:"auth"`
	Storage   StorageConfig `yaml:"storage"`
	Query     QueryConfig   `yaml:"query"`
	Audit     AuditConfig   `yaml:"audit"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
