package config

// AppConfig holds runtime startup configuration loaded from YAML.
// It is built once by Load and only read afterwards.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production" | "test"
	Timezone       string                `yaml:"timezone"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Storage        StorageRuntimeConfig  `yaml:"storage"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	Upload         UploadConfig          `yaml:"upload"`

	// Resolved connection strings, filled by Load.
	DSN      string `yaml:"-"`
	RedisURL string `yaml:"-"`
}

type DatabaseRuntimeConfig struct {
	Driver       string            `yaml:"driver"` // "mysql" | "sqlite"
	DSN          string            `yaml:"dsn"`
	Host         string            `yaml:"host"`
	Port         int               `yaml:"port"`
	User         string            `yaml:"user"`
	Password     string            `yaml:"password"`
	Name         string            `yaml:"name"`
	Charset      string            `yaml:"charset"`
	Loc          string            `yaml:"loc"`
	Params       map[string]string `yaml:"params"`
	Path         string            `yaml:"path"` // sqlite file
	TablePrefix  string            `yaml:"table_prefix"`
	MaxOpenConns int               `yaml:"max_open_conns"`
	MaxIdleConns int               `yaml:"max_idle_conns"`
}

type RedisRuntimeConfig struct {
	Enable   bool   `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type StorageRuntimeConfig struct {
	Driver string    `yaml:"driver"` // "database" | "s3"
	S3     S3Options `yaml:"s3"`
}

type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	Prefix          string `yaml:"prefix"`
}

type RateLimitConfig struct {
	LoginPerMinute  int `yaml:"login_per_minute"`
	UploadPerMinute int `yaml:"upload_per_minute"`
}

type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}
