package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath on top of the built-in defaults.
// A missing file is an error; an empty path means DefaultConfigPath.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content, applies environment overrides and validates the result.
func Parse(content []byte) (*AppConfig, error) {
	cfg := Default()
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	finalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file overrides a value.
func Default() *AppConfig {
	cfg := &AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:  defaultDBDriver,
			Host:    defaultDBHost,
			Port:    defaultDBPort,
			User:    defaultDBUser,
			Name:    defaultDBName,
			Charset: defaultDBCharset,
			Loc:     defaultDBLoc,
			Path:    defaultSQLitePath,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Storage: StorageRuntimeConfig{
			Driver: defaultStorageDriver,
			S3:     S3Options{Prefix: defaultS3Prefix},
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute:  defaultLoginPerMinute,
			UploadPerMinute: defaultUploadPerMinute,
		},
		Upload: UploadConfig{MaxSizeMB: defaultUploadMaxSizeMB},
	}
	finalize(cfg)
	return cfg
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		cfg.Redis.Password = v
	}
	if v, ok := os.LookupEnv(EnvS3SecretAccessKey); ok {
		cfg.Storage.S3.SecretAccessKey = v
	}
}

func finalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Storage = normalizeStorageConfig(cfg.Storage)
	cfg.RateLimit = normalizeRateLimitConfig(cfg.RateLimit)
	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = defaultUploadMaxSizeMB
	}
	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid allowed_origins entry %q, expected http:// or https:// prefix", origin)
		}
		if strings.Count(origin, "*") > 1 {
			return fmt.Errorf("invalid allowed_origins entry %q, only one * is allowed", origin)
		}
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	for _, r := range c.Database.TablePrefix {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return fmt.Errorf("invalid database.table_prefix %q, expected letters, digits or _", c.Database.TablePrefix)
		}
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	switch c.Storage.Driver {
	case StorageDatabase:
	case StorageS3:
		s3 := c.Storage.S3
		if s3.Bucket == "" || s3.Region == "" || s3.AccessKeyID == "" || s3.SecretAccessKey == "" {
			return fmt.Errorf("incomplete storage.s3 config: bucket/region/access_key_id/secret_access_key are required")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// IsTest reports whether the app runs under tests.
func (c *AppConfig) IsTest() bool { return c.Env == "test" }

// UploadMaxBytes is the largest accepted screenshot payload.
func (c *AppConfig) UploadMaxBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}
