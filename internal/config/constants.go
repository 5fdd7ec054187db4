package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"

	defaultDBDriver   = DriverMySQL
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "monitor_user"
	defaultDBName     = "empmonitor"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "empmonitor.db"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultStorageDriver = StorageDatabase
	defaultS3Prefix      = "screenshots"

	defaultLoginPerMinute  = 10
	defaultUploadPerMinute = 120
	defaultUploadMaxSizeMB = 10
)

// Database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Screenshot blob storage drivers.
const (
	StorageDatabase = "database"
	StorageS3       = "s3"
)

// Environment variables that override secrets from the YAML file.
const (
	EnvDBPassword        = "EMPMON_DB_PASSWORD"
	EnvRedisPassword     = "EMPMON_REDIS_PASSWORD"
	EnvS3SecretAccessKey = "EMPMON_S3_SECRET_ACCESS_KEY"
)
