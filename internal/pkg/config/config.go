package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, store connection, secrets)
// - default: Values common across all environments (timezone, timeouts, cache sizing)
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	DB         DBConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Mail       MailConfig
	Settlement SettlementConfig
	Report     ReportConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"summerCamp"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// RedisConfig is optional; an empty Addr selects the in-process report cache.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// KafkaConfig is optional; without brokers settlement events are dropped.
type KafkaConfig struct {
	Brokers       []string `envconfig:"KAFKA_BROKERS"`
	SettledTopic  string   `envconfig:"KAFKA_SETTLED_TOPIC" default:"enrollment.settled"`
	ConsumerGroup string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"enrollment-notifier"`
}

type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
}

type SettlementConfig struct {
	LeaseDuration     time.Duration `envconfig:"SETTLEMENT_LEASE" default:"30s"`
	ReconcileInterval time.Duration `envconfig:"SETTLEMENT_RECONCILE_INTERVAL" default:"1m"`
	ReconcileBatch    int           `envconfig:"SETTLEMENT_RECONCILE_BATCH" default:"50"`
}

type ReportConfig struct {
	CacheTTL  time.Duration `envconfig:"REPORT_CACHE_TTL" default:"30s"`
	CacheSize int           `envconfig:"REPORT_CACHE_SIZE" default:"128"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if c.Settlement.LeaseDuration <= 0 {
		return fmt.Errorf("SETTLEMENT_LEASE must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the %q store", c.Store.Driver)
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the %q store", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// LoadConfig reads an optional .env file (ENV_FILE, default ".env") and then
// the process environment, which wins over the file.
func LoadConfig() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadNotifierConfig reads only the sections the notifier worker uses.
func LoadNotifierConfig() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}
	var cfg Config
	for _, section := range []any{&cfg.Kafka, &cfg.Mail, &cfg.Log} {
		if err := envconfig.Process("", section); err != nil {
			return Config{}, fmt.Errorf("failed to process env config: %w", err)
		}
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return Config{}, fmt.Errorf("KAFKA_BROKERS is required for the notifier")
	}
	if cfg.Mail.Username == "" {
		return Config{}, fmt.Errorf("SMTP_USERNAME is required for the notifier")
	}
	return cfg, nil
}

// LoadSeedConfig reads the store connection settings used by the seed tool.
func LoadSeedConfig() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}
	var cfg Config
	for _, section := range []any{&cfg.Store, &cfg.DB, &cfg.Mongo, &cfg.Log} {
		if err := envconfig.Process("", section); err != nil {
			return Config{}, fmt.Errorf("failed to process env config: %w", err)
		}
	}
	if err := cfg.validateStore(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFile() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{Driver: StoreDriverPostgres},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27018",
			Database:       "enrollment_test",
			ConnectTimeout: 10 * time.Second,
		},
		Kafka: KafkaConfig{
			SettledTopic:  "enrollment.settled",
			ConsumerGroup: "enrollment-notifier-test",
		},
		Settlement: SettlementConfig{
			LeaseDuration:     5 * time.Second,
			ReconcileInterval: time.Hour,
			ReconcileBatch:    10,
		},
		Report: ReportConfig{
			CacheTTL:  time.Second,
			CacheSize: 16,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
	}
}
