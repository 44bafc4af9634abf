package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	AppEnv             string        `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":5000"`
	ReadTimeout        time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout       time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"20s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LEVEL" default:"debug"`
	Encoding          string `envconfig:"ENCODING" default:"console"`
	DisableCaller     bool   `envconfig:"DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"DISABLE_STACKTRACE" default:"true"`
}

type DatabaseConfig struct {
	Driver string `envconfig:"DRIVER" default:"postgres"`
}

type PostgresConfig struct {
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            string `envconfig:"PORT" default:"5432"`
	User            string `envconfig:"USER" default:"storefront"`
	Password        string `envconfig:"PASSWORD" default:"storefront"`
	DBName          string `envconfig:"DB" default:"storefront"`
	SSLMode         string `envconfig:"SSLMODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" default:"300"`
	ConnMaxIdleTime int    `envconfig:"CONN_MAX_IDLE_TIME" default:"60"`
}

type MongoConfig struct {
	URI            string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"DATABASE" default:"storefront"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	MaxPoolSize    uint64        `envconfig:"MAX_POOL_SIZE" default:"20"`
}

type JWTConfig struct {
	SecretKey string        `envconfig:"SECRET" required:"true"`
	TTL       time.Duration `envconfig:"TTL" default:"168h"`
	Issuer    string        `envconfig:"ISSUER" default:"storefront"`
}

type AuthConfig struct {
	RegistrationEnabled bool `envconfig:"REGISTRATION_ENABLED" default:"true"`
	BcryptCost          int  `envconfig:"BCRYPT_COST" default:"10"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"ADDR"`
	Password string        `envconfig:"PASSWORD"`
	DB       int           `envconfig:"DB" default:"0"`
	ListTTL  time.Duration `envconfig:"LIST_TTL" default:"5m"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"storefront.events"`
	GroupID string   `envconfig:"GROUP_ID" default:"storefront-events-tail"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ADDRESSES"`
	Username  string   `envconfig:"USERNAME"`
	Password  string   `envconfig:"PASSWORD"`
}

type WhatsAppConfig struct {
	Phone string `envconfig:"PHONE"`
}

// LoadEnv reads an optional .env file and then the process environment.
// Each section is read with its own prefix, e.g. POSTGRES_HOST or JWT_SECRET.
func LoadEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	sections := []struct {
		prefix string
		target interface{}
	}{
		{"", &cfg.Server},
		{"logger", &cfg.Logger},
		{"db", &cfg.Database},
		{"postgres", &cfg.Postgres},
		{"mongo", &cfg.Mongo},
		{"jwt", &cfg.JWT},
		{"auth", &cfg.Auth},
		{"redis", &cfg.Redis},
		{"kafka", &cfg.Kafka},
		{"elasticsearch", &cfg.Elastic},
		{"whatsapp", &cfg.WhatsApp},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.target); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if len(c.JWT.SecretKey) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 bytes")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}

func (c *Config) RedisEnabled() bool   { return c.Redis.Addr != "" }
func (c *Config) KafkaEnabled() bool   { return len(c.Kafka.Brokers) > 0 }
func (c *Config) ElasticEnabled() bool { return len(c.Elastic.Addresses) > 0 }
