package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace shared by every BLU_* variable.
const EnvPrefix = "BLU"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	SendGrid      SendGridConfig
	OpenAI        OpenAIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BLU_APP_ENV" required:"true"`
	Port         string `envconfig:"BLU_APP_PORT" default:"8080"`
	BaseURL      string `envconfig:"BLU_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"BLU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BLU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BLU_DB_DSN"`
	Driver string `envconfig:"BLU_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BLU_DB_HOST"`
	Port     int    `envconfig:"BLU_DB_PORT" default:"5432"`
	User     string `envconfig:"BLU_DB_USER"`
	Password string `envconfig:"BLU_DB_PASSWORD"`
	Name     string `envconfig:"BLU_DB_NAME"`
	SSLMode  string `envconfig:"BLU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BLU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BLU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BLU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BLU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets sqlite (dev/test).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"BLU_REDIS_URL"`
	Address      string        `envconfig:"BLU_REDIS_ADDR"`
	Password     string        `envconfig:"BLU_REDIS_PASSWORD"`
	DB           int           `envconfig:"BLU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BLU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BLU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BLU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BLU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BLU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BLU_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BLU_JWT_ISSUER" default:"blu-networking"`
	ExpirationMinutes      int    `envconfig:"BLU_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"BLU_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BLU_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BLU_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BLU_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BLU_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BLU_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BLU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BLU_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BLU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BLU_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BLU_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BLU_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BLU_AUTO_MIGRATE" default:"false"`
}

type SendGridConfig struct {
	APIKey   string `envconfig:"BLU_SENDGRID_API_KEY"`
	FromName string `envconfig:"BLU_SENDGRID_FROM_NAME" default:"BLU Networking"`
	From     string `envconfig:"BLU_SENDGRID_FROM_EMAIL" default:"no-reply@blunetworking.org"`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"BLU_OPENAI_API_KEY"`
	Model  string `envconfig:"BLU_OPENAI_MODEL" default:"gpt-4o-mini"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("BLU_DB_DSN is required for the sqlite driver")
	}

	missing := []string{}
	for _, pair := range []struct {
		env   string
		value string
	}{
		{"BLU_DB_HOST", db.Host},
		{"BLU_DB_USER", db.User},
		{"BLU_DB_NAME", db.Name},
	} {
		if pair.value == "" {
			missing = append(missing, pair.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either BLU_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
