package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config mirrors the process environment. Values are kept as strings and
// interpreted by the accessor methods, which apply defaults.
type Config struct {
	App struct {
		Port        string `env:"APP_PORT"`
		Env         string `env:"APP_ENV"`
		LogLevel    string `env:"LOG_LEVEL"`
		CORSOrigins string `env:"CORS_ALLOWED_ORIGINS"`
		SeedFile    string `env:"SEED_FILE"`
	}
	Database struct {
		Driver        string `env:"DB_DRIVER"`
		PostgresURL   string `env:"DATABASE_URL"`
		MongoURI      string `env:"MONGO_URI"`
		MongoDatabase string `env:"MONGO_DATABASE"`
	}
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
		DB       string `env:"REDIS_DB"`
		Channel  string `env:"REDIS_EVENTS_CHANNEL"`
	}
	Geocoder struct {
		BaseURL   string `env:"GEOCODER_BASE_URL"`
		UserAgent string `env:"GEOCODER_USER_AGENT"`
		Timeout   string `env:"GEOCODER_TIMEOUT"`
		CacheTTL  string `env:"GEOCODER_CACHE_TTL"`
	}
	RateLimit struct {
		RPS   string `env:"RATE_LIMIT_RPS"`
		Burst string `env:"RATE_LIMIT_BURST"`
	}
	Scheduler struct {
		Enabled      string `env:"SCHEDULER_ENABLED"`
		CouponSweep  string `env:"SCHEDULER_COUPON_SWEEP"`
		EMISweep     string `env:"SCHEDULER_EMI_SWEEP"`
		StockReport  string `env:"SCHEDULER_STOCK_REPORT"`
		LimiterPrune string `env:"SCHEDULER_LIMITER_PRUNE"`
	}
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Load reads an optional .env file (path may be empty) and decodes the environment.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no safe default.
func (c *Config) Validate() error {
	switch c.Driver() {
	case DriverMongo:
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if v := c.RateLimit.RPS; v != "" {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	port := strings.TrimPrefix(c.App.Port, ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func (c *Config) LogLevel() string { return orDefault(c.App.LogLevel, "info") }

func (c *Config) Driver() string {
	return strings.ToLower(orDefault(c.Database.Driver, DriverMongo))
}

func (c *Config) MongoURI() string {
	return orDefault(c.Database.MongoURI, "mongodb://localhost:27017")
}

func (c *Config) MongoDatabase() string { return orDefault(c.Database.MongoDatabase, "vendora") }

// CORSOrigins returns the comma-separated dashboard origins, "*" when unset.
func (c *Config) CORSOrigins() []string {
	if c.App.CORSOrigins == "" {
		return []string{"*"}
	}
	var out []string
	for _, o := range strings.Split(c.App.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) RedisDB() int {
	n, err := strconv.Atoi(c.Redis.DB)
	if err != nil {
		return 0
	}
	return n
}

func (c *Config) EventsChannel() string { return orDefault(c.Redis.Channel, "vendora-events") }

func (c *Config) GeocoderBaseURL() string {
	return strings.TrimRight(orDefault(c.Geocoder.BaseURL, "https://nominatim.openstreetmap.org"), "/")
}

func (c *Config) GeocoderUserAgent() string {
	return orDefault(c.Geocoder.UserAgent, "vendora-backend/1.0")
}

func (c *Config) GeocoderTimeout() time.Duration {
	return durationOr(c.Geocoder.Timeout, 5*time.Second)
}

func (c *Config) GeocoderCacheTTL() time.Duration {
	return durationOr(c.Geocoder.CacheTTL, 24*time.Hour)
}

func (c *Config) RateLimitRPS() float64 {
	v, err := strconv.ParseFloat(c.RateLimit.RPS, 64)
	if err != nil || v <= 0 {
		return 2
	}
	return v
}

func (c *Config) RateLimitBurst() int {
	v, err := strconv.Atoi(c.RateLimit.Burst)
	if err != nil || v <= 0 {
		return 5
	}
	return v
}

func (c *Config) SchedulerEnabled() bool {
	return c.Scheduler.Enabled != "false"
}

func (c *Config) CouponSweepSpec() string { return orDefault(c.Scheduler.CouponSweep, "@every 1h") }

func (c *Config) EMISweepSpec() string { return orDefault(c.Scheduler.EMISweep, "0 1 * * *") }

func (c *Config) StockReportSpec() string { return orDefault(c.Scheduler.StockReport, "0 7 * * *") }

func (c *Config) LimiterPruneSpec() string {
	return orDefault(c.Scheduler.LimiterPrune, "@every 10m")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
