package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/skaterent/rentbot/internal/apperr"
)

type Config struct {
	DB        DBConfig
	Bot       BotConfig
	Rental    RentalConfig
	Reports   ReportsConfig
	Retention RetentionConfig
	Kafka     KafkaConfig
	Outbox    OutboxConfig
	Redis     RedisConfig
	OpsAddr   string
	LogLevel  string
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	AutoMigrate  bool
	QueryTimeout time.Duration
}

type BotConfig struct {
	Token          string
	Debug          bool
	HandlerTimeout time.Duration
	AdminIDs       []int64
	SupportContact string
	SessionIdle    time.Duration
}

type RentalConfig struct {
	HourlyRate       float64
	MaxActiveRentals int
}

type ReportsConfig struct {
	Dir           string
	FileRetention time.Duration
}

type RetentionConfig struct {
	LogRetentionDays  int
	CleanupLogsCron   string
	CleanupFilesCron  string
	SweepSessionsCron string
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	UpdatesTopic string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	Lease        time.Duration
}

type RedisConfig struct {
	URL        string
	RateLimit  int
	RateWindow time.Duration
}

// LoadEnvFile loads the first .env found in the working directory or its
// two parents. A missing file is not an error; it returns the path loaded.
func LoadEnvFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, p := range []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	} {
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the configuration from the environment. A missing BOT_TOKEN or a
// malformed value yields an apperr configuration error.
func Load() (*Config, error) {
	var e env

	cfg := &Config{
		DB: DBConfig{
			Host:         e.getString("DB_HOST", "localhost"),
			Port:         e.getInt("DB_PORT", 5432),
			User:         e.getString("DB_USER", "postgres"),
			Password:     e.getString("DB_PASSWORD", "postgres"),
			Name:         e.getString("DB_NAME", "skates"),
			AutoMigrate:  e.getBool("DB_AUTO_MIGRATE", false),
			QueryTimeout: e.getDuration("QUERY_TIMEOUT", 5*time.Second),
		},
		Bot: BotConfig{
			Token:          e.getString("BOT_TOKEN", ""),
			Debug:          e.getBool("BOT_DEBUG", false),
			HandlerTimeout: e.getDuration("HANDLER_TIMEOUT", 30*time.Second),
			AdminIDs:       e.getInt64List("ADMIN_IDS"),
			SupportContact: e.getString("SUPPORT_CONTACT", "@skaterent_support"),
			SessionIdle:    e.getDuration("SESSION_IDLE", 30*time.Minute),
		},
		Rental: RentalConfig{
			HourlyRate:       e.getFloat("DEFAULT_HOURLY_RATE", 300),
			MaxActiveRentals: e.getInt("MAX_ACTIVE_RENTALS", 0),
		},
		Reports: ReportsConfig{
			Dir:           e.getString("REPORTS_DIR", "temp"),
			FileRetention: e.getDuration("FILE_RETENTION", 24*time.Hour),
		},
		Retention: RetentionConfig{
			LogRetentionDays:  e.getInt("LOG_RETENTION_DAYS", 30),
			CleanupLogsCron:   e.getString("CLEANUP_LOGS_CRON", "0 0 3 * * *"),
			CleanupFilesCron:  e.getString("CLEANUP_FILES_CRON", "0 0 * * * *"),
			SweepSessionsCron: e.getString("SWEEP_SESSIONS_CRON", "0 */5 * * * *"),
		},
		Kafka: KafkaConfig{
			Brokers:      e.getList("KAFKA_BROKERS"),
			Topic:        e.getString("KAFKA_TOPIC", "rental_events"),
			UpdatesTopic: e.getString("KAFKA_UPDATES_TOPIC", "bot_updates"),
		},
		Outbox: OutboxConfig{
			PollInterval: e.getDuration("OUTBOX_POLL_INTERVAL", time.Second),
			BatchSize:    e.getInt("OUTBOX_BATCH_SIZE", 50),
			MaxAttempts:  e.getInt("OUTBOX_MAX_ATTEMPTS", 5),
			Lease:        e.getDuration("OUTBOX_LEASE", time.Minute),
		},
		Redis: RedisConfig{
			URL:        e.getString("REDIS_URL", ""),
			RateLimit:  e.getInt("RATE_LIMIT", 30),
			RateWindow: e.getDuration("RATE_WINDOW", time.Minute),
		},
		OpsAddr:  e.getString("OPS_ADDR", ":9090"),
		LogLevel: e.getString("LOG_LEVEL", "info"),
	}

	if e.err != nil {
		return nil, e.err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConsumer reads only the settings of the audit consumer. KAFKA_BROKERS is
// required.
func LoadConsumer() (*Config, error) {
	var e env

	cfg := &Config{
		Kafka: KafkaConfig{
			Brokers:      e.getList("KAFKA_BROKERS"),
			Topic:        e.getString("KAFKA_TOPIC", "rental_events"),
			UpdatesTopic: e.getString("KAFKA_UPDATES_TOPIC", "bot_updates"),
		},
		LogLevel: e.getString("LOG_LEVEL", "info"),
	}
	if e.err != nil {
		return nil, e.err
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, apperr.Configuration("KAFKA_BROKERS", "is required")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Bot.Token == "":
		return apperr.Configuration("BOT_TOKEN", "is required")
	case cfg.Rental.HourlyRate <= 0:
		return apperr.Configuration("DEFAULT_HOURLY_RATE", "must be positive")
	case cfg.Rental.MaxActiveRentals < 0:
		return apperr.Configuration("MAX_ACTIVE_RENTALS", "must not be negative")
	case cfg.Retention.LogRetentionDays <= 0:
		return apperr.Configuration("LOG_RETENTION_DAYS", "must be positive")
	case cfg.Outbox.BatchSize <= 0:
		return apperr.Configuration("OUTBOX_BATCH_SIZE", "must be positive")
	case cfg.Outbox.MaxAttempts <= 0:
		return apperr.Configuration("OUTBOX_MAX_ATTEMPTS", "must be positive")
	case cfg.Redis.URL != "" && cfg.Redis.RateLimit <= 0:
		return apperr.Configuration("RATE_LIMIT", "must be positive")
	}
	return nil
}

// env reads typed variables and keeps the first parse error.
type env struct {
	err error
}

func (e *env) getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) getInt(key string, def int) int {
	v := e.getString(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, "must be an integer")
		return def
	}
	return n
}

func (e *env) getFloat(key string, def float64) float64 {
	v := e.getString(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, "must be a number")
		return def
	}
	return f
}

func (e *env) getBool(key string, def bool) bool {
	v := e.getString(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, "must be a boolean")
		return def
	}
	return b
}

func (e *env) getDuration(key string, def time.Duration) time.Duration {
	v := e.getString(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.fail(key, "must be a positive duration")
		return def
	}
	return d
}

func (e *env) getList(key string) []string {
	var out []string
	for _, part := range strings.Split(e.getString(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *env) getInt64List(key string) []int64 {
	var out []int64
	for _, part := range e.getList(key) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			e.fail(key, "must be a comma-separated list of integers")
			return nil
		}
		out = append(out, id)
	}
	return out
}

func (e *env) fail(key, reason string) {
	if e.err == nil {
		e.err = apperr.Configuration(key, reason)
	}
}
