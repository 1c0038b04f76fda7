// Package config loads server settings from defaults, an optional YAML file
// and HUBRWA_-prefixed environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "HUBRWA"

// Ledger backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	JWTMaxAge       time.Duration
	AdminToken      string
	// Requests per RateWindow; zero disables the limiter.
	ReadRateLimit  int
	WriteRateLimit int
	RateWindow     time.Duration
}

// RedisConfig holds connection settings for the credential cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the ledger event relay. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	PollInterval      time.Duration
	BatchSize         int
}

type Config struct {
	Server        Server
	LogLevel      string
	LedgerBackend string
	DatabaseURL   string
	LedgerTimeout time.Duration
	Redis         RedisConfig
	Kafka         KafkaConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("jwt_max_age", 5*time.Minute)
	v.SetDefault("admin_token", "")
	v.SetDefault("read_rate_limit", 600)
	v.SetDefault("write_rate_limit", 60)
	v.SetDefault("rate_window", time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("ledger_backend", BackendMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("ledger_timeout", 5*time.Second)
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_min_idle_conns", 2)
	v.SetDefault("redis_dial_timeout", 5*time.Second)
	v.SetDefault("redis_read_timeout", 3*time.Second)
	v.SetDefault("redis_write_timeout", 3*time.Second)
	v.SetDefault("credential_cache_ttl", 30*time.Second)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "hubrwa.ledger-events")
	v.SetDefault("kafka_partitions", 3)
	v.SetDefault("kafka_replication_factor", 1)
	v.SetDefault("outbox_poll_interval", time.Second)
	v.SetDefault("outbox_batch_size", 100)
}

// Load reads the configuration. configFile may be empty.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Server: Server{
			Addr:            v.GetString("addr"),
			RequestTimeout:  v.GetDuration("request_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
			JWTMaxAge:       v.GetDuration("jwt_max_age"),
			AdminToken:      v.GetString("admin_token"),
			ReadRateLimit:   v.GetInt("read_rate_limit"),
			WriteRateLimit:  v.GetInt("write_rate_limit"),
			RateWindow:      v.GetDuration("rate_window"),
		},
		LogLevel:      v.GetString("log_level"),
		LedgerBackend: strings.ToLower(v.GetString("ledger_backend")),
		DatabaseURL:   v.GetString("database_url"),
		LedgerTimeout: v.GetDuration("ledger_timeout"),
		Redis: RedisConfig{
			URL:          v.GetString("redis_url"),
			PoolSize:     v.GetInt("redis_pool_size"),
			MinIdleConns: v.GetInt("redis_min_idle_conns"),
			DialTimeout:  v.GetDuration("redis_dial_timeout"),
			ReadTimeout:  v.GetDuration("redis_read_timeout"),
			WriteTimeout: v.GetDuration("redis_write_timeout"),
			CacheTTL:     v.GetDuration("credential_cache_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(v.GetString("kafka_brokers")),
			Topic:             v.GetString("kafka_topic"),
			Partitions:        v.GetInt32("kafka_partitions"),
			ReplicationFactor: int16(v.GetInt("kafka_replication_factor")),
			PollInterval:      v.GetDuration("outbox_poll_interval"),
			BatchSize:         v.GetInt("outbox_batch_size"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.LedgerBackend {
	case BackendMemory:
		if len(c.Kafka.Brokers) > 0 {
			return fmt.Errorf("kafka relay requires the %s ledger backend", BackendPostgres)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("ledger backend %s requires database_url", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown ledger backend %q", c.LedgerBackend)
	}
	if c.Server.ReadRateLimit < 0 || c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if (c.Server.ReadRateLimit > 0 || c.Server.WriteRateLimit > 0) && c.Server.RateWindow <= 0 {
		return fmt.Errorf("rate_window must be positive when a rate limit is set")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka_topic is required when kafka_brokers is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
