package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// HTTP holds HTTP server configuration.
type HTTP struct {
	Host string
	Port int
}

// Database holds connection settings for the order store. Credentials
// come in as the four secret values the platform provisions (host,
// user, password, database name); DSN overrides them when set, and
// ReaderDSN points reads at a replica when one exists.
type Database struct {
	Driver          string
	Host            string
	User            string
	Password        string
	Name            string
	DSN             string
	ReaderDSN       string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
}

// Messaging configures the export-event bus.
type Messaging struct {
	Driver        string
	Enabled       bool
	Kafka         Kafka
	ConsumerGroup string
	Workers       Worker
}

// Kafka holds Kafka connection details.
type Kafka struct {
	Brokers        []string
	ClientID       string
	Topic          string
	CommitInterval time.Duration
	MinBytes       int
	MaxBytes       int
	ConnectTimeout time.Duration
}

// Worker configures background consumer concurrency.
type Worker struct {
	Enabled      bool
	PollInterval time.Duration
	Concurrency  int
}

// Observability contains logging, tracing, and metrics configuration.
type Observability struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	LogEncoding     string
	EnableTracing   bool
	TraceExporter   string
	TraceEndpoint   string
	TraceInsecure   bool
	EnableMetrics   bool
	MetricsExporter string
	PrometheusPath  string
}

// Config wraps all application configuration knobs.
type Config struct {
	HTTP          HTTP
	Database      Database
	Messaging     Messaging
	Observability Observability
}

// Module wires the configuration loader into the Fx graph.
var Module = fx.Provide(New)

var loadEnvOnce sync.Once

// New builds a Config from environment variables or defaults. A
// missing or inconsistent configuration is fatal here, before any
// query can run.
func New() (Config, error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Config{
		HTTP: HTTP{
			Host: envString("HTTP_HOST", "0.0.0.0"),
			Port: envInt("HTTP_PORT", 8080),
		},
		Database: Database{
			Driver:          envString("DB_DRIVER", "mysql"),
			Host:            envString("DB_HOST", ""),
			User:            envString("DB_USER", ""),
			Password:        envString("DB_PASSWORD", ""),
			Name:            envString("DB_NAME", ""),
			DSN:             envString("DB_DSN", ""),
			ReaderDSN:       envString("DB_READER_DSN", ""),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: envDuration("DB_MAX_CONN_LIFETIME", time.Minute*5),
		},
		Messaging: Messaging{
			Driver:  envString("MESSAGING_DRIVER", "noop"),
			Enabled: envBool("MESSAGING_ENABLED", false),
			Kafka: Kafka{
				Brokers:        envBrokerList("KAFKA_BROKERS", []string{"127.0.0.1:9092"}),
				ClientID:       envString("KAFKA_CLIENT_ID", "zingostats-service"),
				Topic:          envString("KAFKA_TOPIC", "reports.exports"),
				CommitInterval: envDuration("KAFKA_COMMIT_INTERVAL", time.Second),
				MinBytes:       envInt("KAFKA_MIN_BYTES", 10e3),
				MaxBytes:       envInt("KAFKA_MAX_BYTES", 10e6),
				ConnectTimeout: envDuration("KAFKA_CONNECT_TIMEOUT", 5*time.Second),
			},
			ConsumerGroup: envString("KAFKA_CONSUMER_GROUP", "zingostats-worker"),
			Workers: Worker{
				Enabled:      envBool("WORKER_ENABLED", true),
				PollInterval: envDuration("WORKER_POLL_INTERVAL", time.Second),
				Concurrency:  envInt("WORKER_CONCURRENCY", 1),
			},
		},
		Observability: Observability{
			ServiceName:     envString("OBS_SERVICE_NAME", "zingostats"),
			Environment:     envString("OBS_ENVIRONMENT", "local"),
			LogLevel:        envString("OBS_LOG_LEVEL", "info"),
			LogEncoding:     envString("OBS_LOG_ENCODING", "json"),
			EnableTracing:   envBool("OBS_ENABLE_TRACING", false),
			TraceExporter:   envString("OBS_TRACE_EXPORTER", "stdout"),
			TraceEndpoint:   envString("OBS_OTLP_ENDPOINT", "localhost:4317"),
			TraceInsecure:   envBool("OBS_OTLP_INSECURE", true),
			EnableMetrics:   envBool("OBS_ENABLE_METRICS", true),
			MetricsExporter: envString("OBS_METRICS_EXPORTER", "prometheus"),
			PrometheusPath:  envString("OBS_PROMETHEUS_PATH", "/metrics"),
		},
	}

	if cfg.HTTP.Port <= 0 {
		return Config{}, fmt.Errorf("invalid HTTP port: %d", cfg.HTTP.Port)
	}

	if err := cfg.Database.validate(); err != nil {
		return Config{}, err
	}

	cfg.Observability.normalize()

	if !cfg.Messaging.Enabled {
		cfg.Messaging.Driver = "noop"
	}

	switch cfg.Messaging.Driver {
	case "kafka", "noop":
		// supported
	default:
		return Config{}, fmt.Errorf("unsupported messaging driver: %s", cfg.Messaging.Driver)
	}

	if cfg.Messaging.Driver == "kafka" {
		if len(cfg.Messaging.Kafka.Brokers) == 0 {
			return Config{}, fmt.Errorf("KAFKA_BROKERS must be provided")
		}
		if cfg.Messaging.Kafka.Topic == "" {
			return Config{}, fmt.Errorf("KAFKA_TOPIC must be provided")
		}
		if cfg.Messaging.ConsumerGroup == "" {
			return Config{}, fmt.Errorf("KAFKA_CONSUMER_GROUP must be provided")
		}
	}

	if cfg.Messaging.Workers.Concurrency <= 0 {
		cfg.Messaging.Workers.Concurrency = 1
	}
	if cfg.Messaging.Workers.PollInterval <= 0 {
		cfg.Messaging.Workers.PollInterval = time.Second
	}

	return cfg, nil
}

func (d Database) validate() error {
	switch d.Driver {
	case "mysql", "postgres", "sqlite":
		// supported
	default:
		return fmt.Errorf("unsupported database driver: %s", d.Driver)
	}

	if d.DSN != "" {
		return nil
	}
	if d.Driver != "mysql" {
		return fmt.Errorf("DB_DSN must be set for driver %s", d.Driver)
	}

	var missing []string
	if d.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if d.User == "" {
		missing = append(missing, "DB_USER")
	}
	if d.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing database configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// WriterDSN resolves the primary connection string. For MySQL the DSN
// is assembled from the four provisioned secret values unless DB_DSN
// overrides it.
func (d Database) WriterDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
}

// ResolvedReaderDSN falls back to the writer when no replica is set.
func (d Database) ResolvedReaderDSN() string {
	if d.ReaderDSN != "" {
		return d.ReaderDSN
	}
	return d.WriterDSN()
}

func (o *Observability) normalize() {
	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	o.LogEncoding = strings.ToLower(strings.TrimSpace(o.LogEncoding))
	if o.LogEncoding == "" {
		o.LogEncoding = "json"
	}
	o.TraceExporter = strings.ToLower(strings.TrimSpace(o.TraceExporter))
	if o.TraceExporter == "" {
		o.TraceExporter = "stdout"
	}
	o.MetricsExporter = strings.ToLower(strings.TrimSpace(o.MetricsExporter))
	if o.MetricsExporter == "" {
		o.MetricsExporter = "prometheus"
	}
	if o.PrometheusPath == "" {
		o.PrometheusPath = "/metrics"
	} else if !strings.HasPrefix(o.PrometheusPath, "/") {
		o.PrometheusPath = "/" + o.PrometheusPath
	}
}
