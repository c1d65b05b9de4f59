package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db.internal:3306")
	t.Setenv("DB_USER", "reporter")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "zingo")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_READER_DSN", "")
}

func TestNewAssemblesMySQLDSN(t *testing.T) {
	setBaseEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "reporter:s3cret@tcp(db.internal:3306)/zingo?parseTime=true", cfg.Database.WriterDSN())
	assert.Equal(t, cfg.Database.WriterDSN(), cfg.Database.ResolvedReaderDSN())
}

func TestNewDSNOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DSN", "reporter:other@tcp(standby:3306)/zingo?parseTime=true")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "reporter:other@tcp(standby:3306)/zingo?parseTime=true", cfg.Database.WriterDSN())
}

func TestNewReaderReplica(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_READER_DSN", "reporter:s3cret@tcp(replica:3306)/zingo?parseTime=true")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "reporter:s3cret@tcp(replica:3306)/zingo?parseTime=true", cfg.Database.ResolvedReaderDSN())
	assert.NotEqual(t, cfg.Database.WriterDSN(), cfg.Database.ResolvedReaderDSN())
}

func TestNewMissingDatabaseValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestNewEmptyPasswordIsAllowed(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_PASSWORD", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "reporter:@tcp(db.internal:3306)/zingo?parseTime=true", cfg.Database.WriterDSN())
}

func TestDatabaseValidate(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		err := Database{Driver: "oracle"}.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("non-mysql drivers need an explicit DSN", func(t *testing.T) {
		err := Database{Driver: "sqlite"}.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN")

		assert.NoError(t, Database{Driver: "sqlite", DSN: "file::memory:?cache=shared"}.validate())
	})
}

func TestNewMessagingDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.False(t, cfg.Messaging.Enabled)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
	assert.Equal(t, "reports.exports", cfg.Messaging.Kafka.Topic)
	assert.GreaterOrEqual(t, cfg.Messaging.Workers.Concurrency, 1)
}

func TestKafkaBrokerListParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KAFKA_BROKERS", " broker-a:9092, broker-b:9092 ,,")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Messaging.Kafka.Brokers)
}

func TestKafkaBrokerListFallsBackWhenBlank(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KAFKA_BROKERS", " , ,")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:9092"}, cfg.Messaging.Kafka.Brokers)
}

func TestNewKafkaDriverNeedsEnabledFlag(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MESSAGING_DRIVER", "kafka")
	t.Setenv("MESSAGING_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	// Disabled messaging always degrades to the noop client.
	assert.Equal(t, "noop", cfg.Messaging.Driver)
}

func TestObservabilityNormalize(t *testing.T) {
	o := Observability{
		LogLevel:        "  DEBUG ",
		LogEncoding:     "",
		TraceExporter:   "OTLP",
		MetricsExporter: "",
		PrometheusPath:  "metrics",
	}
	o.normalize()

	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "json", o.LogEncoding)
	assert.Equal(t, "otlp", o.TraceExporter)
	assert.Equal(t, "prometheus", o.MetricsExporter)
	assert.Equal(t, "/metrics", o.PrometheusPath)
}
