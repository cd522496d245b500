package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  host: "localhost"
  port: 5432
  username: "u"
  password: "p"
  name: "prod"
  auto_migrate: true
kafka:
  host: "localhost"
  port: 9092
  load_committed_topic_name: "load.committed"
redis:
  host: "localhost"
  port: 6379
loadbox:
  http_addr: ":8080"
  log_mode: "prod"
  queue_concurrency: 4
  match_cache_ttl_seconds: 30
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "u", cfg.Database.Username)
	require.True(t, cfg.Database.AutoMigrate)
	require.Equal(t, "load.committed", cfg.Kafka.LoadCommittedTopicName)
	require.Equal(t, 6379, cfg.Redis.Port)
	require.Equal(t, ":8080", cfg.LoadBox.HTTPAddr)
	require.Equal(t, 4, cfg.LoadBox.QueueConcurrency)
	require.Equal(t, 30, cfg.LoadBox.MatchCacheTTLSeconds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Username: "u", Password: "p", DBName: "prod"}
	require.Equal(t, "postgres://u:p@db:5432/prod?sslmode=disable", d.ConnString())

	d.SSLMode = "require"
	require.Equal(t, "postgres://u:p@db:5432/prod?sslmode=require", d.ConnString())
}
