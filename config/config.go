package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	LoadBox  LoadBoxConfig  `yaml:"loadbox"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`

	// AutoMigrate creates the tables the engine reads and writes if they are missing.
	// Leave off against the real production database.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// ConnString builds a pgx connection URL; ssl_mode defaults to "disable".
func (d DatabaseConfig) ConnString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

type KafkaConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	LoadCommittedTopicName string `yaml:"load_committed_topic_name"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoadBoxConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	LogMode  string `yaml:"log_mode"` // "prod" | "dev"

	// QueueConcurrency bounds how many import rows the queue resolves in parallel.
	QueueConcurrency int `yaml:"queue_concurrency"`

	// MatchCacheTTLSeconds caches queue match detail in Redis; 0 disables the cache.
	MatchCacheTTLSeconds int `yaml:"match_cache_ttl_seconds"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
