package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Services   Services   `yaml:"services"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DBName   string `yaml:"dbname" env-default:"events"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

// Services holds the base URLs and the shared retry budget for the
// downstream accessors. Retries live here, in the accessor layer; the
// engine itself never retries.
type Services struct {
	CategoryURL string        `yaml:"category_url" env-default:"http://localhost:8081"`
	UserURL     string        `yaml:"user_url" env-default:"http://localhost:8082"`
	RequestURL  string        `yaml:"request_url" env-default:"http://localhost:8083"`
	CommentURL  string        `yaml:"comment_url" env-default:"http://localhost:8084"`
	StatsURL    string        `yaml:"stats_url" env-default:"http://localhost:9090"`
	Timeout     time.Duration `yaml:"timeout" env-default:"2s"`
	MaxRetries  uint64        `yaml:"max_retries" env-default:"2"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
