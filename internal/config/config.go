// Package config предоставляет структуры и функции для загрузки конфигурации
// из YAML-файла с переопределением через переменные окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env        string     `yaml:"env" env:"APP_ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	JWTToken   JWTToken   `yaml:"jwttoken"`
	Redis      Redis      `yaml:"redis_connection"`
	RabbitMQ   RabbitMQ   `yaml:"rabbitmq"`
}

// Storage настройки подключения к PostgreSQL.
type Storage struct {
	ConnectionString string        `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MaxOpenConns     int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns     int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime  time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
	MigrationsPath   string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// JWTToken структура для работы с access-токеном.
type JWTToken struct {
	SecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"24h"`
}

// Redis настройки кеша. Пустой адрес отключает кеш.
type Redis struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
	SearchTTL   time.Duration `yaml:"search_ttl" env-default:"10m"`
}

// RabbitMQ настройки брокера для событий аудита. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"audit"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Load читает конфиг по указанному пути. Если рядом с процессом лежит .env,
// его переменные подгружаются до чтения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: load .env: %w", op, err)
	}
	if configPath == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH, и завершает
// процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  ConnectionString: %s\n"+
			"  MaxOpenConns: %d\n"+
			"  MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  SecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Redis:\n"+
			"  Address: %s\n"+
			"  Password: %s\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n",
		c.Env,
		mask(c.Storage.ConnectionString),
		c.Storage.MaxOpenConns,
		c.Storage.MigrationsPath,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		mask(c.JWTToken.SecretKey),
		c.JWTToken.TokenTTL,
		c.Redis.Address,
		mask(c.Redis.Password),
		mask(c.RabbitMQ.URL),
		c.RabbitMQ.Exchange,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
