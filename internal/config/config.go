// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	GRPCHealthAddress       string `yaml:"grpc_health_address" env:"GRPC_HEALTH_ADDRESS" env-default:":50051"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Relay                   `yaml:"relay"`
	Verification            `yaml:"verification"`
	Identity                `yaml:"identity"`
	Notification            `yaml:"notification"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	ScheduleTTL  time.Duration `yaml:"schedule_ttl" env-default:"5m"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RabbitMQ настройки подключения к брокеру сообщений.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL" env-required:"true"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	Prefetch           int           `yaml:"prefetch" env-default:"10"`
}

// SMTP основной почтовый провайдер (STARTTLS + PLAIN auth).
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
}

// Relay резервный SMTP-релей, TLS и авторизация необязательны.
type Relay struct {
	RelayHost     string `yaml:"host" env:"RELAY_HOST"`
	RelayPort     int    `yaml:"port" env:"RELAY_PORT" env-default:"1025"`
	RelayUser     string `yaml:"user" env:"RELAY_USER"`
	RelayPass     string `yaml:"password" env:"RELAY_PASSWORD"`
	SkipTLSVerify bool   `yaml:"skip_tls_verify" env:"RELAY_SKIP_TLS_VERIFY"`
}

// Verification настройки кодов подтверждения.
type Verification struct {
	CodeLength          int           `yaml:"code_length" env-default:"6"`
	CodeTTL             time.Duration `yaml:"ttl" env:"VERIFICATION_CODE_TTL" env-default:"5m"`
	MaxGenerateAttempts int           `yaml:"max_generate_attempts" env-default:"5"`
	IssueForInstructors bool          `yaml:"issue_for_instructors" env:"VERIFICATION_ISSUE_FOR_INSTRUCTORS"`
}

// Identity настройки создания учётных записей.
type Identity struct {
	PasswordEntropyBytes int `yaml:"password_entropy_bytes" env:"DEFAULT_PASSWORD_LENGTH" env-default:"13"`
}

// Notification настройки отправки уведомлений.
type Notification struct {
	DefaultFromEmail string        `yaml:"default_from_email" env:"DEFAULT_FROM_EMAIL" env-default:"no-reply@adminstudio.local"`
	Providers        []string      `yaml:"providers" env:"NOTIFICATION_PROVIDERS" env-separator:"," env-default:"smtp,relay,log"`
	MaxAttempts      int           `yaml:"max_attempts" env-default:"5"`
	SendTimeout      time.Duration `yaml:"send_timeout" env-default:"15s"`
	MetricsAddress   string        `yaml:"metrics_address" env:"SENDER_METRICS_ADDRESS" env-default:":9091"`
}

// RateLimit ограничение частоты запросов на подтверждение кода.
type RateLimit struct {
	VerifyPerMinute float64 `yaml:"verify_per_minute" env-default:"10"`
	VerifyBurst     int     `yaml:"verify_burst" env-default:"5"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, сгенерированный из config/config.go
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения без завершения процесса.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Verification:\n"+
			"  CodeLength: %d\n"+
			"  TTL: %s\n"+
			"Notification:\n"+
			"  Providers: %v\n"+
			"  MaxAttempts: %d\n",
		c.Env,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CodeLength,
		c.CodeTTL,
		c.Providers,
		c.MaxAttempts,
	)
}
