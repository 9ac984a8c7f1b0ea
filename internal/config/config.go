package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		BasePath        string        `yaml:"base_path"` // префикс маршрутов, напр. "/api"
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver"` // postgres, mysql, sqlite
		DSN             string        `yaml:"url"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
		QueryTimeout    time.Duration `yaml:"query_timeout"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"database"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Moderation struct {
		NotifyEmails []string `yaml:"notify_emails"`
	} `yaml:"moderation"`
}

var AppConfig *Config

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Server.Env = "development"
	cfg.Server.BasePath = "/"
	cfg.Server.ShutdownTimeout = 10 * time.Second

	cfg.Database.Driver = DriverPostgres
	cfg.Database.AutoMigrate = true
	cfg.Database.QueryTimeout = 10 * time.Second
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Database.SlowThreshold = 200 * time.Millisecond

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "FSTR Pereval"
	return &cfg
}

// LoadConfig собирает конфигурацию: .env -> yaml-файл -> переменные окружения.
// path может быть пустым: тогда берется CONFIG_PATH или config/config.yaml,
// отсутствие файла не ошибка.
func LoadConfig(path string) (*Config, error) {
	// .env необязателен, как и в исходном развертывании
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = "config/config.yaml"
	}

	if err := readFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := env("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := env("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := env("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := env("SERVER_BASE_PATH"); v != "" {
		cfg.Server.BasePath = v
	}

	if v := env("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = strings.ToLower(v)
	}
	if v := env("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	} else if dsn := fstrDSN(); dsn != "" {
		cfg.Database.Driver = DriverPostgres
		cfg.Database.DSN = dsn
	}

	if v := env("SMTP_HOST"); v != "" {
		cfg.Email.Enabled = true
		cfg.Email.SMTPHost = v
	}
	if v := env("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := env("SMTP_USER"); v != "" {
		cfg.Email.SMTPUsername = v
	}
	if v := env("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := env("SMTP_FROM"); v != "" {
		cfg.Email.FromEmail = v
	}
	if v := env("MODERATION_NOTIFY"); v != "" {
		cfg.Moderation.NotifyEmails = splitList(v)
	}
}

// fstrDSN собирает DSN Postgres из переменных FSTR_DB_* исходного развертывания
func fstrDSN() string {
	host := env("FSTR_DB_HOST")
	if host == "" {
		return ""
	}
	port := env("FSTR_DB_PORT")
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env("FSTR_DB_LOGIN"), env("FSTR_DB_PASS")),
		Host:     host + ":" + port,
		Path:     "/" + env("FSTR_DB_NAME"),
		RawQuery: "sslmode=disable&connect_timeout=10",
	}
	return u.String()
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is empty (set DATABASE_URL or FSTR_DB_* variables)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Email.Enabled && c.Email.SMTPHost == "" {
		return errors.New("email enabled but smtp_host is empty")
	}
	return nil
}

// Address - адрес для http.Server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig("")
		if err != nil {
			panic(err)
		}
		return cfg
	}
	return AppConfig
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
