// Package config reads the storefront settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port      string
	APIBase   string
	AppEnv    string
	StaticDir string
	FAQPath   string

	DB        DB
	Redis     Redis
	RateLimit int
	SMTP      SMTP
	Images    Images

	// Reverse proxies, as IPs or CIDRs, whose forwarding headers are honoured.
	TrustedProxies []string

	// Delay before the storefront resets forms, notices and the cart summary.
	ResetDelay time.Duration
}

type DB struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func (s SMTP) Enabled() bool { return s.Host != "" && s.To != "" }

type Images struct {
	Base      string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLTTL    time.Duration
}

func (i Images) Remote() bool { return i.Bucket != "" && i.Endpoint != "" }

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	cfg := Config{
		Port:      get("PORT", "8000"),
		APIBase:   normalizeBase(get("API_BASE", "/guitar/")),
		AppEnv:    strings.ToLower(get("APP_ENV", "development")),
		StaticDir: get("STATIC_DIR", "public"),
		FAQPath:   get("FAQ_PATH", "info/faq.txt"),
		RateLimit: atoi(get("RATE_LIMIT_PER_MIN", "30"), 30),
		Redis: Redis{
			Addr:     get("REDIS_ADDR", ""),
			Password: get("REDIS_PASSWORD", ""),
		},
		SMTP: SMTP{
			Host:     get("SMTP_HOST", ""),
			Port:     atoi(get("SMTP_PORT", "587"), 587),
			User:     get("SMTP_USER", ""),
			Password: get("SMTP_PASS", ""),
			To:       get("NOTIFY_EMAIL", ""),
		},
		Images: Images{
			Base:      get("IMAGE_BASE", "/"),
			Bucket:    get("IMAGE_BUCKET", ""),
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			UseSSL:    get("MINIO_USE_SSL", "false") == "true",
			URLTTL:    time.Duration(atoi(get("IMAGE_URL_TTL_MIN", "60"), 60)) * time.Minute,
		},
		ResetDelay: time.Duration(atoi(get("RESET_DELAY_MS", "3000"), 3000)) * time.Millisecond,
	}
	cfg.SMTP.From = get("SMTP_FROM", cfg.SMTP.User)
	cfg.TrustedProxies = SplitList(get("TRUSTED_PROXIES", ""))

	cfg.DB = DB{
		Driver:   strings.ToLower(get("DB_DRIVER", DriverMySQL)),
		DSN:      get("DB_DSN", ""),
		Host:     get("DB_HOST", "localhost"),
		User:     get("DB_USER", "root"),
		Password: get("DB_PASSWORD", "root"),
		Name:     get("DB_NAME", "bf_guitar"),
		SSLMode:  get("DB_SSLMODE", "disable"),
	}
	defPort := "3306"
	if cfg.DB.Driver == DriverPostgres {
		defPort = "5432"
	}
	cfg.DB.Port = get("DB_PORT", defPort)
	return cfg
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

// ConnString returns the DSN for the configured driver.
func (d DB) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == DriverPostgres {
		return "host=" + d.Host + " user=" + d.User + " password=" + d.Password + " dbname=" + d.Name + " port=" + d.Port + " sslmode=" + d.SSLMode
	}
	return d.User + ":" + d.Password + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=utf8mb4&parseTime=True&loc=Local"
}

func normalizeBase(b string) string {
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	if !strings.HasSuffix(b, "/") {
		b += "/"
	}
	return b
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// SplitList splits a comma-separated setting, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
