package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 開発用のJWTシークレット（GO_ENV=dev のときだけ使う）
const devJWTSecret = "dev_secret_change_me"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	JWTSecret      string        // JWT署名シークレット
	AccessTokenTTL time.Duration // アクセストークンの有効期限

	Storage   string // 商品・ユーザーの保存先 memory/postgres
	CartStore string // カートの保存先 memory/redis/postgres

	DatabaseURL      string // あれば POSTGRES_* より優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	CartSessions int           // 同時に保持するカート数
	CartTTL      time.Duration // redis のカート保持期間
	SeedPassword string        // 初期ユーザーのパスワード

	FEURL string // フロントURL（CORSで使う）
}

// Loadは .env（あれば）と環境変数から読む
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env not loaded, using environment", slog.Any("err", err))
	}
	return FromEnv()
}

// FromEnv は環境変数だけから読む
func FromEnv() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	sessions, err := atoiOr("CART_SESSIONS", 1024)
	if err != nil {
		return Config{}, err
	}
	cartTTL, err := durationOr("CART_TTL", 30*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	accessTTL, err := durationOr("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: accessTTL,

		Storage:   strings.ToLower(getenv("STORAGE", StorageMemory)),
		CartStore: strings.ToLower(getenv("CART_STORE", StorageMemory)),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CartSessions: sessions,
		CartTTL:      cartTTL,
		SeedPassword: getenv("SEED_PASSWORD", "password123"),

		FEURL: getenv("FE_URL", "http://localhost:5173"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	switch cfg.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE must be memory or postgres: %q", cfg.Storage)
	}
	switch cfg.CartStore {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("CART_STORE must be memory, redis or postgres: %q", cfg.CartStore)
	}
	if cfg.CartSessions < 1 {
		return Config{}, fmt.Errorf("CART_SESSIONS must be positive")
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.GoEnv == "dev" || c.GoEnv == "development" || c.GoEnv == "test"
}

// postgres を使うか
func (c Config) NeedsPostgres() bool {
	return c.Storage == StoragePostgres || c.CartStore == StoragePostgres
}

// DSN は DATABASE_URL を優先し、無ければ POSTGRES_* から組み立てる。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// :8080 の形にする
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
