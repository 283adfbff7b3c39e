// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	RecognitionVision      = "vision"
	RecognitionRekognition = "rekognition"

	UploadLocal = "local"
	UploadS3    = "s3"
)

type Config struct {
	Host   string
	Port   int
	DBPath string

	RecognitionBackend string
	RecognitionAPIKey  string
	RecognitionAPIURL  string
	RecognitionModel   string
	RecognitionTimeout time.Duration
	AWSRegion          string

	DailyCalorieGoal int
	AllowOrigins     []string

	MaxUploadSize int64
	UploadDir     string
	UploadBackend string
	S3Bucket      string
	S3Region      string
	S3PublicURL   string

	SeedFoods bool
	LogLevel  slog.Level
}

// Load reads envFile (when it exists) into the process environment and
// builds a Config from it. Variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Host:               env("HOST", "0.0.0.0"),
		DBPath:             databasePath(env("DATABASE_PATH", env("DATABASE_URL", "./calee.db"))),
		RecognitionBackend: env("RECOGNITION_BACKEND", RecognitionVision),
		RecognitionAPIKey:  env("RECOGNITION_API_KEY", getenv("DASHSCOPE_API_KEY")),
		RecognitionAPIURL:  env("RECOGNITION_API_URL", env("DASHSCOPE_API_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1")),
		RecognitionModel:   env("RECOGNITION_MODEL", "qwen-vl-plus"),
		AWSRegion:          env("AWS_REGION", ""),
		AllowOrigins:       splitList(env("ALLOW_ORIGINS", "*")),
		UploadDir:          env("UPLOAD_DIR", "./uploads"),
		UploadBackend:      env("UPLOAD_BACKEND", UploadLocal),
		S3Bucket:           env("S3_BUCKET", ""),
		S3PublicURL:        strings.TrimRight(env("S3_PUBLIC_URL", ""), "/"),
	}
	cfg.S3Region = env("S3_REGION", cfg.AWSRegion)

	var err error
	if cfg.Port, err = strconv.Atoi(env("PORT", "8000")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.RecognitionTimeout, err = time.ParseDuration(env("RECOGNITION_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid RECOGNITION_TIMEOUT: %w", err)
	}
	if cfg.DailyCalorieGoal, err = strconv.Atoi(env("DAILY_CALORIE_GOAL", "1200")); err != nil {
		return nil, fmt.Errorf("invalid DAILY_CALORIE_GOAL: %w", err)
	}
	size, err := humanize.ParseBytes(env("MAX_UPLOAD_SIZE", "5MiB"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	cfg.MaxUploadSize = int64(size)
	if cfg.SeedFoods, err = strconv.ParseBool(env("SEED_FOODS", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_FOODS: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.RecognitionBackend {
	case RecognitionVision:
	case RecognitionRekognition:
		if c.AWSRegion == "" {
			return errors.New("AWS_REGION is required for the rekognition backend")
		}
	default:
		return fmt.Errorf("unknown RECOGNITION_BACKEND %q", c.RecognitionBackend)
	}

	switch c.UploadBackend {
	case UploadLocal:
	case UploadS3:
		if c.S3Bucket == "" || c.S3Region == "" {
			return errors.New("S3_BUCKET and S3_REGION (or AWS_REGION) are required for the s3 upload backend")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}

	if c.DailyCalorieGoal <= 0 {
		return fmt.Errorf("DAILY_CALORIE_GOAL must be positive, got %d", c.DailyCalorieGoal)
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// databasePath accepts a bare path or a SQLAlchemy-style sqlite URL.
func databasePath(v string) string {
	for _, prefix := range []string{"sqlite+aiosqlite:///", "sqlite:///", "file:"} {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
