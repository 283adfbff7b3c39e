package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "./calee.db", cfg.DBPath)
	assert.Equal(t, RecognitionVision, cfg.RecognitionBackend)
	assert.Equal(t, "qwen-vl-plus", cfg.RecognitionModel)
	assert.Equal(t, 30*time.Second, cfg.RecognitionTimeout)
	assert.Equal(t, 1200, cfg.DailyCalorieGoal)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, UploadLocal, cfg.UploadBackend)
	assert.True(t, cfg.SeedFoods)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":               "9000",
		"DATABASE_URL":       "sqlite+aiosqlite:///./data/calee.db",
		"DASHSCOPE_API_KEY":  "secret",
		"ALLOW_ORIGINS":      "http://a.test, http://b.test,",
		"MAX_UPLOAD_SIZE":    "2MB",
		"DAILY_CALORIE_GOAL": "1800",
		"LOG_LEVEL":          "debug",
		"SEED_FOODS":         "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "./data/calee.db", cfg.DBPath)
	assert.Equal(t, "secret", cfg.RecognitionAPIKey)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.Equal(t, int64(2_000_000), cfg.MaxUploadSize)
	assert.Equal(t, 1800, cfg.DailyCalorieGoal)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.SeedFoods)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port":        {"PORT": "http"},
		"size":        {"MAX_UPLOAD_SIZE": "lots"},
		"backend":     {"RECOGNITION_BACKEND": "magic"},
		"rekognition": {"RECOGNITION_BACKEND": "rekognition"},
		"s3":          {"UPLOAD_BACKEND": "s3"},
		"goal":        {"DAILY_CALORIE_GOAL": "0"},
		"timeout":     {"RECOGNITION_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestS3RegionFallsBackToAWSRegion(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"UPLOAD_BACKEND": "s3",
		"S3_BUCKET":      "meals",
		"AWS_REGION":     "eu-west-1",
		"S3_PUBLIC_URL":  "https://cdn.test/",
	}))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "https://cdn.test", cfg.S3PublicURL)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RECOGNITION_MODEL=qwen-vl-max\n"), 0o600))
	t.Setenv("RECOGNITION_MODEL", "")
	os.Unsetenv("RECOGNITION_MODEL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen-vl-max", cfg.RecognitionModel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
