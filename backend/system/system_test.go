package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LISTEN_ADDR", "LOG_DIR", "FRONTEND_DIR",
		"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"JWT_SECRET", "JWT_EXP_MIN", "BCM_AES_KEY", "BCM_AES_SALT",
		"SEED_BUSINESS_NUMBER", "SEED_PASSWORD", "SEED_ORG_NAME", "SEED_ORG_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "nanum.db", cfg.DB.Path)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "beautifulstore", cfg.LegacyKey)
	assert.Equal(t, "basecamp", cfg.LegacySalt)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Seed.Enabled())
	assert.Equal(t, "기본 기관", cfg.Seed.OrgName)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "nanum")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "nanum")
	t.Setenv("JWT_EXP_MIN", "15")
	t.Setenv("SEED_BUSINESS_NUMBER", "1234567890")
	t.Setenv("SEED_PASSWORD", "initial-pass")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 3307, cfg.DB.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.True(t, cfg.Seed.Enabled())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("mysql without credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")
		t.Setenv("DB_HOST", "db.internal")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Equal(t, "missing required environment variables: DB_NAME, DB_PASSWORD, DB_USER", err.Error())
	})
	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "oracle")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})
	t.Run("non-positive expiry", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JWT_EXP_MIN", "0")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "JWT_EXP_MIN")
	})
	t.Run("production default secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

func TestDailyFileRotates(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	f := &dailyFile{dir: dir, prefix: "test", now: func() time.Time { return day }}
	defer f.Close()

	_, err := f.Write([]byte("first\n"))
	require.NoError(t, err)
	day = day.Add(2 * time.Minute)
	_, err = f.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	first, err := os.ReadFile(filepath.Join(dir, "test-2024-01-31.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))
	second, err := os.ReadFile(filepath.Join(dir, "test-2024-02-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(second))
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(dir, "production"))
	Info("seeded %s", "org-1")
	Debug("hidden")
	Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"seeded org-1"`)
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestOpenDatabaseSQLite(t *testing.T) {
	db, err := OpenDatabase(DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}
