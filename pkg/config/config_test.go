package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_LIFETIME", "2h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("ALLOWED_IMAGE_TYPES", "image/png, image/jpeg")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.True(t, cfg.SessionCookieSecure)
	assert.Equal(t, int64(1024), cfg.UploadMaxSize)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, cfg.AllowedImageTypes)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SESSION_LIFETIME", "UPLOAD_MAX_SIZE", "ALLOWED_VIDEO_TYPES", "STORAGE_DRIVER", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 8*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, int64(50*1024*1024), cfg.UploadMaxSize)
	assert.Equal(t, []string{"video/mp4", "video/quicktime", "video/x-msvideo"}, cfg.AllowedVideoTypes)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
}

func TestLoadConfig_DurationInSeconds(t *testing.T) {
	t.Setenv("SESSION_LIFETIME", "28800")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, cfg.SessionLifetime)
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	content := "server_port: \"7000\"\nsession_lifetime: 30m\nadmin_username: operator\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionLifetime)
	assert.Equal(t, "operator", cfg.AdminUsername)
	// keys missing from the file keep their env value
	assert.Equal(t, "fromenv", cfg.DBName)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AdminUsername:     "admin",
			AdminPasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			SessionSecret:     "0123456789abcdef0123456789abcdef",
			SessionLifetime:   time.Hour,
			DBDriver:          DriverPostgres,
			StorageDriver:     StorageLocal,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.AdminPasswordHash = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.SessionSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.StorageDriver = "ftp"
	assert.Error(t, cfg.Validate())
}
