package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/internal/paths"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENVIRONMENT", "NODE_ENV", "LOG_LEVEL", "LOG_FORMAT",
		"TIFFIN_STATIC_DIR", "TIFFIN_API_URL", paths.EnvConfigDir, paths.EnvDataDir,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Options{ConfigDir: dir, DataDir: filepath.Join(dir, "data"), EnvFile: missingEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, "tiffin.db", cfg.DBFile)
	assert.Equal(t, []string{DefaultCORSOrigin}, cfg.CORSOrigins)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":5000", cfg.Addr())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yamlData := "port: 6000\nenvironment: staging\ndata_dir: " + filepath.Join(dir, "from-yaml") + "\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlData), 0o644))

	t.Run("config.yaml over defaults", func(t *testing.T) {
		cfg, err := Load(Options{ConfigDir: dir, EnvFile: missingEnvFile(t)})
		require.NoError(t, err)
		assert.Equal(t, 6000, cfg.Port)
		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, filepath.Join(dir, "from-yaml"), cfg.DataDir)
	})

	t.Run("environment over config.yaml", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		t.Setenv("NODE_ENV", "production")
		cfg, err := Load(Options{ConfigDir: dir, EnvFile: missingEnvFile(t)})
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Port)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("flags over everything", func(t *testing.T) {
		t.Setenv(paths.EnvDataDir, filepath.Join(dir, "from-env"))
		cfg, err := Load(Options{ConfigDir: dir, DataDir: filepath.Join(dir, "from-flag"), APIURL: "http://api.test/api", EnvFile: missingEnvFile(t)})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "from-flag"), cfg.DataDir)
		assert.Equal(t, "http://api.test/api", cfg.APIURL)
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=5123\nLOG_FORMAT=json\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := Load(Options{ConfigDir: dir, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 5123, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")
	_, err := Load(Options{ConfigDir: t.TempDir(), EnvFile: missingEnvFile(t)})
	assert.ErrorContains(t, err, "out of range")
}

func TestLoadRejectsBadCORSOrigin(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cors_origins:\n  - localhost:3000\n"), 0o644))

	_, err := Load(Options{ConfigDir: dir, EnvFile: missingEnvFile(t)})
	assert.ErrorContains(t, err, "invalid cors origin 'localhost:3000'")
}

func TestParseOrigins(t *testing.T) {
	got, err := ParseOrigins([]string{" http://localhost:3000 ", "", "https://tiffin.example", "*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://tiffin.example", "*"}, got)

	for _, bad := range []string{"localhost:3000", "ftp://host", "tiffin.example"} {
		_, err := ParseOrigins([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"5000", 5000, false},
		{" 80 ", 80, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePort(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "cfg")

	path, wrote, err := WriteDefault(dir, "/var/lib/tiffin")
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.FileExists(t, path)

	cfg, err := Load(Options{ConfigDir: dir, EnvFile: missingEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tiffin", cfg.DataDir)
	assert.Equal(t, DefaultPort, cfg.Port)

	_, wrote, err = WriteDefault(dir, "/elsewhere")
	require.NoError(t, err)
	assert.False(t, wrote, "existing file is kept")
}
