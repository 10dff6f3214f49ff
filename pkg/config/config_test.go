package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "auto_train_status.csv", config.StorePath)
	assert.Equal(t, "https://api-v3.amtraker.com/v3", config.AmtrakerURL)
	assert.Equal(t, 15*time.Second, config.FetchTimeout())
	assert.Equal(t, 0, config.OnTimeGraceMinutes)
	assert.Equal(t, "America/New_York", config.Timezone)
	assert.Equal(t, ":8080", config.Listen)

	location, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", location.String())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railstat.yaml")
	contents := "StorePath: /var/lib/railstat/status.csv\nOnTimeGraceMinutes: 10\nFetchTimeoutSeconds: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/railstat/status.csv", config.StorePath)
	assert.Equal(t, 10, config.OnTimeGraceMinutes)
	assert.Equal(t, 30*time.Second, config.FetchTimeout())

	// Values the file never mentions keep their defaults
	assert.Equal(t, "https://api-v3.amtraker.com/v3", config.AmtrakerURL)
	assert.Equal(t, ":8080", config.Listen)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("StorePath: from-file.csv\n"), 0644))

	t.Setenv("RAILSTAT_STORE_PATH", "from-environment.csv")
	t.Setenv("RAILSTAT_LISTEN", ":9090")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-environment.csv", config.StorePath)
	assert.Equal(t, ":9090", config.Listen)
}

func TestLoadConfigPathFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Timezone: America/Chicago\n"), 0644))

	t.Setenv("RAILSTAT_CONFIG", path)

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", config.Timezone)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("StorePath: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
