package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "exports", cfg.Paths.ExportsDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
paths:
  data_dir: /srv/aadhaar/data
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFromFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "/srv/aadhaar/data", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Unset fields still fall back to defaults.
	assert.Equal(t, "exports", cfg.Paths.ExportsDir)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("paths:\n  data_dir: from-file\n"), 0644))

	t.Setenv("AADHAAR_PATHS_DATA_DIR", "from-env")

	cfg, err := LoadFromFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Paths.DataDir)
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad level", yaml: "logging:\n  level: verbose\n"},
		{name: "bad format", yaml: "logging:\n  format: xml\n"},
		{name: "bad output", yaml: "logging:\n  output: syslog\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.yaml), 0644))

			_, err := LoadFromFile(configFile)
			assert.Error(t, err)
		})
	}
}

func TestCategoryDir(t *testing.T) {
	p := PathsConfig{DataDir: filepath.Join("srv", "data")}
	assert.Equal(t, filepath.Join("srv", "data", "api_data_aadhar_enrolment"),
		p.CategoryDir("api_data_aadhar_enrolment"))
}
