package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "healthtech", cfg.Database.Schema)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Empty(t, cfg.Input.DoctorsFile)
}

func TestLoad_FileOverlay(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
database:
  schema: analytics
input:
  doctors_file: data/doctors.xlsx
  appointments_file: data/appointments.xlsx
`), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "analytics", cfg.Database.Schema)
	assert.Equal(t, "data/doctors.xlsx", cfg.Input.DoctorsFile)
	// Untouched keys keep their defaults.
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
database:
  schema: analytics
`), 0644))

	t.Setenv("ETL_DATABASE_SCHEMA", "from_env")
	t.Setenv("ETL_INPUT_DOCTORS_FILE", "env/doctors.xlsx")

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Database.Schema)
	assert.Equal(t, "env/doctors.xlsx", cfg.Input.DoctorsFile)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "healthtech", cfg.Database.Schema)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Input.DoctorsFile = "doctors.xlsx"
		cfg.Input.AppointmentsFile = "appointments.xlsx"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "missing doctors file", mutate: func(c *Config) { c.Input.DoctorsFile = "" }, wantErr: true},
		{name: "missing appointments file", mutate: func(c *Config) { c.Input.AppointmentsFile = "" }, wantErr: true},
		{name: "missing database url", mutate: func(c *Config) { c.Database.URL = "" }, wantErr: true},
		{name: "schema with quote is rejected", mutate: func(c *Config) { c.Database.Schema = `x";DROP TABLE` }, wantErr: true},
		{name: "schema with uppercase is rejected", mutate: func(c *Config) { c.Database.Schema = "HealthTech" }, wantErr: true},
		{name: "schema with underscore is fine", mutate: func(c *Config) { c.Database.Schema = "health_tech2" }},
		{name: "zero max conns", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "bad log output", mutate: func(c *Config) { c.Logging.Output = "syslog" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
