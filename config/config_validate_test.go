package config

import (
	"testing"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Postgres: &postgres.DBConn{},
		Auth:     &AuthConfig{},
	}
}

func TestConfigValidate_AcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().validate())
}

func TestConfigValidate_RejectsMissingAuthSection(t *testing.T) {
	cfg := validConfig()
	cfg.Auth = nil

	err := cfg.validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth section")
}

func TestConfigValidate_RejectsMissingPostgresSection(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres = nil

	err := cfg.validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres section")
}
