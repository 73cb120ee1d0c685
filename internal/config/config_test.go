package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "petcare", cfg.DBConfig.DBName)
	assert.Equal(t, "postgres", cfg.Persistence)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "https://s3.us-east-2.amazonaws.com/", cfg.Storage.BaseURL)
	assert.False(t, cfg.Workflow.SurfaceErrors)
	assert.False(t, cfg.Workflow.EnforceOwnership)
	assert.True(t, cfg.EventsEnabled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PETCARE_SERVICE_PORT", "9090")
	t.Setenv("PETCARE_STORAGE_DRIVER", "MEMORY")
	t.Setenv("PETCARE_STORAGE_BUCKET", "my-pets")
	t.Setenv("PETCARE_WORKFLOW_SURFACE_ERRORS", "true")
	t.Setenv("PETCARE_WORKFLOW_ENFORCE_OWNERSHIP", "1")
	t.Setenv("PETCARE_KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "my-pets", cfg.Storage.Bucket)
	assert.True(t, cfg.Workflow.SurfaceErrors)
	assert.True(t, cfg.Workflow.EnforceOwnership)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaConfig.Brokers)
}
