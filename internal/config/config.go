package config

import (
	"strings"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/config"
)

// StorageConfig selects and configures the photo object store.
type StorageConfig struct {
	// Driver is "s3" or "memory".
	Driver       string
	Region       string
	Bucket       string
	BaseURL      string
	Endpoint     string
	UsePathStyle bool
}

// WorkflowConfig tunes the pet workflow routes.
type WorkflowConfig struct {
	SurfaceErrors    bool
	EnforceOwnership bool
}

// ServiceConfig holds all configuration for the petcare service. Persistence
// is "postgres" or "memory".
type ServiceConfig struct {
	Port          string
	AppEnv        string
	Persistence   string
	DBConfig      config.DatabaseConfig
	JWTConfig     config.JWTConfig
	KafkaConfig   config.KafkaConfig
	EventsEnabled bool
	Storage       StorageConfig
	Workflow      WorkflowConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("PETCARE")
	if err != nil {
		return nil, err
	}

	v.SetDefault("DB_NAME", "petcare")
	v.SetDefault("PERSISTENCE", "postgres")
	v.SetDefault("EVENTS_ENABLED", true)
	v.SetDefault("STORAGE_DRIVER", "s3")
	v.SetDefault("STORAGE_REGION", "us-east-2")
	v.SetDefault("STORAGE_BUCKET", "catcollector-pets")
	v.SetDefault("STORAGE_BASE_URL", "https://s3.us-east-2.amazonaws.com/")
	v.SetDefault("STORAGE_USE_PATH_STYLE", false)
	v.SetDefault("WORKFLOW_SURFACE_ERRORS", false)
	v.SetDefault("WORKFLOW_ENFORCE_OWNERSHIP", false)

	return &ServiceConfig{
		Port:          config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:        config.GetAppEnv(v),
		Persistence:   strings.ToLower(v.GetString("PERSISTENCE")),
		DBConfig:      config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:     config.LoadJWTConfig(v),
		KafkaConfig:   config.LoadKafkaConfig(v),
		EventsEnabled: v.GetBool("EVENTS_ENABLED"),
		Storage: StorageConfig{
			Driver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Region:       v.GetString("STORAGE_REGION"),
			Bucket:       v.GetString("STORAGE_BUCKET"),
			BaseURL:      v.GetString("STORAGE_BASE_URL"),
			Endpoint:     v.GetString("STORAGE_ENDPOINT"),
			UsePathStyle: v.GetBool("STORAGE_USE_PATH_STYLE"),
		},
		Workflow: WorkflowConfig{
			SurfaceErrors:    v.GetBool("WORKFLOW_SURFACE_ERRORS"),
			EnforceOwnership: v.GetBool("WORKFLOW_ENFORCE_OWNERSHIP"),
		},
	}, nil
}
