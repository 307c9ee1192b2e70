package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "2.0.0", cfg.Version)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8000, cfg.Server.Port)
				assert.False(t, cfg.Server.TLS.Enabled)
				assert.False(t, cfg.Database.Enabled())
				assert.Equal(t, "", cfg.Generation.APIKey)
				assert.Equal(t, "gemini-1.5-flash", cfg.Generation.Model)
				assert.Equal(t, 15*time.Second, cfg.Generation.Timeout)
				assert.Equal(t, 1, cfg.Generation.MaxRetries)
				assert.Equal(t, 200, cfg.Pipeline.LogCapacity)
				assert.Equal(t, 50, cfg.Pipeline.LogsPageSize)
				assert.Equal(t, 20, cfg.Pipeline.CycleLogsPageSize)
				assert.Equal(t, 300, cfg.Pipeline.RetrievalWindow)
				assert.Equal(t, int64(10*1024*1024), cfg.Pipeline.MaxUploadBytes)
				assert.Equal(t, int64(100), cfg.Pipeline.MinUploadBytes)
				assert.Equal(t, 50, cfg.Pipeline.MinCorpusChars)
				assert.Equal(t, 15*time.Second, cfg.Pipeline.KeepaliveInterval)
				assert.Equal(t, time.Minute, cfg.Pipeline.WaitingLogEvery)
				assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
			},
		},
		{
			name: "database from DB_HOST",
			envVars: map[string]string{
				"DB_HOST":     "db.internal",
				"DB_PORT":     "5433",
				"DB_USER":     "swarm",
				"DB_PASSWORD": "secret",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Database.Enabled())
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "swarm", cfg.Database.User)
				assert.Equal(t, "nexus", cfg.Database.Database)
			},
		},
		{
			name: "database from DATABASE_URL",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://u:p@pg.example.com:6543/nexus?sslmode=require",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Database.Enabled())
				assert.Equal(t, "postgres://u:p@pg.example.com:6543/nexus?sslmode=require", cfg.Database.DSN())
				assert.Equal(t, "host=pg.example.com port=6543 database=nexus", cfg.Database.LogString())
			},
		},
		{
			name: "generation configuration",
			envVars: map[string]string{
				"GEMINI_API_KEY":     "key-123",
				"GEMINI_BASE_URL":    "http://localhost:9999/v1",
				"GEMINI_TIMEOUT":     "5s",
				"GEMINI_MAX_RETRIES": "0",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "key-123", cfg.Generation.APIKey)
				assert.Equal(t, "http://localhost:9999/v1", cfg.Generation.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.Generation.Timeout)
				assert.Equal(t, 0, cfg.Generation.MaxRetries)
			},
		},
		{
			name: "allowed origins list",
			envVars: map[string]string{
				"ALLOWED_ORIGINS": "http://localhost:5173, https://nexus.example.com,,",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"http://localhost:5173", "https://nexus.example.com"}, cfg.CORS.AllowedOrigins)
			},
		},
		{
			name: "observability configuration",
			envVars: map[string]string{
				"LOG_LEVEL":       "debug",
				"LOG_FORMAT":      "text",
				"METRICS_ENABLED": "false",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
				assert.Equal(t, "text", cfg.Observability.LogFormat)
				assert.False(t, cfg.Observability.MetricsEnabled)
			},
		},
		{
			name: "PORT env var takes precedence over SERVER_PORT",
			envVars: map[string]string{
				"PORT":        "9443",
				"SERVER_PORT": "9000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9443, cfg.Server.Port)
			},
		},
		{
			name: "SERVER_PORT env var when PORT not set",
			envVars: map[string]string{
				"SERVER_PORT": "9000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
			},
		},
		{
			name: "upload limits inverted",
			envVars: map[string]string{
				"MAX_UPLOAD_BYTES": "50",
				"MIN_UPLOAD_BYTES": "100",
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			envVars: map[string]string{
				"PORT": "70000",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Environment: "development",
		Server:      ServerConfig{Port: 8000},
		Generation:  GenerationConfig{Timeout: time.Second, MaxRetries: 1},
		Pipeline: PipelineConfig{
			LogCapacity:       200,
			LogsPageSize:      50,
			CycleLogsPageSize: 20,
			RetrievalWindow:   300,
			MaxUploadBytes:    1024,
			MinUploadBytes:    100,
			KeepaliveInterval: time.Second,
		},
		Observability: ObservabilityConfig{LogLevel: "info"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid in-memory config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid database config",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", User: "user", Database: "db"}
			},
		},
		{
			name: "missing database user",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", Database: "db"}
			},
			wantErr: true,
			errMsg:  "database user is required",
		},
		{
			name: "missing database name",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", User: "user"}
			},
			wantErr: true,
			errMsg:  "database name is required",
		},
		{
			name:    "zero generation timeout",
			mutate:  func(c *Config) { c.Generation.Timeout = 0 },
			wantErr: true,
			errMsg:  "generation timeout",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Generation.MaxRetries = -1 },
			wantErr: true,
			errMsg:  "max retries",
		},
		{
			name:    "zero log capacity",
			mutate:  func(c *Config) { c.Pipeline.LogCapacity = 0 },
			wantErr: true,
			errMsg:  "log capacity",
		},
		{
			name:    "missing log level",
			mutate:  func(c *Config) { c.Observability.LogLevel = "" },
			wantErr: true,
			errMsg:  "log level is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		environment string
		want        bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.want, cfg.IsProduction())
			assert.Equal(t, tt.environment == "development", cfg.IsDevelopment())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		Database: "testdb",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, cfg.DSN())
	assert.Equal(t, "host=localhost port=5432 database=testdb", cfg.LogString())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "0.0.0.0", Port: 8000}
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		want         int
	}{
		{"valid int", "42", 10, 42},
		{"empty value", "", 10, 10},
		{"invalid int", "not-a-number", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_INT", tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT", tt.defaultValue))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"false", "false", true, false},
		{"empty value", "", true, true},
		{"invalid bool", "not-a-bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_BOOL", tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsBool("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue time.Duration
		want         time.Duration
	}{
		{"valid duration", "30s", 10 * time.Second, 30 * time.Second},
		{"empty value", "", 10 * time.Second, 10 * time.Second},
		{"invalid duration", "not-a-duration", 10 * time.Second, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_DURATION", tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", tt.defaultValue))
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	os.Clearenv()
	assert.Equal(t, []string{"a"}, getEnvAsList("TEST_LIST", []string{"a"}))

	os.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"a"}, getEnvAsList("TEST_LIST", []string{"a"}))

	os.Setenv("TEST_LIST", "x, y")
	assert.Equal(t, []string{"x", "y"}, getEnvAsList("TEST_LIST", []string{"a"}))
}
