package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15

[database]
host = "localhost"
port = 5432
user = "clinicbook"
password = "secret"
dbname = "booking_service"
sslmode = "disable"

[logs]
file = "logs/booking-service.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "booking-service"

[booking]
strict_transitions = true

[profiles]
url = "http://localhost:8081"
timeout = 5

[notify_hub]
url = "http://localhost:8082"
timeout = 3
`

func TestLoad_Success(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "booking_service", cfg.Database.DBName)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Booking.StrictTransitions)
	assert.Equal(t, "http://localhost:8081", cfg.Profiles.URL)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "invalid port",
			config: `
[server]
http_port = 0
[database]
host = "localhost"
dbname = "booking_service"
[logs]
file = "logs/app.log"
`,
		},
		{
			name: "missing database host",
			config: `
[server]
http_port = 8080
[database]
dbname = "booking_service"
[logs]
file = "logs/app.log"
`,
		},
		{
			name: "missing dbname",
			config: `
[server]
http_port = 8080
[database]
host = "localhost"
[logs]
file = "logs/app.log"
`,
		},
		{
			name: "missing log file",
			config: `
[server]
http_port = 8080
[database]
host = "localhost"
dbname = "booking_service"
`,
		},
		{
			name: "metrics enabled without path",
			config: `
[server]
http_port = 8080
[database]
host = "localhost"
dbname = "booking_service"
[logs]
file = "logs/app.log"
[metrics]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.config))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "clinicbook",
		Password: "secret",
		DBName:   "booking_service",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=clinicbook password=secret dbname=booking_service sslmode=disable",
		d.DSN())
}
