//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a container and returns its host and mapped port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseBackend clears the cache, runs a cached trend twice and checks the status.
func exerciseBackend(t *testing.T, backend, connStr string, migrate bool) {
	up := newFakeUpstream(t)
	env := map[string]string{
		"HOME":                   t.TempDir(),
		"PULSE_API_BASE":         up.URL,
		"PULSE_CACHE_BACKEND":    backend,
		"PULSE_CACHE_DB_CONNECT": connStr,
		"PULSE_LOG_LEVEL":        "warn",
		"PULSE_OUTPUT":           "json",
		"PULSE_RATE_LIMIT":       "0s",
	}

	if migrate {
		mustRunPulse(t, env, "cache", "migrate")
	}
	mustRunPulse(t, env, "cache", "clear")

	mustRunPulse(t, env, "trend", "--category", "Talk")
	mustRunPulse(t, env, "trend", "--category", "Talk")
	assert.Equal(t, int32(1), up.trendHits.Load())

	status := mustRunPulse(t, env, "cache", "status")
	assert.Contains(t, status, "Cache Backend: "+backend)
	assert.Contains(t, status, "Connected: true")
}

// TestPulseWithMySQL tests the pulse CLI with a MySQL cache backend.
func TestPulseWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "pulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/pulse?parseTime=true", host, port)
	exerciseBackend(t, "mysql", connStr, true)
}

// TestPulseWithPostgres tests the pulse CLI with a PostgreSQL cache backend.
func TestPulseWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port)
	exerciseBackend(t, "postgresql", connStr, true)
}

// TestPulseWithRedis tests the pulse CLI with a Redis cache backend.
func TestPulseWithRedis(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	exerciseBackend(t, "redis", fmt.Sprintf("redis://%s:%s/0", host, port), false)
}
