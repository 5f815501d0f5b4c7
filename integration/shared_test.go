//go:build basic || database

// Package integration contains end-to-end tests for the pulse binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedPulsePath holds the path to a shared pulse binary built once for all tests.
	sharedPulsePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getPulseBinary returns the path to the pulse binary, building it once if needed.
func getPulseBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pulse-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		pulsePath := filepath.Join(tempDir, "pulse")
		buildCmd := exec.Command("go", "build", "-o", pulsePath, "./cmd/pulse")
		buildCmd.Dir = ".." // Build from project root
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build pulse: %v\n%s", err, out))
		}

		sharedPulsePath = pulsePath
	})

	return sharedPulsePath
}

// fakeUpstream serves canned dashboard payloads and counts trend requests.
type fakeUpstream struct {
	*httptest.Server
	trendHits atomic.Int32
}

const (
	trendPayload = `{"data":[
		{"ts_utc":"2024-01-01T10:01:00Z","viewers":100,"platform":"SOOP"},
		{"ts_utc":"2024-01-01T10:04:00Z","viewers":"50","platform":"SOOP"},
		{"ts_utc":"2024-01-01T10:06:00Z","viewers":70,"platform":"CHZZK"}
	]}`
	livePayload = `{"data":[
		{"platform":"SOOP","category_name":"Talk","viewers":300},
		{"platform":"CHZZK","category_name":"Minecraft","viewers":"200"}
	]}`
	volatilityPayload = `{"data":[
		{"platform":"SOOP","category_name":"calm","avg_v":900,"volatility_index":0},
		{"platform":"SOOP","category_name":"wild","avg_v":400,"volatility_index":0.9},
		{"platform":"SOOP","category_name":"unknown","avg_v":100,"volatility_index":null}
	]}`
	eventsPayload   = `{"data":[{"event_id":1,"event_type":"CATEGORY_ADOPTION","platform":"SOOP","category_name":"Talk","cause_detail":"{\"clues\":[{\"name\":\"host\"}]}"}]}`
	dailyTopPayload = `{"data":[{"platform":"SOOP","category_name":"Talk","avg_viewers":250,"peak_viewers":300}]}`
	kingPayload     = `{"data":[
		{"platform":"SOOP","streamer":"kim","category":"Talk","viewers":5400,"timestamp":"2024-01-01T10:00:00"},
		{"platform":"CHZZK","streamer":"lee","category":"Minecraft","viewers":"3100","timestamp":"2024-01-01T11:00:00"}
	]}`
	flashPayload = `{"data":[{"platform":"CHZZK","category_name":"Palworld","peak_viewers":8000,"active_days":2,"peak_contributor":"park","curr_viewers":120,"current_broadcaster":"-"}]}`
)

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/api/trend", func(w http.ResponseWriter, r *http.Request) {
		f.trendHits.Add(1)
		serve(trendPayload)(w, r)
	})
	mux.HandleFunc("/api/live", serve(livePayload))
	mux.HandleFunc("/api/volatility", serve(volatilityPayload))
	mux.HandleFunc("/api/events", serve(eventsPayload))
	mux.HandleFunc("/api/daily-top", serve(dailyTopPayload))
	mux.HandleFunc("/api/king", serve(kingPayload))
	mux.HandleFunc("/api/flash", serve(flashPayload))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// runPulse runs the binary with env overrides and returns stdout.
func runPulse(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getPulseBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
	}
	return stdout.String(), err
}

// mustRunPulse is runPulse that fails the test on error.
func mustRunPulse(t *testing.T, env map[string]string, args ...string) string {
	t.Helper()
	out, err := runPulse(t, env, args...)
	require.NoError(t, err)
	return out
}
