package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RMahshie/scmplot/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoLines(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, echoLines(strings.NewReader("temp=27\r\nhello\n\xff"), &out))
	assert.Equal(t, "Received: \"temp=27\\r\\n\"\nReceived: \"hello\\n\"\nReceived: \"\\xff\"\n", out.String())
}

func TestServeRouter(t *testing.T) {
	dir := t.TempDir()
	cfg = &config.Config{
		Chart:   config.ChartConfig{Path: dir + "/telemetry.png"},
		Extract: config.ExtractConfig{Glob: dir + "/*receiver.txt"},
		Server:  config.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	t.Cleanup(func() { cfg = nil })

	router := newRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/pdr", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetLogLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	setLogLevel("DEBUG")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setLogLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	setLogLevel("chatty")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
