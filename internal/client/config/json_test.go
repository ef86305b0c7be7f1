package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyJson_OverlaysValues(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	var jc JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"server_base_url": "http://10.0.0.1:8000",
		"request_timeout": "3s",
		"session_db_path": "json.db"
	}`), &jc))

	applyJson(cfg, &jc)

	assert.Equal(t, "http://10.0.0.1:8000", cfg.ServerBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json.db", cfg.SessionDBPath)
}

func TestApplyJson_EmptyFieldsKeepDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	applyJson(cfg, &JsonConfig{})

	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "session.db", cfg.SessionDBPath)
}
