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
	path := filepath.Join(t.TempDir(), "vanassign_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPathValid(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://fleet.example.com
dspCode: dsp-1
workingDaysRRule: FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR,SA
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://fleet.example.com", cfg.APIBaseURL)
	assert.Equal(t, "dsp-1", cfg.DSPCode)

	// Defaults applied
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoadFromPathMissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://fleet.example.com
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPathRejectsBadURL(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: not a url
dspCode: dsp-1
workingDaysRRule: FREQ=DAILY
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPathRejectsBadRRule(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://fleet.example.com
dspCode: dsp-1
workingDaysRRule: EVERY=DAY
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workingDaysRRule")
}

func TestLoadFromPathRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: [unclosed")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}
