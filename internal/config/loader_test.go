package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"depman/internal/events"
	"depman/pkg/logging"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content string) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, configFileName)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()

	loadedConfig, err := LoadConfig(tempDir)
	assert.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.True(t, loadedConfig.Output.EchoCommands)
	assert.Equal(t, DefaultIndent, loadedConfig.Output.Indent)
}

func TestLoadConfig_Override(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, `
output:
  indent: "> "
  echoCommands: false
  messages:
    ComponentInstalling: "+ {{.Name}}"
logging:
  level: debug
run:
  strict: true
`)

	loadedConfig, err := LoadConfig(tempDir)
	require.NoError(t, err)

	assert.Equal(t, "> ", loadedConfig.Output.Indent)
	assert.False(t, loadedConfig.Output.EchoCommands)
	assert.True(t, loadedConfig.Run.Strict)
	assert.Equal(t, logging.LevelDebug, loadedConfig.LogLevel())

	engine, err := loadedConfig.MessageEngine()
	require.NoError(t, err)
	assert.Equal(t, "+ A", engine.Render(events.ReasonComponentInstalling, events.EventData{Name: "A"}))
	assert.Equal(t, "Removing A", engine.Render(events.ReasonComponentRemoving, events.EventData{Name: "A"}))
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, "run:\n  strict: true\n")

	loadedConfig, err := LoadConfig(tempDir)
	require.NoError(t, err)
	assert.True(t, loadedConfig.Run.Strict)
	assert.True(t, loadedConfig.Output.EchoCommands)
	assert.Equal(t, DefaultIndent, loadedConfig.Output.Indent)
	assert.Equal(t, DefaultLogLevel, loadedConfig.Logging.Level)
}

func TestLoadConfig_Malformed(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, "output: [not, a, map\n")

	_, err := LoadConfig(tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config from")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, `
output:
  messages:
    ComponentExploded: "{{.Name}}"
    ComponentRemoving: "{{.Name"
logging:
  level: loud
`)

	_, err := LoadConfig(tempDir)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %T", err)
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "output.messages.ComponentExploded")
	assert.Contains(t, err.Error(), "output.messages.ComponentRemoving")
}

func TestLoadConfig_Unreadable(t *testing.T) {
	tempDir := t.TempDir()
	// A directory in place of the file cannot be read.
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, configFileName), 0755))

	_, err := LoadConfig(tempDir)
	assert.Error(t, err)
}

func TestGetDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "depman"), path)

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = GetDefaultConfigPath()
	assert.Error(t, err)

	cfg, err := LoadDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestConfigRoundTripThroughYAML(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Output.Messages = map[string]string{"ComponentListed": "* {{.Name}}"}

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, string(data))

	loaded, err := LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("a", "first")
	assert.Equal(t, "field 'a': first", errs.Error())

	errs.Add("", "second")
	assert.Equal(t, "validation failed: field 'a': first; second", errs.Error())
}
