package pycs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "pycs.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o644)
	assert.NoError(t, err)

	return configPath
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	config, err := LoadConfig("non-existent-file.yaml")
	assert.NoError(t, err)

	assert.Equal(t, DefaultMaxCallDepth, config.Interpreter.MaxCallDepth)
	assert.Equal(t, "text", config.Tree.Format)
	assert.Equal(t, DefaultRetryHint, config.Output.RetryHint)
	assert.True(t, config.Output.ColorEnabled())
	assert.Equal(t, "", config.Input.File)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
interpreter:
  max_call_depth: 64
tree:
  format: XML
output:
  color: false
  retry_hint: "fix it"
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)

	assert.Equal(t, 64, config.Interpreter.MaxCallDepth)
	assert.Equal(t, 64, config.CallDepthLimit())
	assert.Equal(t, "xml", config.Tree.Format)
	assert.False(t, config.Output.ColorEnabled())
	assert.Equal(t, "fix it", config.Output.RetryHint)
}

func TestLoadConfig_PartialConfigGetsDefaults(t *testing.T) {
	configPath := writeConfig(t, `
output:
  color: true
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)

	assert.Equal(t, DefaultMaxCallDepth, config.Interpreter.MaxCallDepth)
	assert.Equal(t, "text", config.Tree.Format)
	assert.Equal(t, DefaultRetryHint, config.Output.RetryHint)
	assert.True(t, config.Output.ColorEnabled())
}

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	configPath := writeConfig(t, `
interpreter:
  max_call_depth: 10
  unknown_key: "should cause error"
`)

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "answers.txt")
	assert.NoError(t, os.WriteFile(inputFile, []byte("42\n"), 0o644))

	t.Setenv("PYCS_TEST_DIR", dir)
	t.Setenv("PYCS_TEST_FORMAT", "yaml")

	configPath := writeConfig(t, `
tree:
  format: $PYCS_TEST_FORMAT
input:
  file: ${PYCS_TEST_DIR}/answers.txt
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)

	assert.Equal(t, "yaml", config.Tree.Format)
	assert.Equal(t, inputFile, config.Input.File)
}

func TestCallDepthLimit(t *testing.T) {
	tests := []struct {
		name     string
		depth    int
		expected int
	}{
		{"positive", 20, 20},
		{"negative disables", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Config{Interpreter: InterpreterConfig{MaxCallDepth: tt.depth}}
			assert.Equal(t, tt.expected, config.CallDepthLimit())
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "empty", config: Config{}},
		{name: "text format", config: Config{Tree: TreeConfig{Format: "text"}}},
		{name: "upper case format", config: Config{Tree: TreeConfig{Format: "YAML"}}},
		{name: "unknown format", config: Config{Tree: TreeConfig{Format: "json"}}, wantErr: true},
		{name: "missing input file", config: Config{Input: InputConfig{File: "does/not/exist.txt"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			if tt.wantErr {
				assert.IsError(t, err, ErrConfigValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PYCS_NAME", "world")

	tests := []struct {
		input    string
		expected string
	}{
		{"hello ${PYCS_NAME}", "hello world"},
		{"hello $PYCS_NAME!", "hello world!"},
		{"no vars", "no vars"},
		{"${PYCS_UNSET_VARIABLE}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
