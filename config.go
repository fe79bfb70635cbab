package pycs

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/pycs/treeprinter"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultRetryHint is printed after an error when the config does not set one.
const DefaultRetryHint = "The interpreter has encountered an error in the code, try running it again after fixing it."

// DefaultMaxCallDepth bounds nested calls of declared functions.
const DefaultMaxCallDepth = 1000

// Config represents the pycs configuration
type Config struct {
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Tree        TreeConfig        `yaml:"tree"`
	Output      OutputConfig      `yaml:"output"`
	Input       InputConfig       `yaml:"input"`
}

// InterpreterConfig represents evaluation limits. A zero MaxCallDepth is
// replaced by the default; a negative one disables the limit.
type InterpreterConfig struct {
	MaxCallDepth int `yaml:"max_call_depth"`
}

// TreeConfig represents syntax tree output settings
type TreeConfig struct {
	Format string `yaml:"format"`
}

// OutputConfig represents console settings
type OutputConfig struct {
	Color     *bool  `yaml:"color"` // nil means enabled
	RetryHint string `yaml:"retry_hint"`
}

// ColorEnabled returns true unless color is explicitly disabled.
func (o OutputConfig) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// InputConfig names a file whose lines answer input() instead of stdin.
type InputConfig struct {
	File string `yaml:"file"`
}

// CallDepthLimit returns the limit to pass to the interpreter; 0 means none.
func (c *Config) CallDepthLimit() int {
	if c.Interpreter.MaxCallDepth < 0 {
		return 0
	}

	return c.Interpreter.MaxCallDepth
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if !fileExists(configPath) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// strict mode rejects unknown keys
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	format := strings.ToLower(config.Tree.Format)
	if format != "" && !slices.Contains(treeprinter.Formats, format) {
		return fmt.Errorf("%w: invalid tree format '%s': must be one of %s", ErrConfigValidation, config.Tree.Format, strings.Join(treeprinter.Formats, ", "))
	}

	if config.Input.File != "" && !fileExists(config.Input.File) {
		return fmt.Errorf("%w: input file '%s' does not exist", ErrConfigValidation, config.Input.File)
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			MaxCallDepth: DefaultMaxCallDepth,
		},
		Tree: TreeConfig{
			Format: treeprinter.FormatText,
		},
		Output: OutputConfig{
			RetryHint: DefaultRetryHint,
		},
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Interpreter.MaxCallDepth == 0 {
		config.Interpreter.MaxCallDepth = defaults.Interpreter.MaxCallDepth
	}

	if config.Tree.Format == "" {
		config.Tree.Format = defaults.Tree.Format
	} else {
		config.Tree.Format = strings.ToLower(config.Tree.Format)
	}

	if config.Output.RetryHint == "" {
		config.Output.RetryHint = defaults.Output.RetryHint
	}
}

func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Tree.Format = expandEnvVars(config.Tree.Format)
	config.Output.RetryHint = expandEnvVars(config.Output.RetryHint)
	config.Input.File = expandEnvVars(config.Input.File)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
