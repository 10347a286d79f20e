package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration, loaded from YAML
// with environment overrides.
type Config struct {
	BaseDir   string          `mapstructure:"base_dir"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Sandbox   SandboxConfig   `mapstructure:"sandbox"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProvidersConfig selects and configures the language models.
type ProvidersConfig struct {
	// Orchestrator picks the main reasoning model: openai or gemini.
	Orchestrator string `mapstructure:"orchestrator"`

	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	DeepSeek DeepSeekConfig `mapstructure:"deepseek"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type DeepSeekConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AgentConfig tunes the orchestration loop.
type AgentConfig struct {
	MaxIterations      int     `mapstructure:"max_iterations"`
	HistoryWindow      int     `mapstructure:"history_window"`
	Temperature        float32 `mapstructure:"temperature"`
	MaxTokens          int32   `mapstructure:"max_tokens"`
	SynthesisMaxTokens int32   `mapstructure:"synthesis_max_tokens"`
}

// ValidatorConfig tunes the model validation stages.
type ValidatorConfig struct {
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
}

// AnalysisConfig tunes the file analysis model call.
type AnalysisConfig struct {
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
}

// SandboxConfig controls the file primitives.
type SandboxConfig struct {
	MaxFileSize      int64 `mapstructure:"max_file_size"`
	BinarySampleSize int   `mapstructure:"binary_sample_size"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// Load reads configuration from the provided path, or from
// dirant.yaml in the working directory when path is empty. Environment
// variables override file values (prefix DIRANT_, dots replaced with
// underscores); missing files fall back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DIRANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("dirant")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_dir", ".")

	v.SetDefault("providers.orchestrator", "openai")
	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.model", "gpt-4o")
	v.SetDefault("providers.deepseek.api_key", "")
	v.SetDefault("providers.deepseek.model", "deepseek-chat")
	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("providers.gemini.model", "gemini-2.0-flash")

	v.SetDefault("agent.max_iterations", 5)
	v.SetDefault("agent.history_window", 3)
	v.SetDefault("agent.temperature", 0.1)
	v.SetDefault("agent.max_tokens", 1500)
	v.SetDefault("agent.synthesis_max_tokens", 2000)

	v.SetDefault("validator.temperature", 0.1)
	v.SetDefault("validator.max_tokens", 200)

	v.SetDefault("analysis.temperature", 0.3)
	v.SetDefault("analysis.max_tokens", 2000)

	v.SetDefault("sandbox.max_file_size", 10*1024*1024)
	v.SetDefault("sandbox.binary_sample_size", 1024)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate performs sanity checks on the merged configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.BaseDir == "" {
		errs = append(errs, "base_dir must not be empty")
	}
	switch c.Providers.Orchestrator {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Sprintf("providers.orchestrator must be %q or %q, got %q", "openai", "gemini", c.Providers.Orchestrator))
	}

	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}
	if c.Agent.HistoryWindow < 1 {
		errs = append(errs, "agent.history_window must be >= 1")
	}
	if c.Agent.MaxTokens < 1 {
		errs = append(errs, "agent.max_tokens must be >= 1")
	}
	if c.Agent.SynthesisMaxTokens < 1 {
		errs = append(errs, "agent.synthesis_max_tokens must be >= 1")
	}
	if c.Agent.Temperature < 0 || c.Agent.Temperature > 2 {
		errs = append(errs, "agent.temperature must be between 0 and 2")
	}

	if c.Validator.MaxTokens < 1 {
		errs = append(errs, "validator.max_tokens must be >= 1")
	}
	if c.Analysis.MaxTokens < 1 {
		errs = append(errs, "analysis.max_tokens must be >= 1")
	}

	if c.Sandbox.MaxFileSize < 1 {
		errs = append(errs, "sandbox.max_file_size must be >= 1")
	}
	if c.Sandbox.BinarySampleSize < 1 {
		errs = append(errs, "sandbox.binary_sample_size must be >= 1")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
