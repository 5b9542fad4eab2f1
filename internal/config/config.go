package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/untoldecay/entitylink/internal/debug"
)

// Keys used across the CLI. Hyphens and dots map to underscores for env vars,
// e.g. ENTITYLINK_DATASET_SUBSET.
const (
	KeyDatasetName      = "dataset.name"
	KeyDatasetSubset    = "dataset.subset"
	KeyDatasetSplit     = "dataset.split"
	KeyDatasetStreaming = "dataset.streaming"
	KeyDatasetFile      = "dataset.file"
	KeyDatasetEndpoint  = "dataset.endpoint"
	KeyDatasetTimeout   = "dataset.timeout"
	KeyDatasetRate      = "dataset.requests-per-second"
	KeyDatasetCache     = "dataset.cache"

	KeyLimit  = "limit"
	KeyOutput = "output"

	KeyAnnotator       = "annotator.backend"
	KeyKBPath          = "annotator.kb.path"
	KeyKBMaxNGram      = "annotator.kb.max-ngram"
	KeyOllamaModel     = "annotator.ollama.model"
	KeyAnthropicModel  = "annotator.anthropic.model"
	KeyAnthropicAPIKey = "annotator.anthropic.api-key"

	KeyLogFile       = "logging.file"
	KeyLogMaxSizeMB  = "logging.max-size-mb"
	KeyLogMaxBackups = "logging.max-backups"
	KeyVerbose       = "verbose"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "ENTITYLINK"

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	// Precedence: project .entitylink/config.yaml > ~/.config/entitylink/config.yaml
	configFileSet := false
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			configPath := filepath.Join(dir, ".entitylink", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
				break
			}
		}
	}
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "entitylink", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// ANTHROPIC_API_KEY is the SDK's own convention.
	_ = v.BindEnv(KeyAnthropicAPIKey, "ANTHROPIC_API_KEY")

	setDefaults(v)

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("Debug: loaded config from %s", v.ConfigFileUsed())
	} else {
		debug.Logf("Debug: no config.yaml found; using defaults and environment variables")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatasetName, "hotpotqa/hotpot_qa")
	v.SetDefault(KeyDatasetSubset, "distractor")
	v.SetDefault(KeyDatasetSplit, "train")
	v.SetDefault(KeyDatasetStreaming, true)
	v.SetDefault(KeyDatasetFile, "")
	v.SetDefault(KeyDatasetEndpoint, "https://datasets-server.huggingface.co")
	v.SetDefault(KeyDatasetTimeout, "30s")
	v.SetDefault(KeyDatasetRate, 2.0)
	v.SetDefault(KeyDatasetCache, "")

	v.SetDefault(KeyLimit, 5)
	v.SetDefault(KeyOutput, filepath.Join("experiment_datasets", "extracted_wikidata_ids.json"))

	v.SetDefault(KeyAnnotator, "kb")
	v.SetDefault(KeyKBPath, filepath.Join(".entitylink", "wikidata_kb.db"))
	v.SetDefault(KeyKBMaxNGram, 4)
	v.SetDefault(KeyOllamaModel, "llama3.2:3b")
	v.SetDefault(KeyAnthropicModel, "claude-3-5-haiku-20241022")
	v.SetDefault(KeyAnthropicAPIKey, "")

	v.SetDefault(KeyLogFile, filepath.Join(".entitylink", "entitylink.log"))
	v.SetDefault(KeyLogMaxSizeMB, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyVerbose, false)
}

// BindPFlag binds a cobra flag so an explicitly set flag overrides env and file.
func BindPFlag(key string, flag *pflag.Flag) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}
	if flag == nil {
		return fmt.Errorf("no flag for config key %s", key)
	}
	return v.BindPFlag(key, flag)
}

// ConfigFileUsed returns the config file path, or "" if none was loaded.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetFloat64 retrieves a float configuration value
func GetFloat64(key string) float64 {
	if v == nil {
		return 0
	}
	return v.GetFloat64(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a configuration value
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns all configuration settings as a nested map.
// Secrets are masked.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	all := v.AllSettings()
	if ann, ok := all["annotator"].(map[string]interface{}); ok {
		if anth, ok := ann["anthropic"].(map[string]interface{}); ok {
			if key, _ := anth["api-key"].(string); key != "" {
				anth["api-key"] = "********"
			}
		}
	}
	return all
}
