package serx

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// Every variable is optional; unset variables keep the values of DefaultConfig.
//
//   - SERX_CODEC: json, jsoniter or sonic
//   - SERX_TAG_NAME: struct tag read when deriving schemas
//   - SERX_FOLLOW_RELATIONSHIPS: true or false
//   - SERX_FORCE_SERIALIZATION: true or false
//   - SERX_LOG_LEVEL / SERX_LOG_FORMAT: logger settings used by NewLogger
//
// Example usage:
//
//	cfg, err := serx.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := serx.New(cfg)
func LoadConfigFromEnvironment() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

// LoadConfigFromEnvFile reads a dotenv file and applies it over the process
// environment. Variables already present in the environment take precedence.
func LoadConfigFromEnvFile(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return configFromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	cfg.Codec = getEnvOrDefault(lookup, EnvCodec, cfg.Codec)
	cfg.TagName = getEnvOrDefault(lookup, EnvTagName, cfg.TagName)
	cfg.LogLevel = getEnvOrDefault(lookup, EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault(lookup, EnvLogFormat, cfg.LogFormat)

	var err error
	if cfg.FollowRelationships, err = getEnvBool(lookup, EnvFollowRelationships, cfg.FollowRelationships); err != nil {
		return Config{}, err
	}
	if cfg.ForceSerialization, err = getEnvBool(lookup, EnvForceSerialization, cfg.ForceSerialization); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable, or defaultValue
// when it is unset or empty.
func getEnvOrDefault(lookup func(string) (string, bool), key, defaultValue string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(lookup func(string) (string, bool), key string, defaultValue bool) (bool, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got '%s'", ErrInvalidConfiguration, key, value)
	}
	return b, nil
}

// LoadConfigFile loads configuration from a YAML file. Missing keys keep the
// values of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg to a YAML file.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
