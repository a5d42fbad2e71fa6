package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	DiscordBotToken  string   `koanf:"discord_bot_token"`
	DiscordChannelID string   `koanf:"discord_channel_id"`
	DiscordAPIURL    string   `koanf:"discord_api_url"`
	HTTPPort         string   `koanf:"http_port"`
	MirrorPath       string   `koanf:"mirror_path"`
	AllowedOrigins   []string `koanf:"allowed_origins"`
	RequestTimeout   int      `koanf:"request_timeout"`
	AppEnv           AppEnv   `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("discord_api_url") {
		k.Set("discord_api_url", "https://discord.com/api/v10")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("mirror_path") {
		k.Set("mirror_path", "./data/downloads")
	}
	if !k.Exists("request_timeout") {
		k.Set("request_timeout", 15)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AllowedOrigins from comma-separated string if it's a string
	if allowedOrigins := k.Get("allowed_origins"); allowedOrigins != nil {
		switch v := allowedOrigins.(type) {
		case string:
			cfg.AllowedOrigins = ParseAllowedOrigins(v)
		case []interface{}:
			cfg.AllowedOrigins = lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
				origin, ok := item.(string)
				if !ok {
					return "", false
				}
				origin = strings.TrimSpace(origin)
				return origin, origin != ""
			})
		}
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	// A missing token or channel id is not fatal here: the process still
	// serves /downloads and /health, and the API endpoints report the
	// missing key per request.
	return &cfg, nil
}

// ParseAllowedOrigins parses a comma-separated origins string into a slice
func ParseAllowedOrigins(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}
