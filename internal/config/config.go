// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flag"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Catalog  CatalogConfig
	Redirect RedirectConfig
	API      APIConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"required,oneof=debug info warn error"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name            string        `validate:"required"`
	Port            string        `validate:"required,numeric"`
	BaseURL         string        `validate:"required,url"` // Public base URL embedded in feeds
	OfficialWebsite string        `validate:"required,url"` // Homepage redirect target
	ReadTimeout     time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout    time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout     time.Duration // HTTP idle timeout (default: 60s)
	AdvertiseMDNS   bool          // Advertise via mDNS/Zeroconf (default: true)
}

// CatalogConfig holds show catalog configuration.
type CatalogConfig struct {
	// Path to the TOML show catalog.
	Path string `validate:"required"`
	// Watch reloads the catalog when the file changes (default: true).
	Watch bool
}

// RedirectConfig holds redirect store configuration.
type RedirectConfig struct {
	// DBPath is the SQLite file holding the redirect tables.
	DBPath string `validate:"required"`
	// RetryBudget caps the get-or-create conflict retry loop.
	// Values <= 0 select the store default.
	RetryBudget int
}

// APIConfig holds settings for the /api endpoints.
type APIConfig struct {
	// RateLimitRPS is the per-client request rate (default: 5).
	RateLimitRPS float64 `validate:"gt=0"`
	// RateLimitBurst is the per-client burst size (default: 10).
	RateLimitBurst int `validate:"gt=0"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	baseURL := flag.String("base-url", "", "Public base URL used in generated feeds")
	officialWebsite := flag.String("official-website", "", "Homepage redirect target")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	advertiseMDNS := flag.String("advertise-mdns", "", "Advertise via mDNS/Zeroconf (default: true)")

	catalogPath := flag.String("catalog", "", "Path to the show catalog TOML file")
	catalogWatch := flag.String("catalog-watch", "", "Reload the catalog on file changes (default: true)")

	redirectDB := flag.String("redirect-db", "", "Path to the redirect SQLite database")
	redirectRetries := flag.String("redirect-retries", "", "Retry cap for redirect creation conflicts")

	rateLimitRPS := flag.String("api-rate-rps", "", "API rate limit in requests per second (default: 5)")
	rateLimitBurst := flag.String("api-rate-burst", "", "API rate limit burst (default: 10)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name:            getConfigValue(*serverName, "SERVER_NAME", "Podfeed Server"),
			Port:            getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			BaseURL:         getConfigValue(*baseURL, "BASE_URL", "http://localhost:8080"),
			OfficialWebsite: getConfigValue(*officialWebsite, "OFFICIAL_WEBSITE", "http://localhost:8080"),
			AdvertiseMDNS:   getBoolConfigValue(*advertiseMDNS, "ADVERTISE_MDNS", true),
		},
		Catalog: CatalogConfig{
			Path:  getConfigValue(*catalogPath, "CATALOG_PATH", "catalog.toml"),
			Watch: getBoolConfigValue(*catalogWatch, "CATALOG_WATCH", true),
		},
		Redirect: RedirectConfig{
			DBPath:      getConfigValue(*redirectDB, "REDIRECT_DB_PATH", "redirects.db"),
			RetryBudget: getIntConfigValue(*redirectRetries, "REDIRECT_RETRIES", 0),
		},
		API: APIConfig{
			RateLimitRPS:   getFloatConfigValue(*rateLimitRPS, "API_RATE_RPS", 5),
			RateLimitBurst: getIntConfigValue(*rateLimitBurst, "API_RATE_BURST", 10),
		},
	}

	// Parse server timeouts.
	var err error
	cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	// Expand and clean file paths.
	cfg.Catalog.Path, err = expandPath(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}
	cfg.Redirect.DBPath, err = expandPath(cfg.Redirect.DBPath)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect db path: %w", err)
	}

	// Normalize the base URL so URL construction can just append paths.
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")

	return cfg, nil
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
