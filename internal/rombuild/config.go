package rombuild

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// configPath resolves the config file location, honoring ROMBUILDER_ROOT
// for relocated installs.
func configPath() string {
	if root := os.Getenv("ROMBUILDER_ROOT"); root != "" {
		return filepath.Join(root, "etc", "rombuilder.conf")
	}
	return ConfigFile
}

// Config struct
type Config struct {
	Values map[string]string
}

// loadConfig reads /etc/rombuilder.conf and applies defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Values: make(map[string]string)}

	// Attempt to read the file
	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			val = strings.Trim(val, `"'`)
			cfg.Values[key] = val
		}
		if err := scanner.Err(); err != nil {
			return cfg, err
		}
	}

	// Merge ROMBUILDER_* env overrides
	mergeEnvOverrides(cfg)

	return cfg, nil
}

// Merge ROMBUILDER_* env overrides
func mergeEnvOverrides(cfg *Config) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ROMBUILDER_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimPrefix(parts[0], "ROMBUILDER_")
				cfg.Values[key] = parts[1]
			}
		}
	}
}

func initConfig(cfg *Config) {
	homeDir = os.Getenv("HOME")
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}

	serverReleaseDir = cfg.Values["SERVER_RELEASE_DIR"]
	if serverReleaseDir == "" {
		serverReleaseDir = "/var/www/releases"
	}

	logDir = cfg.Values["LOG_DIR"]
	if logDir == "" {
		logDir = filepath.Join(homeDir, ".rombuilder", "logs")
	}

	if cfg.Values["DEBUG"] == "1" || cfg.Values["DEBUG"] == "true" {
		Debug = true
	}
}
