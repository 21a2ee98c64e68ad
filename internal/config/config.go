package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the client's external knobs. Everything comes from the
// environment, optionally seeded from ~/.board/config.yaml.
type Config struct {
	// APIURL is the base URL of the listings backend; all item and
	// login/logout requests are issued relative to it.
	APIURL string `yaml:"api_url" env:"BOARD_API_URL" env-default:"http://localhost:3000"`

	// DataDir is where local state (session token, form draft) lives.
	// Empty means ~/.board.
	DataDir string `yaml:"data_dir" env:"BOARD_DATA_DIR"`

	// DebugLog enables the best-effort debug log when set to a file path.
	DebugLog string `yaml:"debug_log" env:"BOARD_DEBUG_LOG"`
}

// Load reads the optional config file and then the environment (env wins).
func Load() (Config, error) {
	var cfg Config

	path := configFilePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, err
			}
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".board", "config.yaml")
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot resolve home directory; set BOARD_DATA_DIR")
	}
	return filepath.Join(home, ".board"), nil
}
