package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth int  `toml:"tab-width"`
	Debug    bool `toml:"debug"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	CommandForeground    string `toml:"command-foreground"`
	ErrorForeground      string `toml:"error-foreground"`
	LineNumberForeground string `toml:"line-number-foreground"`
	FillerForeground     string `toml:"filler-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth: 4,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#3E4B59",
			CommandForeground:    "#59C2FF",
			ErrorForeground:      "#FF3333",
			LineNumberForeground: "#3E4B59",
			FillerForeground:     "#59C2FF",
		},
	}
}

// Load reads the user config and merges it over the defaults. A missing
// config file is not an error.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Theme.Foreground != "" {
		cfg.Theme.Foreground = userCfg.Theme.Foreground
	}
	if userCfg.Theme.Background != "" {
		cfg.Theme.Background = userCfg.Theme.Background
	}
	if userCfg.Theme.StatuslineForeground != "" {
		cfg.Theme.StatuslineForeground = userCfg.Theme.StatuslineForeground
	}
	if userCfg.Theme.StatuslineBackground != "" {
		cfg.Theme.StatuslineBackground = userCfg.Theme.StatuslineBackground
	}
	if userCfg.Theme.CommandForeground != "" {
		cfg.Theme.CommandForeground = userCfg.Theme.CommandForeground
	}
	if userCfg.Theme.ErrorForeground != "" {
		cfg.Theme.ErrorForeground = userCfg.Theme.ErrorForeground
	}
	if userCfg.Theme.LineNumberForeground != "" {
		cfg.Theme.LineNumberForeground = userCfg.Theme.LineNumberForeground
	}
	if userCfg.Theme.FillerForeground != "" {
		cfg.Theme.FillerForeground = userCfg.Theme.FillerForeground
	}
	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("ROVI_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rovi"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rovi"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
