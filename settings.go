package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Settings struct {
	Nickname         string `toml:"nickname"`
	RealName         string `toml:"realName"`
	Scale            int    `toml:"scale"`
	ViewWidth        int    `toml:"viewWidth"`
	ViewHeight       int    `toml:"viewHeight"`
	ShowDecor        bool   `toml:"showDecor"`
	MapPointDistance int    `toml:"mapPointDistance"`
	MapPointSize     int    `toml:"mapPointSize"`
	ScoreDebounce    int    `toml:"scoreDebounce"`
	MapFile          string `toml:"mapFile"`
	Discord          bool   `toml:"discord"`
	DiscordAppID     string `toml:"discordAppID"`
	FPS              int    `toml:"fps"`
}

var gs = defaultSettings()

func defaultSettings() Settings {
	return Settings{
		Nickname:         "Player",
		RealName:         os.Getenv("USER"),
		Scale:            1,
		ViewWidth:        1024,
		ViewHeight:       768,
		MapPointDistance: 8,
		MapPointSize:     2,
		ScoreDebounce:    2,
		FPS:              14,
	}
}

func settingsPath() string {
	if settingsFile != "" {
		return settingsFile
	}
	return filepath.Join(baseDir, "settings.toml")
}

// loadSettings reads the settings file over the defaults. A missing file
// leaves the defaults in place; an unreadable or malformed one does too and
// is returned as an error.
func loadSettings() error {
	data, err := os.ReadFile(settingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	s := defaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("settings %s: %w", settingsPath(), err)
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.ViewWidth <= 0 || s.ViewHeight <= 0 {
		s.ViewWidth, s.ViewHeight = 1024, 768
	}
	if s.FPS <= 0 {
		s.FPS = 14
	}
	gs = s
	return nil
}

// discordEnabled reports whether presence is switched on and an
// application id to publish it under is configured.
func discordEnabled() bool {
	return gs.Discord && gs.DiscordAppID != ""
}

func saveSettings() {
	data, err := toml.Marshal(gs)
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.WriteFile(settingsPath(), data, 0644); err != nil {
		logError("save settings: %v", err)
	}
}
