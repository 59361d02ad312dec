package main

import (
	"os"
	"path/filepath"
	"testing"
)

func withSettingsFile(t *testing.T, body string) {
	t.Helper()
	oldFile, oldGS := settingsFile, gs
	t.Cleanup(func() { settingsFile, gs = oldFile, oldGS })
	settingsFile = filepath.Join(t.TempDir(), "settings.toml")
	gs = defaultSettings()
	if body != "" {
		if err := os.WriteFile(settingsFile, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadSettings(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		nick    string
	}{
		{"Missing", "", false, "Player"},
		{"Valid", "nickname = \"Nick\"\nfps = 30\n", false, "Nick"},
		{"Malformed", "nickname = \n", true, "Player"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			withSettingsFile(t, tt.body)
			err := loadSettings()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err %v, want error %v", err, tt.wantErr)
			}
			if gs.Nickname != tt.nick {
				t.Fatalf("nickname %q, want %q", gs.Nickname, tt.nick)
			}
		})
	}
}

func TestDiscordNeedsAppID(t *testing.T) {
	withSettingsFile(t, "discord = true\n")
	if err := loadSettings(); err != nil {
		t.Fatal(err)
	}
	if discordEnabled() {
		t.Fatalf("presence enabled without an application id")
	}
	gs.DiscordAppID = "42"
	if !discordEnabled() {
		t.Fatalf("presence disabled with an application id")
	}
}
