package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/sqweek/dialog"

	"xpclient/client"
	"xpclient/roster"
	"xpclient/viewport"
	"xpclient/xpmap"
)

var (
	baseDir      string
	settingsFile string
	debugMode    bool
)

func main() {
	mapFile := flag.String("map", "", "map file to fly on (overrides the settings file)")
	nick := flag.String("nick", "", "nickname (overrides the settings file)")
	wrap := flag.Bool("wrap", false, "force edge wrapping on the map")
	team := flag.Bool("team", false, "team play: rank teams as well as players")
	timing := flag.Bool("timing", false, "race mode: rank by checkpoints and laps")
	limited := flag.Bool("limited-lives", false, "limited lives scoring")
	flag.StringVar(&settingsFile, "settings", "", "settings file (default settings.toml in the working directory)")
	flag.BoolVar(&debugMode, "debug", false, "verbose/debug logging")
	flag.Parse()

	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}

	setupLogging(debugMode)
	if err := loadSettings(); err != nil {
		logError("load settings: %v", err)
	}
	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
		}
	}()
	if *nick != "" {
		gs.Nickname = *nick
	}
	if *mapFile != "" {
		gs.MapFile = *mapFile
	}

	m, err := loadMap(gs.MapFile)
	if err != nil {
		logError("load map: %v", err)
		dialog.Message("Could not load map %s:\n%v", gs.MapFile, err).Title("xpclient").Error()
		os.Exit(1)
	}
	if *wrap {
		m.Wrap = true
	}

	cfg := client.Config{
		Nick: gs.Nickname,
		View: viewport.Vec{X: gs.ViewWidth, Y: gs.ViewHeight},
		Dots: xpmap.DotOptions{
			Distance:  gs.MapPointDistance,
			PointSize: gs.MapPointSize,
			ShowDecor: gs.ShowDecor,
		},
		Mode:          roster.Mode{Timing: *timing, Team: *team, LimitedLives: *limited},
		ScoreDebounce: gs.ScoreDebounce,
	}
	sess := client.Connect(cfg, coreReporter)
	logDebug("session %s as %q on %q", sess.ID, gs.Nickname, m.Name)
	if err := sess.Setup(m); err != nil {
		dialog.Message("Could not set up map %s:\n%v", m.Name, err).Title("xpclient").Error()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if discordEnabled() {
		initDiscordRPC(ctx, sess, m.Name)
	}

	if err := runGame(newGame(ctx, sess)); err != nil {
		log.Printf("ebiten: %v", err)
	}
	sess.Cleanup()
	saveSettings()
}

// loadMap reads path, relative to the working directory unless absolute.
// An empty path selects the built-in map.
func loadMap(path string) (*xpmap.Map, error) {
	if path == "" {
		return xpmap.Parse(strings.NewReader(defaultMap))
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := xpmap.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}
