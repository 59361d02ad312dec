package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sqweek/dialog"
	dark "github.com/thiagokokada/dark-mode-go"

	"xpclient/client"
	"xpclient/render"
)

const feedRobots = 3

type Game struct {
	ctx         context.Context
	sess        *client.Session
	feed        *localFeed
	renderer    *render.Renderer
	lastDiscord time.Time
	failed      bool
}

func newGame(ctx context.Context, sess *client.Session) *Game {
	st := sess.State
	return &Game{
		ctx:      ctx,
		sess:     sess,
		feed:     newLocalFeed(st.Map, st.Index, gs.Nickname, feedRobots),
		renderer: render.New(pickPalette()),
	}
}

// pickPalette follows the desktop theme when it can be read.
func pickPalette() render.Palette {
	darkMode, err := dark.IsDarkMode()
	if err != nil {
		logDebug("dark mode: %v", err)
		return render.DarkPalette()
	}
	if darkMode {
		return render.DarkPalette()
	}
	return render.LightPalette()
}

func readInput() feedInput {
	return feedInput{
		left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		thrust: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		fire:   ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if g.failed {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.renderer.Debug = !g.renderer.Debug
		setDebugLogging(g.renderer.Debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) && g.sess.State != nil {
		opt := g.sess.State.DotOptions()
		opt.ShowDecor = !opt.ShowDecor
		g.sess.State.SetDotOptions(opt)
		gs.ShowDecor = opt.ShowDecor
	}

	err := g.sess.Feed(func(st *client.State) error {
		for _, m := range g.feed.frame(readInput(), st.Self.View()) {
			if err := dispatchMessage(st, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		g.fail(err)
		return ebiten.Termination
	}
	if discordEnabled() {
		updateDiscordScore(g.sess, &g.lastDiscord)
	}
	return nil
}

// fail logs the error that ended the session and tells the player.
func (g *Game) fail(err error) {
	g.failed = true
	logError("session %s ended: %v", g.sess.ID, err)
	dialog.Message("The session ended after %s:\n%v", g.sess.Uptime().Round(time.Second), err).
		Title("xpclient").Error()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sess.State)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gs.ViewWidth, gs.ViewHeight
}

func runGame(g *Game) error {
	title := "xpclient"
	if st := g.sess.State; st != nil && st.Map.Name != "" {
		title = fmt.Sprintf("xpclient - %s", st.Map.Name)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(gs.ViewWidth*gs.Scale, gs.ViewHeight*gs.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gs.FPS)

	op := &ebiten.RunGameOptions{ScreenTransparent: false}
	if err := ebiten.RunGameWithOptions(g, op); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
