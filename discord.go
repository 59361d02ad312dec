package main

import (
	"context"
	"fmt"
	"time"

	richclient "github.com/hugolgst/rich-go/client"

	"xpclient/client"
)

// initDiscordRPC publishes presence under the application id from the
// settings file.
func initDiscordRPC(ctx context.Context, sess *client.Session, mapName string) {
	if err := richclient.Login(gs.DiscordAppID); err != nil {
		logError("discord rpc login: %v", err)
		return
	}
	start := sess.Started
	if err := richclient.SetActivity(richclient.Activity{
		State:   "xpclient",
		Details: fmt.Sprintf("Flying on %s", mapName),
		Timestamps: &richclient.Timestamps{
			Start: &start,
		},
	}); err != nil {
		logError("discord rpc activity: %v", err)
	}
	logDebug("discord presence for session %s", sess.ID)
	go func() {
		<-ctx.Done()
		richclient.Logout()
	}()
}

// updateDiscordScore refreshes the presence with our standing at most once
// every 15 seconds, the rate Discord accepts.
func updateDiscordScore(sess *client.Session, last *time.Time) {
	if time.Since(*last) < 15*time.Second || sess.State == nil {
		return
	}
	*last = time.Now()
	self, ok := sess.State.Roster.Self()
	if !ok {
		return
	}
	start := sess.Started
	if err := richclient.SetActivity(richclient.Activity{
		State:   fmt.Sprintf("Score %.0f", self.Score),
		Details: fmt.Sprintf("Flying on %s", sess.State.Map.Name),
		Timestamps: &richclient.Timestamps{
			Start: &start,
		},
	}); err != nil {
		logDebug("discord rpc activity: %v", err)
	}
}
