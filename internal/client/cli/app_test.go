package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/exercisetracker/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:3000", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, app.api)

	_, err = NewApp(&config.Config{ServerURL: "127.0.0.1:3000"})
	assert.Error(t, err)
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	assert.Equal(t, "", app.getStatus())

	app.Mode = ModeOnline
	assert.Equal(t, "(online)", app.getStatus())

	app.currentUser = "u1"
	assert.Equal(t, "(u1 online)", app.getStatus())
}

func TestCheckOnline(t *testing.T) {
	api := &fakeAPI{pingErr: errors.New("down")}
	app, _ := newTestApp(api, readerFromLines())

	app.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, app.Mode)

	api.pingErr = nil
	app.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, app.Mode)
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	app, _ := newTestApp(&fakeAPI{}, readerFromLines())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_ExitsOnQuit(t *testing.T) {
	silencePrint(t)
	api := &fakeAPI{}
	app, _ := newTestApp(api, readerFromLines("quit"))

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.Equal(t, ModeOnline, app.Mode)
}
