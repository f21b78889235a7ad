package test

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/server"
	"github.com/julmajustus/tetris/utils"
)

// Every connection gets its own session: concurrent players each see a
// fresh level-1 game and one player quitting leaves the rest running.
func TestStress_ConcurrentSessionsAreIsolated(t *testing.T) {
	const players = 8

	cfg := utils.DefaultConfig()
	cfg.GravityStart = 10 * time.Millisecond
	cfg.GravityFloor = time.Millisecond

	engine := bollywood.NewEngine()
	defer engine.Shutdown(5 * time.Second)
	srv := server.New(engine, cfg)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscribe"

	conns := make([]*websocket.Conn, players)
	for i := range conns {
		ws, err := websocket.Dial(wsURL, "", "http://localhost/")
		require.NoError(t, err, "player %d dial", i)
		conns[i] = ws
	}
	defer func() {
		for _, ws := range conns {
			_ = ws.Close()
		}
	}()

	var wg sync.WaitGroup
	for i, ws := range conns {
		wg.Add(1)
		go func(i int, ws *websocket.Conn) {
			defer wg.Done()
			snap, ok := waitForFrame(t, ws, e2eTimeout, func(s game.Snapshot) bool {
				return s.Phase == game.PhaseFalling
			})
			assert.True(t, ok, "player %d should get frames", i)
			assert.Equal(t, 1, snap.Level, "player %d", i)
			assert.Equal(t, int64(0), snap.Points, "player %d", i)
		}(i, ws)
	}
	wg.Wait()

	// One player leaves; a survivor keeps getting fresh frames.
	sendKey(t, conns[0], "q")
	time.Sleep(100 * time.Millisecond)

	_, ok := waitForFrame(t, conns[1], e2eTimeout, func(s game.Snapshot) bool {
		return true
	})
	assert.True(t, ok, "remaining sessions must keep running after one quits")
}
