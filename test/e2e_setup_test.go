package test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/server"
	"github.com/julmajustus/tetris/utils"
)

// setupE2E brings up an engine and a WebSocket server and dials one client.
func setupE2E(t *testing.T, cfg utils.Config) *websocket.Conn {
	t.Helper()

	engine := bollywood.NewEngine()
	t.Cleanup(func() { engine.Shutdown(5 * time.Second) })

	srv := server.New(engine, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscribe"
	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err, "WebSocket dial should succeed")
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}
