package test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/julmajustus/tetris/game"
)

// wireMessage is the union of everything the server sends; MessageType says
// which half is populated.
type wireMessage struct {
	MessageType string          `json:"messageType"`
	Snapshot    game.Snapshot   `json:"snapshot"`
	Score       game.FinalScore `json:"score"`
}

// readMessage reads one JSON message with a timeout. A blocked Receive is
// unstuck by closing the connection.
func readMessage(t *testing.T, ws *websocket.Conn, timeout time.Duration, v interface{}) error {
	t.Helper()
	if ws == nil {
		return errors.New("websocket connection is nil")
	}

	readDone := make(chan error, 1)
	go func() {
		if err := ws.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			readDone <- err
			return
		}
		readDone <- websocket.JSON.Receive(ws, v)
	}()

	select {
	case err := <-readDone:
		return err
	case <-time.After(timeout + 500*time.Millisecond):
		_ = ws.Close()
		return fmt.Errorf("websocket read timeout after %v", timeout)
	}
}

// waitForFrame reads messages until a frame satisfies the condition.
func waitForFrame(t *testing.T, ws *websocket.Conn, timeout time.Duration, condition func(game.Snapshot) bool) (game.Snapshot, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last game.Snapshot
	for time.Now().Before(deadline) {
		var msg wireMessage
		if err := readMessage(t, ws, time.Second, &msg); err != nil {
			t.Logf("read error while waiting for frame: %v", err)
			return last, false
		}
		if msg.MessageType != "frame" {
			continue
		}
		last = msg.Snapshot
		if condition(last) {
			return last, true
		}
	}
	t.Logf("timeout waiting for frame condition after %v", timeout)
	return last, false
}

func sendKey(t *testing.T, ws *websocket.Conn, key string) {
	t.Helper()
	if err := websocket.JSON.Send(ws, game.KeyMessage{MessageType: "key", Key: key}); err != nil {
		t.Fatalf("send key %q: %v", key, err)
	}
}
