package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/game"
)

// Handler mounts the WebSocket endpoint and the health probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	mux.HandleFunc("/healthz", s.HandleHealth())
	return mux
}

// ListenAndServe serves the WebSocket surface on addr until the listener
// fails.
func (s *Server) ListenAndServe(addr string) error {
	fmt.Printf("WebSocket server listening on %s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// HandleSubscribe runs one full game per connection: it spawns a GameActor,
// pumps its render and score feeds out as JSON and feeds key messages back
// into the actor mailbox. The handler returns when the player quits, the
// connection drops or the game ends and the client hangs up.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.RemoteAddr().String()
		fmt.Printf("HandleSubscribe: new player from %s\n", connectionAddr)

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in HandleSubscribe for %s: %v\nStack trace:\n%s\n", connectionAddr, r, string(debug.Stack()))
			}
			fmt.Printf("HandleSubscribe: handler exiting for %s\n", connectionAddr)
			_ = ws.Close()
		}()

		frames := make(chan game.Snapshot, 64)
		scores := make(chan game.FinalScore, 1)
		done := make(chan struct{})
		var once sync.Once
		finish := func() { once.Do(func() { close(done) }) }

		// The sink runs on the actor goroutine; drop frames instead of
		// blocking the state machine behind a slow client.
		sink := func(snap game.Snapshot) {
			select {
			case frames <- snap:
			default:
			}
		}
		// Keep only the latest final score; a replayed game supersedes
		// the one before it.
		onScore := func(f game.FinalScore) {
			select {
			case <-scores:
			default:
			}
			scores <- f
		}

		pid := s.spawnSession(sink, onScore, finish)
		if pid == nil {
			fmt.Printf("HandleSubscribe: could not spawn session for %s\n", connectionAddr)
			return
		}
		defer s.engine.Stop(pid)

		go s.writeLoop(ws, frames, scores, done)
		s.readLoop(ws, pid, connectionAddr)
		finish()
	}
}

// writeLoop drains the render and score feeds into the connection. On quit
// it flushes a pending final score and closes the connection, which is what
// unblocks the read loop.
func (s *Server) writeLoop(ws *websocket.Conn, frames <-chan game.Snapshot, scores <-chan game.FinalScore, done <-chan struct{}) {
	for {
		select {
		case <-done:
			select {
			case final := <-scores:
				_ = websocket.JSON.Send(ws, game.ScoreMessage{MessageType: "finalScore", Score: final})
			default:
			}
			_ = ws.Close()
			return
		case snap := <-frames:
			if err := websocket.JSON.Send(ws, game.FrameMessage{MessageType: "frame", Snapshot: snap}); err != nil {
				return
			}
		case final := <-scores:
			if err := websocket.JSON.Send(ws, game.ScoreMessage{MessageType: "finalScore", Score: final}); err != nil {
				return
			}
		}
	}
}

// readLoop turns incoming key messages into mailbox events until the
// connection dies.
func (s *Server) readLoop(ws *websocket.Conn, pid *bollywood.PID, connectionAddr string) {
	for {
		var msg game.KeyMessage
		err := websocket.JSON.Receive(ws, &msg)
		if err != nil {
			isClosedErr := err == io.EOF ||
				strings.Contains(err.Error(), "use of closed network connection") ||
				strings.Contains(err.Error(), "closed")
			if !isClosedErr {
				fmt.Printf("ReadLoop: error receiving from %s: %v\n", connectionAddr, err)
			}
			return
		}
		if msg.MessageType != "key" {
			continue
		}
		if key, ok := keyByte(msg.Key); ok {
			s.engine.Send(pid, &game.KeyPressed{Key: key}, nil)
		}
	}
}

// keyByte reduces the wire form of a key to the single byte the binding
// string works with. "space" is the one named key clients may send.
func keyByte(key string) (byte, bool) {
	if key == "space" {
		return ' ', true
	}
	if len(key) == 1 {
		return key[0], true
	}
	return 0, false
}
