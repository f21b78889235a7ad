// Terminal client: connects to the WebSocket server, renders the frame feed
// into the local terminal and streams raw keystrokes back.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lguibr/asciiring/helpers"
	"golang.org/x/net/websocket"

	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/render"
	"github.com/julmajustus/tetris/scores"
	"github.com/julmajustus/tetris/utils"
)

// wireKey is the outbound form of one keystroke. The space bar is the only
// key that does not survive a one-byte JSON string readably.
func wireKey(b byte) string {
	if b == ' ' {
		return "space"
	}
	return string(b)
}

func main() {
	addr := flag.String("addr", "ws://localhost:3001/subscribe", "server websocket URL")
	flag.Parse()

	cfg := utils.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	conn, err := websocket.Dial(*addr, "", "http://localhost/")
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		os.Exit(1)
	}
	defer conn.Close()

	savedTerminalSettings, err := utils.SetRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		os.Exit(1)
	}
	defer utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)

	interruptSignalChannel := make(chan os.Signal, 1)
	signal.Notify(interruptSignalChannel, os.Interrupt)
	go func() {
		<-interruptSignalChannel
		utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)
		os.Exit(0)
	}()

	helpers.ClearScreen()
	eng := render.NewEngine(os.Stdout, cfg)
	done := make(chan *game.FinalScore, 1)

	go func() {
		var final *game.FinalScore
		defer func() { done <- final }()
		for {
			var raw json.RawMessage
			if err := websocket.JSON.Receive(conn, &raw); err != nil {
				return
			}
			var header game.MessageHeader
			if err := json.Unmarshal(raw, &header); err != nil {
				continue
			}
			switch header.MessageType {
			case "frame":
				var frame game.FrameMessage
				if err := json.Unmarshal(raw, &frame); err != nil {
					continue
				}
				if err := eng.Frame(frame.Snapshot); err != nil {
					return
				}
			case "finalScore":
				var score game.ScoreMessage
				if err := json.Unmarshal(raw, &score); err != nil {
					continue
				}
				final = &score.Score
			}
		}
	}()

	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				return
			}
			msg := game.KeyMessage{MessageType: "key", Key: wireKey(buf[0])}
			if err := websocket.JSON.Send(conn, msg); err != nil {
				return
			}
		}
	}()

	final := <-done
	_ = eng.Restore()
	utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)
	if final != nil {
		fmt.Printf("Your score: %d points x level %d = %d\n\n", final.Points, final.Level, final.Total)
		if store, err := scores.DefaultStore(); err == nil {
			if err := store.Record(*final, scores.PlayerName()); err == nil {
				if entries, err := store.Load(); err == nil && len(entries) > 0 {
					fmt.Print(scores.Format(entries))
				}
			}
		}
	}
}
