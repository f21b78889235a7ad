// Falling-block game over three surfaces: the local terminal by default,
// or served to remote players over WebSocket or SSH.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/render"
	"github.com/julmajustus/tetris/scores"
	"github.com/julmajustus/tetris/server"
	"github.com/julmajustus/tetris/utils"
)

func main() {
	keys := flag.String("keys", utils.DefaultConfig().Keys,
		"key bindings: left, reverse rotate, rotate, right, drop, pause, quit, restart")
	listen := flag.String("listen", "", "serve WebSocket players on this address instead of playing locally")
	sshAddr := flag.String("ssh", "", "serve SSH players on this address instead of playing locally")
	hostKey := flag.String("hostkey", "", "SSH host key file (with -ssh)")
	flag.Parse()

	cfg := utils.DefaultConfig()
	cfg.Keys = *keys
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	engine := bollywood.NewEngine()

	switch {
	case *listen != "":
		srv := server.New(engine, cfg)
		if err := srv.ListenAndServe(*listen); err != nil {
			fmt.Println("Server error:", err)
			os.Exit(1)
		}
	case *sshAddr != "":
		srv := server.New(engine, cfg)
		if err := srv.ListenAndServeSSH(*sshAddr, *hostKey); err != nil {
			fmt.Println("Server error:", err)
			os.Exit(1)
		}
	default:
		if err := playLocal(engine, cfg); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	}
}

// playLocal runs one game in the invoking terminal: raw keyboard in, diffed
// frames out, high scores on the way out.
func playLocal(engine *bollywood.Engine, cfg utils.Config) error {
	savedTerminalSettings, err := utils.SetRawMode(os.Stdin.Fd())
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)

	interruptSignalChannel := make(chan os.Signal, 1)
	signal.Notify(interruptSignalChannel, os.Interrupt)
	go func() {
		<-interruptSignalChannel
		utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)
		os.Exit(0)
	}()

	eng := render.NewEngine(os.Stdout, cfg)
	frames := make(chan game.Snapshot, 64)
	finals := make(chan game.FinalScore, 1)
	done := make(chan struct{})

	sink := func(snap game.Snapshot) {
		select {
		case frames <- snap:
		default:
		}
	}
	// Keep only the latest final score: a replayed game supersedes the
	// one before it. The actor goroutine is the only producer.
	onScore := func(f game.FinalScore) {
		select {
		case <-finals:
		default:
		}
		finals <- f
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pid := engine.Spawn(bollywood.NewProps(game.NewGameActorProducer(cfg, rng, sink, onScore, func() { close(done) })))
	if pid == nil {
		return fmt.Errorf("could not start the game")
	}
	defer engine.Shutdown(2 * time.Second)

	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				return
			}
			engine.Send(pid, &game.KeyPressed{Key: buf[0]}, nil)
		}
	}()

	for {
		select {
		case <-done:
			_ = eng.Restore()
			utils.RestoreMode(os.Stdin.Fd(), savedTerminalSettings)
			reportScore(finals)
			return nil
		case snap := <-frames:
			if err := eng.Frame(snap); err != nil {
				return err
			}
		}
	}
}

// reportScore prints the finished game and the updated high-score table.
func reportScore(finals <-chan game.FinalScore) {
	var final game.FinalScore
	select {
	case final = <-finals:
	default:
		return
	}

	fmt.Printf("Your score: %d points x level %d = %d\n\n", final.Points, final.Level, final.Total)

	store, err := scores.DefaultStore()
	if err != nil {
		fmt.Println("High scores unavailable:", err)
		return
	}
	if err := store.Record(final, scores.PlayerName()); err != nil {
		fmt.Println("Could not record score:", err)
		return
	}
	entries, err := store.Load()
	if err != nil || len(entries) == 0 {
		return
	}
	fmt.Print(scores.Format(entries))
}
