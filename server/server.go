// Package server exposes the game over the network: a WebSocket endpoint
// for JSON clients and an SSH endpoint that renders straight into the
// caller's terminal. Every connection gets its own GameActor, so sessions
// never share state.
package server

import (
	"fmt"
	"math/rand"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/utils"
)

type Server struct {
	engine *bollywood.Engine
	cfg    utils.Config

	// seed overrides the per-connection RNG seed when non-zero. Tests use
	// it for deterministic piece sequences.
	seed int64
}

func New(engine *bollywood.Engine, cfg utils.Config) *Server {
	return &Server{engine: engine, cfg: cfg}
}

// spawnSession starts a fresh GameActor wired to the given hooks and
// returns its PID.
func (s *Server) spawnSession(frames game.FrameSink, onScore func(game.FinalScore), onQuit func()) *bollywood.PID {
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return s.engine.Spawn(bollywood.NewProps(game.NewGameActorProducer(s.cfg, rng, frames, onScore, onQuit)))
}

// HandleHealth answers liveness probes.
func (s *Server) HandleHealth() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Printf("PANIC recovered in HandleHealth: %v\nStack trace:\n%s\n", rec, string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			fmt.Println("Error writing health response:", err)
		}
	}
}
