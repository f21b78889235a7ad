package game

import (
	"fmt"
	"math/rand"
	"runtime/debug"
	"time"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/utils"
)

// GameActor owns one GameSession and is its only mutator. Gravity ticks and
// key presses arrive through the actor mailbox, so every state-machine step
// processes exactly one event and no locking is needed around the session.
//
// The actor self-schedules gravity: after each tick it re-arms a timer with
// the decayed interval for the session's current level.
type GameActor struct {
	cfg      utils.Config
	rng      *rand.Rand
	frames   FrameSink
	onScore  func(FinalScore)
	onQuit   func()
	session  *GameSession
	engine   *bollywood.Engine
	selfPID  *bollywood.PID
	interval time.Duration
	timer    *time.Timer
	reported bool
}

// NewGameActorProducer creates a producer for a GameActor. frames receives
// the render feed, onScore the score feed when a game ends, onQuit fires
// once when the player quits. Any hook may be nil.
func NewGameActorProducer(cfg utils.Config, rng *rand.Rand, frames FrameSink, onScore func(FinalScore), onQuit func()) bollywood.Producer {
	return func() bollywood.Actor {
		return &GameActor{
			cfg:     cfg,
			rng:     rng,
			frames:  frames,
			onScore: onScore,
			onQuit:  onQuit,
		}
	}
}

// Receive is the main message handler for the GameActor.
func (a *GameActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in GameActor %s Receive: %v\nStack trace:\n%s\n", a.selfPID, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
		a.engine = ctx.Engine()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.session = NewSession(a.rng)
		a.session.SetSink(a.frames)
		a.interval = a.cfg.GravityStart
		if a.frames != nil {
			a.frames(a.session.Snapshot())
		}
		a.scheduleTick()

	case *GameTick:
		if a.session == nil {
			return
		}
		a.session.Step(EventTick)
		a.afterStep(EventTick)
		// Paused and finished sessions swallow ticks; their interval
		// must not keep decaying in the meantime.
		if a.session.Phase() == PhaseFalling {
			a.interval = utils.NextGravityInterval(a.interval, a.session.Progress().Level, a.cfg.GravityFloor)
		}
		a.scheduleTick()

	case *KeyPressed:
		if a.session == nil {
			return
		}
		ev, ok := EventFromKey(a.cfg.Keys, msg.Key)
		if !ok {
			return
		}
		if ev == EventQuit {
			// A paused session swallows quit like every other key; only
			// the pause toggle leaves the paused state.
			if a.session.Phase() == PhasePaused {
				return
			}
			a.finish()
			return
		}
		a.session.Step(ev)
		a.afterStep(ev)

	case bollywood.Stopping:
		if a.timer != nil {
			a.timer.Stop()
		}
	}
}

// afterStep handles the transitions the session cannot see: score-feed
// reporting on terminal phases and gravity reset on restart.
func (a *GameActor) afterStep(ev Event) {
	if ev == EventRestart && a.session.Phase() == PhaseFalling {
		a.interval = a.cfg.GravityStart
		a.reported = false
	}
	if a.session.Phase().Terminal() && !a.reported {
		a.reported = true
		if a.onScore != nil {
			a.onScore(a.session.Final())
		}
	}
}

// finish reports the score if the game never reached a terminal phase,
// fires the quit hook and stops the actor.
func (a *GameActor) finish() {
	if !a.reported {
		a.reported = true
		if a.onScore != nil {
			a.onScore(a.session.Final())
		}
	}
	if a.onQuit != nil {
		a.onQuit()
	}
	a.engine.Stop(a.selfPID)
}

func (a *GameActor) scheduleTick() {
	engine, pid, interval := a.engine, a.selfPID, a.interval
	a.timer = time.AfterFunc(interval, func() {
		engine.Send(pid, &GameTick{}, nil)
	})
}
