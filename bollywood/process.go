package bollywood

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox, its goroutine
// and its stop signalling.
type process struct {
	engine   *Engine
	pid      *PID
	actor    Actor
	mailbox  chan *messageEnvelope
	props    *Props
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

// signalStop closes the stop channel exactly once, no matter how many
// callers race to it.
func (p *process) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage queues a message for the actor. User messages sent after the
// actor stopped are dropped, as are messages that would block a full mailbox.
func (p *process) sendMessage(message interface{}, sender *PID) {
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}

	envelope := &messageEnvelope{Sender: sender, Message: message}
	select {
	case p.mailbox <- envelope:
	default:
		fmt.Printf("Actor %s mailbox full, dropping message type %T\n", p.pid.ID, message)
	}
}

// run is the main loop for the actor process.
func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			func() {
				defer func() {
					if r := recover(); r != nil {
						fmt.Printf("Actor %s panicked during Stopped processing: %v\n", p.pid.ID, r)
					}
				}()
				p.invokeReceive(Stopped{}, nil)
			}()
		}
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Actor %s panicked: %v\nStack trace:\n%s\n", p.pid.ID, r, string(debug.Stack()))
			p.stopped.Store(true)
			p.signalStop()
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("Actor %s producer returned nil actor", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(Stopping{}, nil)
			}
			return

		case envelope := <-p.mailbox:
			_, isStopping := envelope.Message.(Stopping)
			_, isStoppedMsg := envelope.Message.(Stopped)
			if p.stopped.Load() && !isStopping && !isStoppedMsg {
				continue
			}

			switch msg := envelope.Message.(type) {
			case Started:
				p.invokeReceive(msg, envelope.Sender)
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(msg, envelope.Sender)
					p.signalStop()
				}
			default:
				p.invokeReceive(envelope.Message, envelope.Sender)
			}
		}
	}
}

// invokeReceive calls the actor's Receive method with panic protection so a
// bad message cannot take down the whole engine.
func (p *process) invokeReceive(msg interface{}, sender *PID) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: msg,
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("Actor %s panicked during Receive(%T): %v\nStack trace:\n%s\n", p.pid.ID, msg, r, string(debug.Stack()))
			}
		}()
		p.actor.Receive(ctx)
	}()
}
