package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/require"

	"github.com/julmajustus/tetris/bollywood"
	"github.com/julmajustus/tetris/utils"
)

// stubSSHContext carries a cancelable Done channel; the embedded interface
// covers the methods the handler never calls.
type stubSSHContext struct {
	ssh.Context
	inner context.Context
}

func (c stubSSHContext) Done() <-chan struct{} { return c.inner.Done() }

// stubSSHSession is a PTY session whose keystrokes come from a channel.
// Closing the channel behaves like the client hanging up mid-read.
type stubSSHSession struct {
	ssh.Session
	ctx   ssh.Context
	keys  chan byte
	winCh chan ssh.Window
}

func (s *stubSSHSession) User() string { return "tester" }

func (s *stubSSHSession) Context() ssh.Context { return s.ctx }

func (s *stubSSHSession) Exit(code int) error { return nil }

func (s *stubSSHSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return ssh.Pty{}, s.winCh, true
}

func (s *stubSSHSession) Write(p []byte) (int, error) { return len(p), nil }

func (s *stubSSHSession) Read(p []byte) (int, error) {
	b, ok := <-s.keys
	if !ok {
		return 0, io.EOF
	}
	p[0] = b
	return 1, nil
}

// A dropped connection must unblock the handler even when the session is
// frame-silent, otherwise every disconnect leaks the handler goroutine and
// its game actor.
func TestSSH_ConnectionDropUnblocksQuiescentHandler(t *testing.T) {
	engine := bollywood.NewEngine()
	t.Cleanup(func() { engine.Shutdown(2 * time.Second) })

	cfg := utils.DefaultConfig()
	cfg.GravityStart = time.Hour // no gravity frames during the test
	srv := New(engine, cfg)
	srv.seed = 1

	ctx, cancel := context.WithCancel(context.Background())
	sess := &stubSSHSession{
		ctx:   stubSSHContext{inner: ctx},
		keys:  make(chan byte),
		winCh: make(chan ssh.Window),
	}

	handlerDone := make(chan struct{})
	go func() {
		srv.handleSSHSession(sess)
		close(handlerDone)
	}()

	// Pause the game so no further frames arrive, then drop the connection.
	sess.keys <- cfg.Keys[5]
	close(sess.keys)
	cancel()

	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "handler still blocked after the connection dropped")
	}
}
