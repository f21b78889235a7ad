package server

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/gliderlabs/ssh"

	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/render"
	"github.com/julmajustus/tetris/scores"
)

// ListenAndServeSSH serves terminal sessions over SSH: the board renders
// straight into the caller's PTY and raw keystrokes drive the game. An
// empty hostKeyPath leaves the library's generated key in place.
func (s *Server) ListenAndServeSSH(addr, hostKeyPath string) error {
	srv := &ssh.Server{
		Addr:    addr,
		Handler: s.handleSSHSession,
	}
	if hostKeyPath != "" {
		if err := srv.SetOption(ssh.HostKeyFile(hostKeyPath)); err != nil {
			return fmt.Errorf("set host key: %w", err)
		}
	}
	fmt.Printf("SSH server listening on %s\n", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleSSHSession(sess ssh.Session) {
	user := sess.User()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in SSH session for %s: %v\nStack trace:\n%s\n", user, r, string(debug.Stack()))
		}
		fmt.Printf("SSH session finished for %s\n", user)
	}()

	_, winCh, isPty := sess.Pty()
	if !isPty {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		_ = sess.Exit(1)
		return
	}
	// The board layout is fixed; resizes only need draining.
	go func() {
		for range winCh {
		}
	}()

	fmt.Printf("SSH session started for %s\n", user)

	eng := render.NewEngine(sess, s.cfg)
	frames := make(chan game.Snapshot, 64)
	finals := make(chan game.FinalScore, 1)
	done := make(chan struct{})

	sink := func(snap game.Snapshot) {
		select {
		case frames <- snap:
		default:
		}
	}
	onScore := func(f game.FinalScore) {
		select {
		case <-finals:
		default:
		}
		finals <- f
	}

	pid := s.spawnSession(sink, onScore, func() { close(done) })
	if pid == nil {
		fmt.Fprintln(sess, "Error: could not start a game")
		_ = sess.Exit(1)
		return
	}
	defer s.engine.Stop(pid)

	// Input: one raw byte per keystroke, Ctrl-C counts as quit.
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, b := range buf[:n] {
				if b == 3 {
					b = s.cfg.Keys[game.EventQuit]
				}
				s.engine.Send(pid, &game.KeyPressed{Key: b}, nil)
			}
		}
	}()

	for {
		select {
		case <-done:
			_ = eng.Restore()
			s.reportSSHScore(sess, user, finals)
			return
		case <-sess.Context().Done():
			// The connection dropped. Paused and finished games emit no
			// frames, so without this case the handler would block forever
			// and keep the actor's gravity timer alive.
			return
		case snap, ok := <-frames:
			if !ok {
				return
			}
			if err := eng.Frame(snap); err != nil {
				return
			}
		}
	}
}

// reportSSHScore prints the finished game to the session and records it in
// the host's high-score table under the SSH username.
func (s *Server) reportSSHScore(sess ssh.Session, user string, finals <-chan game.FinalScore) {
	var final game.FinalScore
	select {
	case final = <-finals:
	default:
		return
	}

	fmt.Fprintf(sess, "Your score: %d points x level %d = %d\r\n\r\n", final.Points, final.Level, final.Total)

	store, err := scores.DefaultStore()
	if err != nil {
		return
	}
	if user == "" {
		user = "anonymous"
	}
	if err := store.Record(final, user); err != nil {
		fmt.Printf("Could not record score for %s: %v\n", user, err)
		return
	}
	if entries, err := store.Load(); err == nil && len(entries) > 0 {
		fmt.Fprint(sess, strings.ReplaceAll(scores.Format(entries), "\n", "\r\n"))
	}
}
