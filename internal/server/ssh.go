package server

import (
	"fmt"
	"io"
	"log"

	"github.com/gliderlabs/ssh"

	"mask-maze/internal/game"
	"mask-maze/internal/render"
)

// SSHServer serves one independent game per SSH session. Sessions share the
// world's atlas and entity store.
type SSHServer struct {
	world   *game.World
	addr    string
	hostKey string
	scale   int
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, w *game.World, scale int) *SSHServer {
	return &SSHServer{
		world:   w,
		addr:    addr,
		hostKey: hostKey,
		scale:   scale,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	g, err := game.NewGame(s.world)
	if err != nil {
		log.Printf("Session %s: %v", username, err)
		fmt.Fprintf(sess, "Error: %v\n", err)
		return
	}

	display := newSessionDisplay(sess, ptyReq.Window.Width, ptyReq.Window.Height, s.scale)
	gl := game.NewGameLoop(g, display)

	log.Printf("Player connected: %s", username)
	defer log.Printf("Player disconnected: %s", username)

	// Setup terminal
	io.WriteString(sess, render.EnterAltScreen)
	io.WriteString(sess, render.HideCursor)
	io.WriteString(sess, render.ClearScreen)
	defer func() {
		io.WriteString(sess, render.ShowCursor)
		io.WriteString(sess, render.LeaveAltScreen)
	}()

	// Goroutine: read input
	go func() {
		defer gl.Stop()
		inputCh := gl.InputChan()
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == game.ActionQuit {
					return
				}
				select {
				case inputCh <- action:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			display.resize(win.Width, win.Height)
		}
	}()

	if err := gl.Run(); err != nil {
		log.Printf("Session %s ended: %v", username, err)
		return
	}
	if g.Done() {
		log.Printf("Player %s cleared every level", username)
	}
}
