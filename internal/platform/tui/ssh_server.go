package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/event"
	"github.com/arcade-cab/whackapirate/internal/game"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

// feedDepth is how many event lines each session keeps on screen.
const feedDepth = 6

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pirate/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the game over SSH via Wish. Every session gets its own
// simulated cabinet: a fresh sim port, input queue and driver, so remote
// players never touch the real hardware.
type SSHServer struct {
	config   SSHServerConfig
	gameCfg  config.Config
	reporter game.Reporter
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server. reporter may be nil to disable
// outcome reporting for remote sessions.
func NewSSHServer(cfg SSHServerConfig, gameCfg config.Config, reporter game.Reporter) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pirate-ssh",
	})

	srv := &SSHServer{
		config:   cfg,
		gameCfg:  gameCfg,
		reporter: reporter,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pirate", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds a per-session cabinet and Bubble Tea program.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := config.DefaultRuntime()
	rt.ScreenW = pty.Window.Width
	rt.ScreenH = pty.Window.Height
	rt.Seed = time.Now().UnixNano()

	sessionLogger := s.logger.With("user", sshSession.User())

	sim := hardware.NewSimPort(s.gameCfg.Hardware.Buttons)
	queue := hardware.NewQueue(hardware.DefaultQueueDepth)
	bus := event.NewDispatcher(sessionLogger)
	feed := NewEventFeed(bus, feedDepth)

	driver := game.NewDriver(game.Params{
		Config:   s.gameCfg,
		Runtime:  rt,
		Logger:   sessionLogger,
		Bus:      bus,
		Port:     sim,
		Queue:    queue,
		Reporter: s.reporter,
	})

	ctx, cancel := context.WithCancel(sshSession.Context())
	poller := hardware.NewPoller(sim, queue, sessionLogger)
	poller.Start(ctx)

	onQuit := func() {
		cancel()
		feed.Close()
		//nolint:errcheck // sim close cannot fail in a way the session cares about
		sim.Close()
	}

	model := NewModel(driver, sim, feed, s.gameCfg.Hardware, rt, onQuit)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
