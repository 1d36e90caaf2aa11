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

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/multiplayer"
	"github.com/vovakirdan/ringpong/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ringpong/host_key.
	HostKeyPath string

	// DBPath is the path to the rallies database. Empty disables storage.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the ringpong configuration used for every match.
	Game config.RingPongConfig

	// FrameRate overrides Game.Loop.FrameRate when positive.
	FrameRate int

	// EventBuffer is the per-session event queue size.
	EventBuffer int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ringpong/ringpong.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultRingPongConfig(),
		EventBuffer: 128,
	}
}

// SSHServer serves ringpong sessions over SSH with Wish.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
}

type sessionContextKey struct{}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ringpong-ssh",
		})
	}

	// Open storage
	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open rallies database", "error", err)
			// Continue without storage
			store = nil
		}
	}

	frameRate := cfg.FrameRate
	if frameRate <= 0 {
		frameRate = cfg.Game.Loop.FrameRate
	}

	sessions := multiplayer.NewSessionRegistry()
	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.Game = cfg.Game
	coordCfg.FrameRate = frameRate
	coordinator := multiplayer.NewCoordinator(coordCfg, sessions, logger.WithPrefix("coordinator"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		sessions:    sessions,
		coordinator: coordinator,
		logger:      logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ringpong", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging, session, then the TUI.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionMiddleware registers a multiplayer session for the lifetime of the
// SSH connection.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := multiplayer.SessionID(fmt.Sprintf("%s-%d", sshSession.User(), time.Now().UnixNano()))
		session := multiplayer.NewChannelSession(id, s.config.EventBuffer)
		s.sessions.Register(session)
		sshSession.Context().SetValue(sessionContextKey{}, session)

		defer func() {
			s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
			s.sessions.Unregister(id)
			session.Close()
			if n := session.Dropped(); n > 0 {
				s.logger.Debug("session dropped events", "session", id, "count", n)
			}
		}()

		next(sshSession)
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	session, _ := sshSession.Context().Value(sessionContextKey{}).(*multiplayer.ChannelSession)

	runtime := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		FrameRate: s.config.FrameRate,
		Seed:      time.Now().UnixNano(),
	}

	opts := SessionOptions{
		Session: session,
		Config:  s.config.Game,
		Runtime: runtime,
		Logger:  s.logger,
	}
	if session != nil {
		opts.Coordinator = s.coordinator
	}
	if s.store != nil {
		opts.Store = s.store
	}

	return NewSessionModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		//nolint:errcheck // Already failing
		s.Shutdown()
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown stops the coordinator and every running match, then the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.coordinator.Stop()
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		//nolint:errcheck // Best-effort close on shutdown
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
