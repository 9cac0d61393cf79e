// Package server exposes the tool registry over a unix or TCP socket using
// length-prefixed JSON frames. The server is stateless: every command is
// answered from the request alone.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/logging"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/protocol"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

// Config holds listener settings.
type Config struct {
	Network         string
	Address         string
	MaxMessageBytes int
	// ReadTimeout closes connections idle for longer; zero disables it.
	ReadTimeout time.Duration
}

// Server serves tool commands to any number of concurrent clients.
type Server struct {
	cfg      Config
	registry *tools.Registry
	log      *slog.Logger

	listener net.Listener
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	closing  bool
	wg       sync.WaitGroup
}

// New creates a server. A nil logger discards logs.
func New(cfg Config, registry *tools.Registry, logger *slog.Logger) *Server {
	if cfg.Network == "" {
		cfg.Network = "unix"
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = protocol.DefaultMaxMessageBytes
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		cfg:      cfg,
		registry: registry,
		log:      logger,
		conns:    make(map[net.Conn]struct{}),
	}
}

// Listen binds the listener. A stale unix socket file is removed first.
func (s *Server) Listen() error {
	if s.cfg.Network == "unix" {
		if err := os.Remove(s.cfg.Address); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing socket: %w", err)
		}
	}
	ln, err := net.Listen(s.cfg.Network, s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s %s: %w", s.cfg.Network, s.cfg.Address, err)
	}
	s.listener = ln
	s.log.Info("server_listening", slog.String("network", s.cfg.Network), slog.String("address", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled, then closes every open
// connection and waits for the handlers to return. Listen is called first
// when needed.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() {
		s.listener.Close()
		s.mu.Lock()
		s.closing = true
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()
	})
	defer stop()

	var acceptErr error
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() == nil {
				acceptErr = fmt.Errorf("accept: %w", err)
			}
			break
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.handleClient(conn)
		}()
	}

	s.wg.Wait()
	if s.cfg.Network == "unix" {
		os.Remove(s.cfg.Address)
	}
	s.log.Info("server_stopped")
	return acceptErr
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.closing {
			conn.Close()
		}
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// handleClient answers commands on one connection until the peer hangs up.
func (s *Server) handleClient(conn net.Conn) {
	defer conn.Close()
	remote := "local"
	if addr := conn.RemoteAddr(); addr != nil && addr.String() != "" {
		remote = addr.String()
	}
	s.log.Debug("conn_open", slog.String("remote", remote))
	commands := 0
	defer func() {
		s.log.Debug("conn_close", slog.String("remote", remote), slog.Int("commands", commands))
	}()

	for {
		if s.cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}
		data, err := protocol.ReadFrame(conn, s.cfg.MaxMessageBytes)
		if err != nil {
			if errors.Is(err, protocol.ErrFrameTooLarge) {
				s.log.Warn("frame_rejected", slog.String("remote", remote), slog.String("error", err.Error()))
				// The oversized payload is still in the stream, so the
				// connection cannot be reused.
				protocol.WriteJSON(conn, protocol.Failure(err.Error(), string(tools.CodeInvalidInput)))
				return
			}
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Debug("conn_read_failed", slog.String("remote", remote), slog.String("error", err.Error()))
			}
			return
		}

		commands++
		if err := protocol.WriteJSON(conn, s.Execute(data)); err != nil {
			s.log.Warn("conn_write_failed", slog.String("remote", remote), slog.String("error", err.Error()))
			return
		}
	}
}
