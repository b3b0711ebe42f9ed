// Package server runs the dev server's HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/fatih/color"

	"github.com/kyco/deadlockdev/internal/config"
	"github.com/kyco/deadlockdev/internal/logger"
	"github.com/kyco/deadlockdev/internal/ports"
	"github.com/kyco/deadlockdev/internal/router"
	"github.com/kyco/deadlockdev/internal/watcher"
)

const shutdownTimeout = 5 * time.Second

// Server wires the route table into an http.Server built from config
type Server struct {
	cfg  *config.Config
	out  io.Writer
	http *http.Server
}

// New creates a server for cfg. Access lines and component messages go
// to out.
func New(cfg *config.Config, out io.Writer) *Server {
	handler := router.New(router.Options{
		WebRoot:   cfg.WebRoot,
		AccessLog: logger.NewAccessLogger(out),
	})

	return &Server{
		cfg: cfg,
		out: out,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: config.DefaultReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          log.New(logger.NewPrefixWriter("[server] ", out), "", 0),
		},
	}
}

// Run binds the configured port and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	listener, err := ports.Listen(s.cfg.Port)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.printBanner(listener.Addr())

	if s.cfg.Watch {
		w, err := watcher.NewWatcher(s.cfg.WebRoot, s.out)
		if err != nil {
			listener.Close()
			return err
		}
		if err := w.Start(ctx); err != nil {
			listener.Close()
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	fmt.Fprintln(s.out, "[server] Server stopped")
	return nil
}

func (s *Server) printBanner(addr net.Addr) {
	port := s.cfg.Port
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}

	green := color.New(color.FgGreen)
	green.Fprintf(s.out, "[server] Deadlock Stats dev server running at http://localhost:%d\n", port)
	fmt.Fprintf(s.out, "[server] Serving static files from %s\n", s.cfg.WebRoot)
	fmt.Fprintln(s.out, "[server] Pages: / /home /profile")
	fmt.Fprintln(s.out, "[server] Simulated Steam login: /auth/login")
	fmt.Fprintln(s.out, "[server] Mock API: /api/*matches*, /api/*stats*, /api/*")
	fmt.Fprintln(s.out, "[server] Press Ctrl+C to stop")
}
