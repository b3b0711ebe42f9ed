package ports

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrPortInUse is returned by Listen when another process holds the port
var ErrPortInUse = errors.New("port is already in use")

// Listen binds a TCP listener on all interfaces
func Listen(port int) (net.Listener, error) {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %d", ErrPortInUse, port)
		}
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}

// IsAvailable checks if a port is available for use
func IsAvailable(port int) bool {
	listener, err := Listen(port)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
