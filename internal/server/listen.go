package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"
)

// Listen binds port on all interfaces. If the port is taken it tries port+1
// once and returns whichever listener succeeded.
func Listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err == nil {
		return ln, nil
	}
	if !errors.Is(err, syscall.EADDRINUSE) {
		return nil, fmt.Errorf("listen on %d: %w", port, err)
	}

	slog.Warn("port in use, trying next", "port", port, "next", port+1)
	ln, err = net.Listen("tcp", fmt.Sprintf(":%d", port+1))
	if err != nil {
		return nil, fmt.Errorf("listen on %d: %w", port+1, err)
	}
	return ln, nil
}

// Port reports the TCP port a listener is bound to.
func Port(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
