// Package transport opens the TCP listener the pairing window runs on
// and provides a deadline-bounded accept, so the caller can poll for
// clients without ever blocking past its own listen budget.
package transport

import (
	"net"
	"time"
)

// ListenConfig describes the listening socket.
type ListenConfig struct {
	Address string // IPv4 literal, e.g. "10.5.99.2"
	Port    int

	// FreeBind allows binding an address that is not (yet) assigned to
	// any local interface.  Only honoured on Linux.
	FreeBind bool
}

// Acceptor is the subset of *net.TCPListener the controller needs.
type Acceptor interface {
	SetDeadline(t time.Time) error
	Accept() (net.Conn, error)
	Close() error
	Addr() net.Addr
}

var _ Acceptor = (*net.TCPListener)(nil)
