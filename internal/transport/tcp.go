package transport

import (
	"context"
	"net"
	"syscall"
	"time"

	binderr "wfbbind/internal/errors"
	"wfbbind/util"
)

// Listen binds a TCP listener according to cfg.
func Listen(ctx context.Context, cfg ListenConfig) (*net.TCPListener, error) {
	addr := util.FormatAddr(cfg.Address, cfg.Port)

	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return control(c, cfg)
		},
	}
	ln, err := lc.Listen(ctx, "tcp4", addr)
	if err != nil {
		return nil, binderr.Wrap("listen", addr, err)
	}
	return ln.(*net.TCPListener), nil
}

// AcceptPoll waits at most wait for a pending connection.  It returns
// binderr.ErrNoPending when none arrived in time, binderr.ErrListenerClosed
// once the listener is closed, and a *binderr.NetworkError otherwise.
func AcceptPoll(ln Acceptor, wait time.Duration) (net.Conn, error) {
	if err := ln.SetDeadline(time.Now().Add(wait)); err != nil {
		if binderr.Is(err, net.ErrClosed) {
			return nil, binderr.ErrListenerClosed
		}
		return nil, binderr.Wrap("accept", ln.Addr().String(), err)
	}

	conn, err := ln.Accept()
	switch {
	case err == nil:
		return conn, nil
	case binderr.Is(err, net.ErrClosed):
		return nil, binderr.ErrListenerClosed
	case binderr.IsTimeout(err):
		return nil, binderr.ErrNoPending
	default:
		return nil, binderr.Wrap("accept", ln.Addr().String(), err)
	}
}
