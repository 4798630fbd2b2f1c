// Package session owns one accepted client connection:  it reads
// command lines, dispatches them, and writes each reply before reading
// the next line.
package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"wfbbind/internal/capability"
	"wfbbind/internal/metrics"
	"wfbbind/internal/protocol"
	"wfbbind/util"
)

// Dispatcher executes one parsed request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req protocol.Request) capability.Result
}

// Outcome is what a finished session reports to the controller.
type Outcome struct {
	Terminate bool
	Code      int
}

// Session encapsulates the runtime context for a single connection.
type Session struct {
	Conn    net.Conn
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New creates a Session bound to the given connection.
func New(conn net.Conn, logger *util.Logger, m *metrics.Collector) *Session {
	return &Session{Conn: conn, Logger: logger, Metrics: m}
}

// Serve reads and answers lines until the client disconnects or a
// command ends the session.  The connection is always closed on
// return.
func (s *Session) Serve(ctx context.Context, d Dispatcher) Outcome {
	s.Metrics.ConnectionOpened()
	defer s.Metrics.ConnectionClosed()
	defer s.Conn.Close()

	// A signal must not leave us parked in a read forever.
	stop := context.AfterFunc(ctx, func() { s.Conn.Close() })
	defer stop()

	peer := s.Conn.RemoteAddr()
	r := bufio.NewReader(s.Conn)
	w := bufio.NewWriter(s.Conn)

	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			res := s.handle(ctx, d, line)
			werr := s.reply(w, res.Reply)
			if werr != nil {
				s.Logger.Verbose("write to %s: %v", peer, werr)
			}
			// The command already took effect even if the client
			// vanished before reading the reply.
			if res.Terminates() {
				s.Logger.Verbose("session with %s ended by command (exit %d)", peer, res.Code())
				return Outcome{Terminate: true, Code: res.Code()}
			}
			if werr != nil {
				return Outcome{}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !isClosed(err) {
				s.Logger.Verbose("read from %s: %v", peer, err)
			}
			return Outcome{}
		}
	}
}

func (s *Session) handle(ctx context.Context, d Dispatcher, line string) capability.Result {
	req, err := protocol.ParseLine(line)
	if err != nil {
		s.Metrics.RecordError(err.Error())
		return capability.Continue(protocol.Err(protocol.TextInvalidFormat))
	}
	return d.Dispatch(ctx, req)
}

func (s *Session) reply(w *bufio.Writer, r protocol.Reply) error {
	s.Logger.Debug("reply: %s", r)
	if _, err := w.WriteString(r.Line()); err != nil {
		return err
	}
	return w.Flush()
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
