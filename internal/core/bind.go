package core

import (
	"context"
	"net"
	"time"

	binderr "wfbbind/internal/errors"
	"wfbbind/internal/metrics"
	"wfbbind/internal/protocol"
	"wfbbind/internal/retry"
	"wfbbind/internal/session"
	"wfbbind/internal/transport"
	"wfbbind/util"
)

// DefaultPollInterval is how long a single accept attempt may block
// before the deadline is checked again.
const DefaultPollInterval = 100 * time.Millisecond

// maxAcceptBackoff caps the pause between consecutive failed accepts.
const maxAcceptBackoff = time.Second

// Dispatcher is the command layer as seen by the controller.
type Dispatcher interface {
	session.Dispatcher
	// Bound reports whether a BIND has succeeded in this window.
	Bound() bool
}

type state int

const (
	stateListening state = iota
	stateServing
	stateShuttingDown
)

func (s state) String() string {
	switch s {
	case stateListening:
		return "LISTENING"
	case stateServing:
		return "SERVING_CLIENT"
	default:
		return "SHUTTING_DOWN"
	}
}

// BindMode runs one pairing window: it accepts clients one at a time
// until the listen duration elapses or a command ends the session.
type BindMode struct {
	Listen       transport.ListenConfig
	Duration     time.Duration
	PollInterval time.Duration
	Dispatcher   Dispatcher
	Logger       *util.Logger
	Metrics      *metrics.Collector
}

// Run opens the listener and serves the window.  A setup failure is
// returned as is; every other outcome follows Serve.
func (m *BindMode) Run(ctx context.Context) error {
	ln, err := transport.Listen(ctx, m.Listen)
	if err != nil {
		return err
	}
	return m.Serve(ctx, ln)
}

// Serve drives the accept loop on an already open listener and closes
// it before returning.
//
// It returns nil for exit status 0 and an *errors.ExitError for every
// other status: ExitBound or ExitUnbound when a command ended the
// session, ExitNothingBound when the window closed with no successful
// BIND.
func (m *BindMode) Serve(ctx context.Context, ln transport.Acceptor) error {
	start := time.Now()
	defer ln.Close()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	m.Logger.Info("listening on %s for %s", ln.Addr(), m.Duration)

	var (
		conn       net.Conn
		terminated bool
		code       int
	)
	bo := &retry.Backoff{Initial: m.pollInterval(), Max: maxAcceptBackoff, Multiplier: 2, Jitter: true}

	prev := stateShuttingDown
	for st := stateListening; st != stateShuttingDown; {
		if st != prev {
			m.Logger.Debug("state %s", st)
			prev = st
		}
		switch st {
		case stateListening:
			if time.Since(start) >= m.Duration {
				m.Logger.Info("listen duration expired")
				st = stateShuttingDown
				continue
			}
			c, err := transport.AcceptPoll(ln, m.pollWait(start))
			switch {
			case err == nil:
				bo.Reset()
				conn = c
				st = stateServing
			case binderr.Is(err, binderr.ErrNoPending):
			case binderr.Is(err, binderr.ErrListenerClosed):
				m.Logger.Verbose("listener closed")
				st = stateShuttingDown
			default:
				// Transient accept failure: never reported to a client.
				if binderr.IsRetryable(err) {
					m.Logger.Verbose("accept failed (%d in a row): %v", bo.Failures()+1, err)
				} else {
					m.Logger.Warn("accept failed (%d in a row): %v", bo.Failures()+1, err)
				}
				m.Metrics.RecordError(err.Error())
				bo.Wait(ctx, m.Duration-time.Since(start)) //nolint:errcheck
			}

		case stateServing:
			m.Logger.Info("client connected from %s", conn.RemoteAddr())
			out := session.New(conn, m.Logger, m.Metrics).Serve(ctx, m.Dispatcher)
			m.Logger.Info("client disconnected")
			conn = nil
			if out.Terminate {
				terminated, code = true, out.Code
				st = stateShuttingDown
			} else {
				st = stateListening
			}
		}
	}

	if m.Logger.DebugEnabled() {
		m.Logger.Debug("metrics: %s", m.Metrics.JSON())
	}

	if terminated {
		return exitFor(code)
	}
	if m.Dispatcher.Bound() {
		return nil
	}
	return binderr.Exit(protocol.ExitNothingBound, "listen window closed with nothing bound")
}

// pollWait bounds one accept attempt by the poll interval and by the
// time left in the window.
func (m *BindMode) pollWait(start time.Time) time.Duration {
	wait := m.pollInterval()
	if left := m.Duration - time.Since(start); left < wait {
		wait = left
	}
	return wait
}

func (m *BindMode) pollInterval() time.Duration {
	if m.PollInterval > 0 {
		return m.PollInterval
	}
	return DefaultPollInterval
}

func exitFor(code int) error {
	switch code {
	case protocol.ExitOK:
		return nil
	case protocol.ExitBound:
		return binderr.Exit(code, "artifact bound")
	case protocol.ExitUnbound:
		return binderr.Exit(code, "device unbound")
	default:
		return binderr.Exit(code, "session terminated")
	}
}
