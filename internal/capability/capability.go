// Package capability implements the bind protocol commands.  A
// Dispatcher maps each parsed request to exactly one handler and
// returns a Result that tells the connection handler whether the
// session should go on or end.
package capability

import (
	"context"
	"fmt"

	"wfbbind/internal/decoder"
	binderr "wfbbind/internal/errors"
	"wfbbind/internal/metrics"
	"wfbbind/internal/protocol"
	"wfbbind/internal/runner"
	"wfbbind/util"
)

// Result is what a handler hands back: a reply, and optionally a
// request to end the whole session with an exit code.
type Result struct {
	Reply     protocol.Reply
	terminate bool
	code      int
}

// Continue keeps the connection open after sending reply.
func Continue(reply protocol.Reply) Result {
	return Result{Reply: reply}
}

// Terminate sends reply and then ends the session with code.
func Terminate(reply protocol.Reply, code int) Result {
	return Result{Reply: reply, terminate: true, code: code}
}

// Terminates reports whether the session must stop after this reply.
func (r Result) Terminates() bool { return r.terminate }

// Code is the requested exit status.  Only meaningful if Terminates.
func (r Result) Code() int { return r.code }

// ArtifactWriter persists a BIND payload.
type ArtifactWriter interface {
	Decode(payload string) (decoder.Artifact, error)
}

// Dispatcher holds everything the command handlers need.  It is owned
// by a single session controller and is not safe for concurrent use.
type Dispatcher struct {
	Artifacts    ArtifactWriter
	Runner       runner.Runner
	ResetCommand []string
	InfoCommands [][]string

	// ForceListen turns every termination request into Continue so the
	// listener stays up for the whole window.
	ForceListen bool

	Logger  *util.Logger
	Metrics *metrics.Collector

	bound bool
}

// Bound reports whether any BIND has succeeded.
func (d *Dispatcher) Bound() bool { return d.bound }

// Dispatch runs the handler for req.
func (d *Dispatcher) Dispatch(ctx context.Context, req protocol.Request) Result {
	d.Metrics.CommandReceived(req.Command)
	d.Logger.Debug("command %s (argument: %d bytes)", req.Command, len(req.Arg))

	switch req.Command {
	case protocol.CmdVersion:
		return Continue(protocol.OK(protocol.Version))
	case protocol.CmdBind:
		return d.handleBind(req)
	case protocol.CmdUnbind:
		return d.handleUnbind(ctx)
	case protocol.CmdInfo:
		return d.handleInfo(ctx)
	case protocol.CmdUnknown:
		d.Logger.Verbose("unknown command %q", req.Keyword)
		return Continue(protocol.Err(protocol.TextUnknownCommand))
	default:
		panic(fmt.Sprintf("capability: unhandled command %v", req.Command))
	}
}

// finish applies the force-listen override to a successful command.
func (d *Dispatcher) finish(reply protocol.Reply, code int) Result {
	if d.ForceListen {
		d.Logger.Verbose("force-listen: ignoring termination request (exit %d)", code)
		return Continue(reply)
	}
	return Terminate(reply, code)
}

func (d *Dispatcher) fail(text string, err error) Result {
	switch {
	case err == nil:
		d.Logger.Verbose("%s", text)
		d.Metrics.RecordError(text)
	case binderr.Is(err, binderr.ErrMissingArgument):
		d.Logger.Verbose("%s: %v", text, err)
		d.Metrics.RecordError(err.Error())
	default:
		d.Logger.Error("%s: %v", text, err)
		d.Metrics.RecordError(err.Error())
	}
	return Continue(protocol.Err(text))
}
