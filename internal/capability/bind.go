package capability

import (
	binderr "wfbbind/internal/errors"
	"wfbbind/internal/protocol"
)

func (d *Dispatcher) handleBind(req protocol.Request) Result {
	if !req.HasArg {
		return d.fail(protocol.TextMissingBindArg, binderr.ErrMissingArgument)
	}

	art, err := d.Artifacts.Decode(req.Arg)
	if err != nil {
		return d.fail(protocol.TextProcessFailed, err)
	}

	d.bound = true
	d.Metrics.Bound(art.Size)
	d.Logger.Info("artifact written to %s (%d bytes, blake2b-256 %s)", art.Path, art.Size, art.Digest)

	return d.finish(protocol.OK(""), protocol.ExitBound)
}
