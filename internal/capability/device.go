package capability

import (
	"context"
	"fmt"
	"strings"

	"wfbbind/internal/protocol"
)

// NotAvailable follows the program name in an INFO slot whose program
// could not be started.
const NotAvailable = ": not available"

// handleUnbind runs the device reset program.  Only a zero exit status
// counts as success.
func (d *Dispatcher) handleUnbind(ctx context.Context) Result {
	if len(d.ResetCommand) == 0 {
		return d.fail("No reset command configured", nil)
	}
	name := d.ResetCommand[0]

	res := d.Runner.Run(ctx, d.ResetCommand)
	if res.Err != nil {
		return d.fail(fmt.Sprintf("Failed to run %s", name), res.Err)
	}
	if res.ExitCode != 0 {
		text := fmt.Sprintf("%s exited with code %d", name, res.ExitCode)
		if res.Output != "" {
			text += ": " + res.Output
		}
		return d.fail(text, nil)
	}

	d.Metrics.Unbound()
	d.Logger.Info("device reset via %s", name)
	return d.finish(protocol.OK(res.Output), protocol.ExitUnbound)
}

// handleInfo runs each info program and joins their outputs.  The exit
// status of the programs is not checked; whatever they print is the
// answer.  A program that cannot be started leaves a marker in its slot
// so the others are still reported.
func (d *Dispatcher) handleInfo(ctx context.Context) Result {
	parts := make([]string, 0, len(d.InfoCommands))
	for _, argv := range d.InfoCommands {
		if len(argv) == 0 {
			continue
		}
		res := d.Runner.Run(ctx, argv)
		if res.Err != nil {
			d.Logger.Warn("info: %v", res.Err)
			d.Metrics.RecordError(res.Err.Error())
			parts = append(parts, argv[0]+NotAvailable)
			continue
		}
		parts = append(parts, res.Output)
	}
	return Continue(protocol.OK(strings.Join(parts, protocol.InfoSeparator)))
}
