// wfb_bind_rcv - the drone side of the OpenIPC bind handshake.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wfbbind/cmd"
	binderr "wfbbind/internal/errors"
	"wfbbind/internal/protocol"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx, os.Args[1:])
	cancel()

	var exit *binderr.ExitError
	if err != nil && !binderr.As(err, &exit) {
		fmt.Fprintf(os.Stderr, "wfb_bind_rcv: %v\n", err)
	}
	os.Exit(binderr.ExitCode(err, protocol.ExitFatal))
}
