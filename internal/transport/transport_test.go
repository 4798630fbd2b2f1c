package transport

import (
	"context"
	"net"
	"testing"
	"time"

	binderr "wfbbind/internal/errors"
	"wfbbind/util"
)

func listenLoopback(t *testing.T, freeBind bool) *net.TCPListener {
	t.Helper()
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	ln, err := Listen(context.Background(), ListenConfig{Address: "127.0.0.1", Port: port, FreeBind: freeBind})
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	return ln
}

func TestListen_Loopback(t *testing.T) {
	ln := listenLoopback(t, false)
	if ln.Addr().(*net.TCPAddr).IP.String() != "127.0.0.1" {
		t.Errorf("listening on %s", ln.Addr())
	}
}

func TestListen_FreeBind(t *testing.T) {
	// IP_FREEBIND is a plain socket option: it must not break an
	// ordinary bind where the address already exists.
	listenLoopback(t, true)
}

func TestListen_PortInUse(t *testing.T) {
	ln := listenLoopback(t, false)
	port := ln.Addr().(*net.TCPAddr).Port

	_, err := Listen(context.Background(), ListenConfig{Address: "127.0.0.1", Port: port})
	if err == nil {
		t.Fatal("expected error binding an occupied port")
	}
	var ne *binderr.NetworkError
	if !binderr.As(err, &ne) || ne.Op != "listen" {
		t.Errorf("error %v should be a listen NetworkError", err)
	}
}

func TestAcceptPoll_NoPending(t *testing.T) {
	ln := listenLoopback(t, false)

	start := time.Now()
	_, err := AcceptPoll(ln, 50*time.Millisecond)
	if !binderr.Is(err, binderr.ErrNoPending) {
		t.Fatalf("err = %v, want ErrNoPending", err)
	}
	if time.Since(start) > time.Second {
		t.Error("poll waited far longer than requested")
	}
}

func TestAcceptPoll_Connection(t *testing.T) {
	ln := listenLoopback(t, false)

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	conn, err := AcceptPoll(ln, time.Second)
	if err != nil {
		t.Fatalf("AcceptPoll: %v", err)
	}
	conn.Close()
}

func TestAcceptPoll_Closed(t *testing.T) {
	ln := listenLoopback(t, false)
	ln.Close()

	if _, err := AcceptPoll(ln, 50*time.Millisecond); !binderr.Is(err, binderr.ErrListenerClosed) {
		t.Fatalf("err = %v, want ErrListenerClosed", err)
	}
}
