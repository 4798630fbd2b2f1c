// Package metrics provides lightweight, lock-free counters for a single
// pairing window.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"wfbbind/internal/protocol"
)

// numCommands covers every protocol.Command value.
const numCommands = int(protocol.CmdInfo) + 1

// Collector tracks runtime metrics for one listen window.
// A nil Collector is safe to use: all methods become no-ops.
type Collector struct {
	connectionsActive atomic.Int64
	connectionsTotal  atomic.Int64
	commands          [numCommands]atomic.Int64
	binds             atomic.Int64
	unbinds           atomic.Int64
	bytesDecoded      atomic.Int64
	errorsTotal       atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection metrics ───────────────────────────────────────────────

// ConnectionOpened increments both the active and total counters.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(1)
	c.connectionsTotal.Add(1)
}

// ConnectionClosed decrements the active connection counter.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(-1)
}

// ActiveConnections returns the current number of open connections.
func (c *Collector) ActiveConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsActive.Load()
}

// TotalConnections returns the lifetime connection count.
func (c *Collector) TotalConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsTotal.Load()
}

// ── Command metrics ──────────────────────────────────────────────────

// CommandReceived counts one dispatched command.
func (c *Collector) CommandReceived(cmd protocol.Command) {
	if c == nil || int(cmd) < 0 || int(cmd) >= numCommands {
		return
	}
	c.commands[cmd].Add(1)
}

// Commands returns how many times cmd was received.
func (c *Collector) Commands(cmd protocol.Command) int64 {
	if c == nil || int(cmd) < 0 || int(cmd) >= numCommands {
		return 0
	}
	return c.commands[cmd].Load()
}

// Bound records a successful BIND of n decoded bytes.
func (c *Collector) Bound(n int64) {
	if c == nil {
		return
	}
	c.binds.Add(1)
	c.bytesDecoded.Add(n)
}

// Binds returns the number of successful BIND commands.
func (c *Collector) Binds() int64 {
	if c == nil {
		return 0
	}
	return c.binds.Load()
}

// Unbound records a successful UNBIND.
func (c *Collector) Unbound() {
	if c == nil {
		return
	}
	c.unbinds.Add(1)
}

// Unbinds returns the number of successful UNBIND commands.
func (c *Collector) Unbinds() int64 {
	if c == nil {
		return 0
	}
	return c.unbinds.Load()
}

// BytesDecoded returns the total artifact bytes written.
func (c *Collector) BytesDecoded() int64 {
	if c == nil {
		return 0
	}
	return c.bytesDecoded.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string           `json:"uptime"`
	ConnectionsActive int64            `json:"connections_active"`
	ConnectionsTotal  int64            `json:"connections_total"`
	Commands          map[string]int64 `json:"commands,omitempty"`
	Binds             int64            `json:"binds"`
	Unbinds           int64            `json:"unbinds"`
	BytesDecoded      int64            `json:"bytes_decoded"`
	ErrorsTotal       int64            `json:"errors_total"`
	LastError         string           `json:"last_error,omitempty"`
	LastErrorMessage  string           `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Millisecond).String(),
		ConnectionsActive: c.connectionsActive.Load(),
		ConnectionsTotal:  c.connectionsTotal.Load(),
		Binds:             c.binds.Load(),
		Unbinds:           c.unbinds.Load(),
		BytesDecoded:      c.bytesDecoded.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	for i := range c.commands {
		if n := c.commands[i].Load(); n > 0 {
			if s.Commands == nil {
				s.Commands = make(map[string]int64)
			}
			s.Commands[protocol.Command(i).String()] = n
		}
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as a compact JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.Marshal(s)
	return string(data)
}
