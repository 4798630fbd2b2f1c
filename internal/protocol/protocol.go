// Package protocol defines the bind wire protocol: command keywords,
// request parsing, reply formatting and the process exit codes a
// supervising script uses to learn how a pairing window ended.
package protocol

import (
	"errors"
	"strings"
	"unicode"
)

// Version is reported by the VERSION command.
const Version = "OpenIPC bind v0.1"

// Reply texts.
const (
	TextUnknownCommand = "Unknown command"
	TextMissingBindArg = "Missing argument for BIND command"
	TextProcessFailed  = "Failed to process data"
	TextInvalidFormat  = "Invalid command format"
)

// Process exit codes.
const (
	ExitOK           = 0 // window closed after a successful bind, or no-op
	ExitFatal        = 1 // setup failure (socket, bind, bad flags)
	ExitBound        = 2 // BIND succeeded and ended the session
	ExitUnbound      = 3 // UNBIND succeeded and ended the session
	ExitNothingBound = 5 // window closed without a successful BIND
)

// InfoSeparator joins the outputs of the INFO sub-commands.
const InfoSeparator = " | "

// ErrEmptyLine is returned by ParseLine when a line carries no keyword.
var ErrEmptyLine = errors.New("empty command line")

// Command is the closed set of recognised keywords.
type Command int

const (
	CmdUnknown Command = iota
	CmdVersion
	CmdBind
	CmdUnbind
	CmdInfo
)

var keywords = map[string]Command{
	"VERSION": CmdVersion,
	"BIND":    CmdBind,
	"UNBIND":  CmdUnbind,
	"INFO":    CmdInfo,
}

// Lookup maps a keyword to its Command.  Matching is case-sensitive.
func Lookup(keyword string) Command {
	if c, ok := keywords[keyword]; ok {
		return c
	}
	return CmdUnknown
}

func (c Command) String() string {
	switch c {
	case CmdVersion:
		return "VERSION"
	case CmdBind:
		return "BIND"
	case CmdUnbind:
		return "UNBIND"
	case CmdInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Request is one parsed command line.
type Request struct {
	Command Command
	Keyword string // as received, kept for logging unknown commands
	Arg     string
	HasArg  bool
}

// ParseLine splits a received line into keyword and optional argument.
//
// A single trailing "\n" is removed (and the "\r" of a CRLF client).
// The keyword runs up to the first whitespace; the argument is the rest
// with leading whitespace trimmed.  An empty argument counts as absent.
func ParseLine(line string) (Request, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" {
		return Request{}, ErrEmptyLine
	}

	keyword, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		keyword = line[:i]
		arg = strings.TrimLeftFunc(line[i:], unicode.IsSpace)
	}

	return Request{
		Command: Lookup(keyword),
		Keyword: keyword,
		Arg:     arg,
		HasArg:  arg != "",
	}, nil
}

// Reply is a single response line.
type Reply struct {
	OK   bool
	Text string
}

// OK builds a success reply with optional text.
func OK(text string) Reply { return Reply{OK: true, Text: text} }

// Err builds a failure reply.
func Err(text string) Reply { return Reply{Text: text} }

// String renders the reply without the terminating newline.
func (r Reply) String() string {
	status := "ERR"
	if r.OK {
		status = "OK"
	}
	if r.Text == "" {
		return status
	}
	return status + "\t" + r.Text
}

// Line renders the reply as sent on the wire.
func (r Reply) Line() string {
	return r.String() + "\n"
}
