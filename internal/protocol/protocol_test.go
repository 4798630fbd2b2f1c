package protocol

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		keyword string
		want    Command
	}{
		{"VERSION", CmdVersion},
		{"BIND", CmdBind},
		{"UNBIND", CmdUnbind},
		{"INFO", CmdInfo},
		{"version", CmdUnknown}, // case-sensitive
		{"Bind", CmdUnknown},
		{"BINDX", CmdUnknown},
		{"", CmdUnknown},
	}
	for _, tt := range tests {
		if got := Lookup(tt.keyword); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.keyword, got, tt.want)
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		cmd     Command
		keyword string
		arg     string
		hasArg  bool
	}{
		{"bare keyword", "VERSION\n", CmdVersion, "VERSION", "", false},
		{"no newline", "INFO", CmdInfo, "INFO", "", false},
		{"space argument", "BIND aGk=\n", CmdBind, "BIND", "aGk=", true},
		{"tab argument", "BIND\taGk=\n", CmdBind, "BIND", "aGk=", true},
		{"whitespace run", "BIND \t  aGk=\n", CmdBind, "BIND", "aGk=", true},
		{"trailing space only", "BIND   \n", CmdBind, "BIND", "", false},
		{"crlf", "UNBIND\r\n", CmdUnbind, "UNBIND", "", false},
		{"argument keeps inner spaces", "BIND a b c\n", CmdBind, "BIND", "a b c", true},
		{"unknown", "REBOOT now\n", CmdUnknown, "REBOOT", "now", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine: %v", err)
			}
			if req.Command != tt.cmd || req.Keyword != tt.keyword {
				t.Errorf("got (%v, %q), want (%v, %q)", req.Command, req.Keyword, tt.cmd, tt.keyword)
			}
			if req.Arg != tt.arg || req.HasArg != tt.hasArg {
				t.Errorf("arg = (%q, %v), want (%q, %v)", req.Arg, req.HasArg, tt.arg, tt.hasArg)
			}
		})
	}
}

func TestParseLine_Empty(t *testing.T) {
	for _, line := range []string{"", "\n", "   \n", "\t\r\n"} {
		if _, err := ParseLine(line); !errors.Is(err, ErrEmptyLine) {
			t.Errorf("ParseLine(%q) err = %v, want ErrEmptyLine", line, err)
		}
	}
}

func TestReply(t *testing.T) {
	tests := []struct {
		reply Reply
		want  string
	}{
		{OK(""), "OK\n"},
		{OK(Version), "OK\tOpenIPC bind v0.1\n"},
		{Err(TextUnknownCommand), "ERR\tUnknown command\n"},
		{Err(""), "ERR\n"},
	}
	for _, tt := range tests {
		if got := tt.reply.Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestExitCodesDistinct(t *testing.T) {
	codes := []int{ExitOK, ExitFatal, ExitBound, ExitUnbound, ExitNothingBound}
	seen := map[int]bool{}
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
}
