package util

import (
	"testing"
)

func TestFormatAddr(t *testing.T) {
	if got := FormatAddr("10.5.99.2", 5555); got != "10.5.99.2:5555" {
		t.Errorf("got %q, want %q", got, "10.5.99.2:5555")
	}
}

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		host    string
		wantErr bool
	}{
		{"10.5.99.2", false},
		{"127.0.0.1", false},
		{"0.0.0.0", false},
		{"::1", true},
		{"drone.local", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseIPv4(tt.host)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIPv4(%q) err=%v wantErr=%v", tt.host, err, tt.wantErr)
		}
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Errorf("port %d out of range", port)
	}
}
