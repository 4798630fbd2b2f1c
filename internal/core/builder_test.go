package core

import (
	"reflect"
	"testing"
	"time"

	"wfbbind/config"
	"wfbbind/internal/capability"
	"wfbbind/internal/runner"
	"wfbbind/util"
)

// TestBuild_Defaults verifies the default configuration is carried into
// the listener and dispatcher.
func TestBuild_Defaults(t *testing.T) {
	cfg := config.Default()
	mode := Build(cfg, util.NewLogger(0))

	if mode.Listen.Address != config.DefaultAddress || mode.Listen.Port != config.DefaultPort {
		t.Errorf("listen = %+v", mode.Listen)
	}
	if mode.Duration != config.DefaultListenDuration {
		t.Errorf("duration = %s", mode.Duration)
	}
	if mode.PollInterval != DefaultPollInterval {
		t.Errorf("poll interval = %s", mode.PollInterval)
	}

	d, ok := mode.Dispatcher.(*capability.Dispatcher)
	if !ok {
		t.Fatalf("expected *capability.Dispatcher, got %T", mode.Dispatcher)
	}
	if !reflect.DeepEqual(d.ResetCommand, []string{"firstboot"}) {
		t.Errorf("reset command = %q", d.ResetCommand)
	}
	want := [][]string{{"ipcinfo", "-cfv"}, {"lsusb"}}
	if !reflect.DeepEqual(d.InfoCommands, want) {
		t.Errorf("info commands = %q, want %q", d.InfoCommands, want)
	}
	if d.ForceListen {
		t.Error("force-listen should default to off")
	}
	if d.Metrics != mode.Metrics {
		t.Error("dispatcher and controller should share one collector")
	}
}

// TestBuild_Overrides verifies command overrides, an empty USB command
// and the exec timeout.
func TestBuild_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.ForceListen = true
	cfg.FreeBind = true
	cfg.ResetCommand = "/usr/sbin/firstboot -y"
	cfg.InfoCommand = "cat /etc/os-release"
	cfg.USBCommand = ""
	cfg.ExecTimeout = 3 * time.Second

	mode := Build(cfg, util.NewLogger(0))
	if !mode.Listen.FreeBind {
		t.Error("freebind not carried")
	}

	d := mode.Dispatcher.(*capability.Dispatcher)
	if !d.ForceListen {
		t.Error("force-listen not carried")
	}
	if !reflect.DeepEqual(d.ResetCommand, []string{"/usr/sbin/firstboot", "-y"}) {
		t.Errorf("reset command = %q", d.ResetCommand)
	}
	if !reflect.DeepEqual(d.InfoCommands, [][]string{{"cat", "/etc/os-release"}}) {
		t.Errorf("info commands = %q", d.InfoCommands)
	}
	exec, ok := d.Runner.(*runner.Exec)
	if !ok {
		t.Fatalf("expected *runner.Exec, got %T", d.Runner)
	}
	if exec.Timeout != 3*time.Second {
		t.Errorf("exec timeout = %s", exec.Timeout)
	}
}
