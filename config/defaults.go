package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultAddress is the drone's address on the wfb tunnel.
	DefaultAddress = "10.5.99.2"

	// DefaultPort is the bind protocol port.
	DefaultPort = 5555

	// DefaultListenDuration is how long the pairing window stays open.
	DefaultListenDuration = 10 * time.Second

	// DefaultOutputDir holds the received artifact.
	DefaultOutputDir = "/tmp/bind"

	// DefaultOutputFile is where BIND writes the decoded archive.
	DefaultOutputFile = DefaultOutputDir + "/bind.tar.gz"

	// DefaultResetCommand restores the device to factory settings on
	// UNBIND.
	DefaultResetCommand = "firstboot"

	// DefaultInfoCommand reports device identity and firmware.
	DefaultInfoCommand = "ipcinfo -cfv"

	// DefaultUSBCommand enumerates attached USB devices (the wifi
	// adapter in particular).
	DefaultUSBCommand = "lsusb"

	// DefaultOutputDirPerm is the mode the output directory is created with.
	DefaultOutputDirPerm = 0o777
)
