package core

import (
	"wfbbind/config"
	"wfbbind/internal/capability"
	"wfbbind/internal/decoder"
	"wfbbind/internal/metrics"
	"wfbbind/internal/runner"
	"wfbbind/internal/transport"
	"wfbbind/util"
)

// Build constructs the pairing window from the given configuration.
// cfg must already have passed Validate.
func Build(cfg *config.Config, logger *util.Logger) *BindMode {
	m := metrics.New()

	return &BindMode{
		Listen: transport.ListenConfig{
			Address:  cfg.Address,
			Port:     cfg.Port,
			FreeBind: cfg.FreeBind,
		},
		Duration:     cfg.ListenDuration,
		PollInterval: DefaultPollInterval,
		Dispatcher:   buildDispatcher(cfg, logger, m),
		Logger:       logger,
		Metrics:      m,
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func buildDispatcher(cfg *config.Config, logger *util.Logger, m *metrics.Collector) *capability.Dispatcher {
	var info [][]string
	for _, c := range []string{cfg.InfoCommand, cfg.USBCommand} {
		if argv := runner.Split(c); len(argv) > 0 {
			info = append(info, argv)
		}
	}

	return &capability.Dispatcher{
		Artifacts:    decoder.New(cfg.OutputFile),
		Runner:       &runner.Exec{Timeout: cfg.ExecTimeout, Logger: logger},
		ResetCommand: runner.Split(cfg.ResetCommand),
		InfoCommands: info,
		ForceListen:  cfg.ForceListen,
		Logger:       logger,
		Metrics:      m,
	}
}
