// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/u-root/wifimgr/pkg/config"
	"github.com/u-root/wifimgr/pkg/menu"
	"github.com/u-root/wifimgr/pkg/nmcli"
	"github.com/u-root/wifimgr/pkg/wifi"
)

var (
	cfg *config.Config
	log = logrus.New()

	configPath string
	logLevel   string
	ifname     string
	nmcliPath  string
	rescan     bool
	promptMode string
)

var rootCmd = &cobra.Command{
	Use:           "wifimgr",
	Short:         "wifimgr scans for and connects to Wi-Fi networks using nmcli",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.FindConfig(configPath)
		if err != nil {
			return err
		}
		if cfg, err = config.Load(path); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("ifname") {
			cfg.Interface = ifname
		}
		if flags.Changed("nmcli") {
			cfg.NmcliPath = nmcliPath
		}
		if flags.Changed("rescan") {
			cfg.Rescan = rescan
		}
		if flags.Changed("prompt") {
			cfg.Prompt = promptMode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		if path != "" {
			log.WithField("path", path).Debug("Loaded config")
		}
		return nil
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: search ./wifimgr.yaml, ~/.config/wifimgr, /etc/wifimgr)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&ifname, "ifname", "", "wireless interface to use (default: let nmcli decide)")
	pf.StringVar(&nmcliPath, "nmcli", "nmcli", "path to the nmcli binary")
	pf.BoolVar(&rescan, "rescan", false, "force a fresh scan instead of nmcli's cached list")
	pf.StringVar(&promptMode, "prompt", "line", "how to ask for passwords: line or ui")
}

// newManager builds a manager from the loaded config.
func newManager(p wifi.Prompter) *wifi.Manager {
	r := nmcli.NewExecRunner(cfg.NmcliPath, cfg.Timeout(), log)
	return wifi.NewManager(r, p,
		wifi.WithLogger(log),
		wifi.WithInterface(cfg.Interface),
		wifi.WithRescan(cfg.Rescan),
		wifi.WithAccumulate(cfg.Accumulate),
		wifi.WithPolicy(cfg.Policy()),
		wifi.WithProbePath(cfg.PrivilegeProbePath),
	)
}

// newPrompter returns the configured prompter and a func to release it.
func newPrompter() (wifi.Prompter, func(), error) {
	if cfg.Prompt != "ui" {
		return menu.NewLinePrompter(os.Stdin, os.Stdout), func() {}, nil
	}
	if err := menu.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize the terminal UI: %w", err)
	}
	// Log lines would corrupt the screen.
	out := log.Out
	log.SetOutput(io.Discard)
	return &menu.UIPrompter{Events: menu.Events()}, func() {
		menu.Close()
		log.SetOutput(out)
	}, nil
}
