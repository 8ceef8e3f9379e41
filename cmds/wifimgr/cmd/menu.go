// Copyright 2020 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	ui "github.com/gizak/termui/v3"
	"github.com/spf13/cobra"
	"github.com/u-root/wifimgr/pkg/menu"
	"github.com/u-root/wifimgr/pkg/netif"
	"github.com/u-root/wifimgr/pkg/wifi"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick an interface and a network from full-screen menus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, err := newMenuLog()
		if err != nil {
			return err
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		defer log.SetOutput(os.Stderr)

		if err := menu.Init(); err != nil {
			return fmt.Errorf("failed to initialize the terminal UI: %w", err)
		}

		err = setupNetwork(cmd.Context(), menu.Events())
		menu.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "Log written to %s\n", logFile.Name())
		if errors.Is(err, menu.ErrEscaped) {
			return nil
		}
		return err
	},
}

// newMenuLog creates a fresh log file for one menu session. The screen
// belongs to termui while the menu runs.
func newMenuLog() (*os.File, error) {
	return os.CreateTemp("", "wifimgr-menu-*.log")
}

func setupNetwork(ctx context.Context, uiEvents <-chan ui.Event) error {
	iface := cfg.Interface
	if iface == "" {
		var err error
		if iface, err = selectNetworkInterface(uiEvents); err != nil {
			return err
		}
	}
	cfg.Interface = iface
	return selectWirelessNetwork(ctx, uiEvents, newManager(&menu.UIPrompter{Events: uiEvents}))
}

// selectNetworkInterface returns "" when there is nothing to choose from,
// leaving the choice to nmcli.
func selectNetworkInterface(uiEvents <-chan ui.Event) (string, error) {
	ifaces, err := netif.Wireless(log)
	if err != nil {
		log.Warnf("Could not list wireless interfaces: %v", err)
		return "", nil
	}
	switch len(ifaces) {
	case 0:
		return "", nil
	case 1:
		return ifaces[0].Name, nil
	}

	var entries []menu.Entry
	for _, i := range ifaces {
		entries = append(entries, i)
	}
	entry, err := menu.DisplayMenu("Wireless Interfaces", "Choose an interface", entries, uiEvents)
	if err != nil {
		return "", err
	}
	return entry.(netif.Interface).Name, nil
}

func selectWirelessNetwork(ctx context.Context, uiEvents <-chan ui.Event, m *wifi.Manager) error {
	for {
		progress := menu.NewProgress("Scanning for networks", true)
		inv, err := m.Scan(ctx)
		progress.Close()
		if err != nil {
			return err
		}

		var entries []menu.Entry
		for _, ap := range inv.All() {
			entries = append(entries, ap)
		}
		if len(entries) == 0 {
			if _, err := menu.DisplayResult([]string{"No networks found, press any key to scan again or <Esc> to exit."}, uiEvents); err != nil {
				return err
			}
			continue
		}

		entry, err := menu.DisplayMenu("Wireless Networks", "Choose a network", entries, uiEvents)
		if err != nil {
			return err
		}
		ap := entry.(wifi.AccessPoint)

		if err := m.Connect(ctx, ap.BSSID); err != nil {
			if _, err := menu.DisplayResult([]string{err.Error()}, uiEvents); err != nil {
				return err
			}
			continue
		}

		if _, err := menu.DisplayResult([]string{fmt.Sprintf("Connected to %s (%s).", ap.SSID, ap.BSSID)}, uiEvents); err != nil && !errors.Is(err, menu.ErrEscaped) {
			return err
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
