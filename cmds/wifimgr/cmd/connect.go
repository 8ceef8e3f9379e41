// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect BSSID",
	Short: "Scan, then connect to the network with the given BSSID",
	Long: `Scan, then connect to the network with the given BSSID.

Requires root. Open networks ask for confirmation, WPA networks for a password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, release, err := newPrompter()
		if err != nil {
			return err
		}
		defer release()

		m := newManager(p)
		if _, err := m.Scan(cmd.Context()); err != nil {
			return err
		}
		if err := m.Connect(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Connected to %s\n", args[0])
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Take down the active connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newManager(nil).Disconnect(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}
