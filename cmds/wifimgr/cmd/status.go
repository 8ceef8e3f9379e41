// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/u-root/wifimgr/pkg/netif"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Wi-Fi devices, their state and network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := newManager(nil).Status(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DEVICE\tSTATE\tNETWORK")
		for _, d := range devices {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Device, d.State, d.Network)
		}
		return tw.Flush()
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Show the password of the active Wi-Fi connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := newManager(nil).RevealPassword(cmd.Context())
		if err != nil {
			return err
		}
		if pw == "" {
			log.Info("The active connection has no password")
			return nil
		}
		fmt.Println(pw)
		return nil
	},
}

var radioCmd = &cobra.Command{
	Use:       "radio on|off",
	Short:     "Turn the Wi-Fi radio on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return newManager(nil).SetRadio(cmd.Context(), args[0] == "on")
	},
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless network interfaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ifaces, err := netif.Wireless(log)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMAC\tFREQ\tSTATE")
		for _, i := range ifaces {
			freq := "-"
			if i.FrequencyMHz > 0 {
				freq = fmt.Sprintf("%d MHz", i.FrequencyMHz)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", i.Name, i.HardwareAddr, freq, i.State)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(radioCmd)
	rootCmd.AddCommand(interfacesCmd)
}
