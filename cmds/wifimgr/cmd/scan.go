// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/u-root/wifimgr/pkg/wifi"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List visible networks grouped by band",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := newManager(nil).Scan(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range wifi.Bands {
			fmt.Printf("%s:\n", b)
			printAccessPoints(os.Stdout, inv.Band(b))
		}
		return nil
	},
}

func printAccessPoints(w io.Writer, aps []wifi.AccessPoint) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  SSID\tBSSID\tCHAN\tSIGNAL\tRATE\tSECURITY")
	for _, ap := range aps {
		sec := strings.Join(ap.Security, " ")
		if ap.Open() {
			sec = "open"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%d Mbit/s\t%s\n", ap.SSID, ap.BSSID, ap.Channel, ap.Signal, ap.Speed, sec)
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
