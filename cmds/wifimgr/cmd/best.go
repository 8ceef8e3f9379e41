// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/u-root/wifimgr/pkg/wifi"
)

var (
	bestBand string
	bestTop  int
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Scan and show the best connection candidates on one band",
	Long: `Scan and show the best connection candidates on one band.

Candidates have a signal of at least min_signal (default 85), distinct SSIDs,
and are listed fastest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.PreferredBand
		if cmd.Flags().Changed("band") {
			name = bestBand
		}
		band, err := wifi.ParseBand(name)
		if err != nil {
			return err
		}

		m := newManager(nil)
		if _, err := m.Scan(cmd.Context()); err != nil {
			return err
		}
		best, err := m.SelectBest(band, bestTop)
		if err != nil {
			return err
		}
		printAccessPoints(os.Stdout, best)
		return nil
	},
}

func init() {
	bestCmd.Flags().StringVar(&bestBand, "band", "5G", "band to choose from: 2G or 5G (default from config)")
	bestCmd.Flags().IntVar(&bestTop, "top", 0, "number of candidates (default from config)")
	rootCmd.AddCommand(bestCmd)
}
