// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"strings"
)

// Band is the frequency band an access point was seen on.
type Band int

const (
	Band2G Band = iota
	Band5G
)

// Bands lists every band in lookup order.
var Bands = []Band{Band2G, Band5G}

func (b Band) String() string {
	switch b {
	case Band2G:
		return "2G"
	case Band5G:
		return "5G"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

func (b Band) valid() bool {
	return b == Band2G || b == Band5G
}

// ParseBand accepts "2G" or "5G" in any case.
func ParseBand(s string) (Band, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2G":
		return Band2G, nil
	case "5G":
		return Band5G, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBand)
}

// BandOf classifies a frequency field: anything starting with 5 is 5G.
func BandOf(freq string) Band {
	if strings.HasPrefix(freq, "5") {
		return Band5G
	}
	return Band2G
}

// encFamilies are the security tokens that need a password.
var encFamilies = []string{"WPA1", "WPA2", "WPA3"}

// AccessPoint is one network seen in a scan.
type AccessPoint struct {
	SSID     string
	BSSID    string
	Security []string
	Channel  int
	Signal   int
	Speed    int // Mbit/s
	Band     Band
}

// Open reports whether the network advertises no security at all.
func (ap AccessPoint) Open() bool {
	return len(ap.Security) == 0
}

// Encrypted reports whether any WPA family token is present.
func (ap AccessPoint) Encrypted() bool {
	for _, s := range ap.Security {
		for _, f := range encFamilies {
			if s == f {
				return true
			}
		}
	}
	return false
}

// Label is the line shown for this network in a menu.
func (ap AccessPoint) Label() string {
	sec := "open"
	if !ap.Open() {
		sec = strings.Join(ap.Security, " ")
	}
	ssid := ap.SSID
	if ssid == "" {
		ssid = "<hidden>"
	}
	return fmt.Sprintf("%s %s [%s] %d%% %d Mbit/s ch%d %s", ssid, ap.BSSID, sec, ap.Signal, ap.Speed, ap.Channel, ap.Band)
}

// Device is one Wi-Fi device as reported by the tool.
type Device struct {
	Device  string
	State   string
	Network string
}

// Prompter asks the operator questions during a connect.
type Prompter interface {
	// Confirm asks a yes/no question. Only an explicit yes returns true.
	Confirm(question string) (bool, error)
	// Password reads a secret.
	Password(prompt string) (string, error)
}
