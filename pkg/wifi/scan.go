// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// scanFields is the field list requested from the tool, in record order.
const scanFields = "chan,signal,rate,security,ssid,bssid,freq"

const numScanFields = 7

// SplitFields splits one line of terse output at unescaped colons.
// At most n fields are produced; the last one keeps any remaining
// colons. n <= 0 means no limit. "\:" and "\\" are unescaped in
// every field.
func SplitFields(line string, n int) []string {
	var (
		fields  []string
		b       strings.Builder
		escaped bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			if c != ':' && c != '\\' {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == ':' && (n <= 0 || len(fields) < n-1):
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return append(fields, b.String())
}

// ParseRecord decodes one scan line:
// channel:signal:rate:security:ssid:bssid:frequency
func ParseRecord(line string) (AccessPoint, error) {
	f := SplitFields(strings.TrimRight(line, "\r"), numScanFields)
	if len(f) < numScanFields {
		return AccessPoint{}, errShortRecord
	}

	channel, err := strconv.Atoi(strings.TrimSpace(f[0]))
	if err != nil {
		return AccessPoint{}, fmt.Errorf("channel: %w", err)
	}
	signal, err := strconv.Atoi(strings.TrimSpace(f[1]))
	if err != nil {
		return AccessPoint{}, fmt.Errorf("signal: %w", err)
	}
	speed, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(f[2], " Mbit/s")))
	if err != nil {
		return AccessPoint{}, fmt.Errorf("rate: %w", err)
	}

	// "--" is what the tool prints for no security.
	var security []string
	for _, s := range strings.Fields(f[3]) {
		if s != "--" {
			security = append(security, s)
		}
	}

	return AccessPoint{
		Channel:  channel,
		Signal:   signal,
		Speed:    speed,
		Security: security,
		SSID:     f[4],
		BSSID:    f[5],
		Band:     BandOf(strings.TrimSpace(f[6])),
	}, nil
}

// ParseScan builds an inventory from the tool's scan output. Short and
// malformed lines are skipped.
func ParseScan(out []byte, log logrus.FieldLogger) *Inventory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	inv := NewInventory()
	for _, line := range strings.Split(string(out), "\n") {
		ap, err := ParseRecord(line)
		if err == errShortRecord {
			continue
		}
		if err != nil {
			log.WithField("line", line).Debugf("Skipping scan record: %v", err)
			continue
		}
		inv.Add(ap)
	}
	return inv
}
