// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

const (
	DefaultMinSignal = 85
	DefaultTopN      = 3
)

// Policy controls candidate selection.
type Policy struct {
	// MinSignal is the lowest signal a candidate may have.
	MinSignal int
	// TopN caps the number of candidates.
	TopN int
}

// DefaultPolicy is signal >= 85, best three.
var DefaultPolicy = Policy{MinSignal: DefaultMinSignal, TopN: DefaultTopN}

// SelectBest picks up to p.TopN access points from band b, fastest first,
// each with a different SSID and a signal of at least p.MinSignal.
// Ties on speed go to the earlier scan entry. Fewer than TopN results
// are returned when not enough networks qualify.
//
// Both bands must have been populated by a scan.
func SelectBest(inv *Inventory, b Band, p Policy) ([]AccessPoint, error) {
	if inv == nil || len(inv.Band(Band2G)) == 0 || len(inv.Band(Band5G)) == 0 {
		return nil, ErrEmptyInventory
	}
	if !b.valid() {
		return nil, ErrUnknownBand
	}
	if p.TopN <= 0 {
		p.TopN = DefaultTopN
	}

	var best []AccessPoint
	taken := map[string]bool{}
	candidates := inv.Band(b)
	for len(best) < p.TopN {
		pick := -1
		for i, ap := range candidates {
			if ap.Signal < p.MinSignal || taken[ap.SSID] {
				continue
			}
			if pick < 0 || ap.Speed > candidates[pick].Speed {
				pick = i
			}
		}
		if pick < 0 {
			break
		}
		best = append(best, candidates[pick])
		taken[candidates[pick].SSID] = true
	}
	return best, nil
}
