// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

// Inventory holds scanned access points per band, in scan order.
// It is not safe for concurrent use.
type Inventory struct {
	bands map[Band][]AccessPoint
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{bands: map[Band][]AccessPoint{}}
}

// Add appends ap to its band.
func (inv *Inventory) Add(ap AccessPoint) {
	inv.bands[ap.Band] = append(inv.bands[ap.Band], ap)
}

// Band returns the access points of b. The slice must not be modified.
func (inv *Inventory) Band(b Band) []AccessPoint {
	return inv.bands[b]
}

// Len counts access points across all bands.
func (inv *Inventory) Len() int {
	n := 0
	for _, aps := range inv.bands {
		n += len(aps)
	}
	return n
}

// Find looks up bssid in 2G first, then 5G.
func (inv *Inventory) Find(bssid string) (AccessPoint, bool) {
	for _, b := range Bands {
		for _, ap := range inv.bands[b] {
			if ap.BSSID == bssid {
				return ap, true
			}
		}
	}
	return AccessPoint{}, false
}

// All returns every access point, 2G first.
func (inv *Inventory) All() []AccessPoint {
	var all []AccessPoint
	for _, b := range Bands {
		all = append(all, inv.bands[b]...)
	}
	return all
}

// Replace swaps the contents for those of other.
func (inv *Inventory) Replace(other *Inventory) {
	inv.bands = map[Band][]AccessPoint{}
	inv.Merge(other)
}

// Merge appends the contents of other, band by band.
func (inv *Inventory) Merge(other *Inventory) {
	for _, b := range Bands {
		inv.bands[b] = append(inv.bands[b], other.bands[b]...)
	}
}
