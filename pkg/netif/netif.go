// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package netif finds the wireless network interfaces on this host.
package netif

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mdlayher/wifi"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

// Interface is one wireless network interface.
type Interface struct {
	Name         string
	HardwareAddr string
	// FrequencyMHz is the current operating frequency, 0 if unknown.
	FrequencyMHz int
	State        string
}

// Label is the line shown for this interface in a menu.
func (i Interface) Label() string {
	if i.HardwareAddr == "" {
		return fmt.Sprintf("%s (%s)", i.Name, i.State)
	}
	return fmt.Sprintf("%s %s (%s)", i.Name, i.HardwareAddr, i.State)
}

// SysfsRoot holds one directory per network interface.
var SysfsRoot = "/sys/class/net"

// IsWireless reports whether ifname has a wireless sysfs directory.
func IsWireless(ifname string) bool {
	_, err := os.Stat(filepath.Join(SysfsRoot, ifname, "wireless"))
	return err == nil
}

// Wireless lists wireless interfaces. nl80211 is asked first; if that is
// unavailable the netlink link list is filtered through sysfs instead.
func Wireless(log logrus.FieldLogger) ([]Interface, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	ifaces, err := fromNL80211()
	if err != nil {
		log.Debugf("nl80211 unavailable, falling back to sysfs: %v", err)
		ifaces, err = fromLinks()
		if err != nil {
			return nil, err
		}
	}

	for i := range ifaces {
		ifaces[i].State = operState(ifaces[i].Name)
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Name < ifaces[j].Name })
	return ifaces, nil
}

func fromNL80211() ([]Interface, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	wifaces, err := c.Interfaces()
	if err != nil {
		return nil, err
	}

	var ifaces []Interface
	for _, w := range wifaces {
		// P2P devices and the like have no netdev name.
		if w.Name == "" {
			continue
		}
		ifaces = append(ifaces, Interface{
			Name:         w.Name,
			HardwareAddr: w.HardwareAddr.String(),
			FrequencyMHz: w.Frequency,
		})
	}
	return ifaces, nil
}

func fromLinks() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("can't get list of links: %w", err)
	}

	var ifaces []Interface
	for _, l := range links {
		attrs := l.Attrs()
		if !IsWireless(attrs.Name) {
			continue
		}
		ifaces = append(ifaces, Interface{
			Name:         attrs.Name,
			HardwareAddr: attrs.HardwareAddr.String(),
		})
	}
	return ifaces, nil
}

func operState(name string) string {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return "unknown"
	}
	return l.Attrs().OperState.String()
}
