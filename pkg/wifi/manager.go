// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/u-root/wifimgr/pkg/nmcli"
)

const (
	insecureQuestion = "Network is insecure, do you really want to connect?"
	passwordPrompt   = "Network has a password, please enter password: "

	deactivatedMarker = "successfully deactivated"
	passwordPrefix    = "Password: "
)

// Manager scans for networks and drives connections through the tool.
// It owns the inventory; calls must not overlap.
type Manager struct {
	runner     nmcli.Runner
	prompter   Prompter
	log        logrus.FieldLogger
	inv        *Inventory
	privileged bool
	probePath  string
	probed     bool

	iface      string
	rescan     bool
	accumulate bool
	policy     Policy
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = l }
}

// WithInterface restricts scan, connect and password reveal to one device.
func WithInterface(iface string) Option {
	return func(m *Manager) { m.iface = iface }
}

// WithRescan asks the tool to rescan instead of reporting its cache.
func WithRescan(rescan bool) Option {
	return func(m *Manager) { m.rescan = rescan }
}

// WithAccumulate keeps earlier scan results instead of replacing them.
func WithAccumulate(accumulate bool) Option {
	return func(m *Manager) { m.accumulate = accumulate }
}

// WithPolicy sets the candidate selection policy.
func WithPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithProbePath sets the root-only file whose write access marks the
// process as privileged.
func WithProbePath(path string) Option {
	return func(m *Manager) { m.probePath = path }
}

// WithPrivileged overrides the privilege probe.
func WithPrivileged(privileged bool) Option {
	return func(m *Manager) {
		m.privileged = privileged
		m.probed = true
	}
}

// NewManager returns a Manager with an empty inventory. Privilege is
// probed once, after the options are applied, unless WithPrivileged
// settled it.
func NewManager(r nmcli.Runner, p Prompter, opts ...Option) *Manager {
	m := &Manager{
		runner:    r,
		prompter:  p,
		log:       logrus.StandardLogger(),
		inv:       NewInventory(),
		policy:    DefaultPolicy,
		probePath: DefaultProbePath,
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	if !m.probed {
		m.privileged = canWrite(m.probePath)
		m.probed = true
	}
	return m
}

// Inventory returns the networks found so far.
func (m *Manager) Inventory() *Inventory {
	return m.inv
}

// Privileged reports the result of the privilege probe.
func (m *Manager) Privileged() bool {
	return m.privileged
}

func (m *Manager) withIface(args ...string) []string {
	if m.iface != "" {
		args = append(args, "ifname", m.iface)
	}
	return args
}

// Scan asks the tool for visible networks and stores them. On failure
// the inventory is left as it was and returned with the error.
func (m *Manager) Scan(ctx context.Context) (*Inventory, error) {
	args := m.withIface("-t", "-f", scanFields, "dev", "wifi", "list")
	if m.rescan {
		args = append(args, "--rescan", "yes")
	}
	out, err := m.runner.Run(ctx, "Scan For Wi-Fi Networks", args...)
	if err != nil {
		return m.inv, err
	}

	found := ParseScan(out, m.log)
	if m.accumulate {
		m.inv.Merge(found)
	} else {
		m.inv.Replace(found)
	}
	m.log.WithFields(logrus.Fields{
		"2G": len(m.inv.Band(Band2G)),
		"5G": len(m.inv.Band(Band5G)),
	}).Debug("Scan complete")
	return m.inv, nil
}

// SelectBest applies the manager's policy to band b, returning at most
// topN candidates. topN <= 0 uses the policy's TopN.
func (m *Manager) SelectBest(b Band, topN int) ([]AccessPoint, error) {
	p := m.policy
	if topN > 0 {
		p.TopN = topN
	}
	best, err := SelectBest(m.inv, b, p)
	if err != nil {
		m.log.Warn(err)
		return nil, err
	}
	if len(best) < p.TopN {
		m.log.Infof("Only %d of %d candidates qualify on %s", len(best), p.TopN, b)
	}
	return best, nil
}

// Connect joins the network with the given BSSID. Open networks need a
// confirmation; WPA networks need a password. Both may apply.
func (m *Manager) Connect(ctx context.Context, bssid string) error {
	if !m.privileged {
		m.log.Warn(ErrNoPrivilege)
		return ErrNoPrivilege
	}

	ap, ok := m.inv.Find(bssid)
	if !ok {
		return fmt.Errorf("%s: %w", bssid, ErrNotFound)
	}

	var password string
	if ap.Open() || ap.Encrypted() {
		if m.prompter == nil {
			return ErrNoPrompter
		}
	}
	if ap.Open() {
		yes, err := m.prompter.Confirm(insecureQuestion)
		if err != nil {
			return err
		}
		if !yes {
			return ErrCancelled
		}
	}
	if ap.Encrypted() {
		pw, err := m.prompter.Password(passwordPrompt)
		if err != nil {
			return err
		}
		password = pw
	}

	args := []string{"d", "wifi", "connect", bssid}
	if password != "" {
		args = append(args, "password", password)
	}
	_, err := m.runner.Run(ctx, "Connect to Wi-Fi", m.withIface(args...)...)
	return err
}

// Disconnect takes down the first connected connection. Having nothing
// connected counts as success.
func (m *Manager) Disconnect(ctx context.Context) error {
	out, err := m.runner.Run(ctx, "Active Wi-Fi Connection List", "-t", "-f", "state,connection", "d", "status")
	if err != nil {
		return err
	}

	var active string
	for _, line := range strings.Split(string(out), "\n") {
		f := SplitFields(line, 2)
		if len(f) == 2 && f[0] == "connected" {
			active = f[1]
			break
		}
	}
	if active == "" {
		m.log.Info("No active connections. Already disconnected")
		return nil
	}

	out, err = m.runner.Run(ctx, "Disconnect From Wi-Fi", "con", "down", "id", active)
	if err != nil {
		return err
	}
	if !bytes.Contains(out, []byte(deactivatedMarker)) {
		return fmt.Errorf("%w: %s", ErrUnexpectedOutput, strings.TrimSpace(string(out)))
	}
	return nil
}

// Status lists Wi-Fi devices with their state and network.
func (m *Manager) Status(ctx context.Context) ([]Device, error) {
	out, err := m.runner.Run(ctx, "Wi-Fi Devices Status", "-t", "d", "status")
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, line := range strings.Split(string(out), "\n") {
		f := SplitFields(line, 4)
		if len(f) < 4 || f[1] != "wifi" {
			continue
		}
		devices = append(devices, Device{Device: f[0], State: f[2], Network: f[3]})
	}
	return devices, nil
}

// RevealPassword returns the secret of the active Wi-Fi connection, or
// "" if the tool did not print one.
func (m *Manager) RevealPassword(ctx context.Context) (string, error) {
	out, err := m.runner.Run(ctx, "Show Wi-Fi Password", m.withIface("dev", "wifi", "show-password")...)
	if err != nil {
		return "", err
	}

	var password string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, passwordPrefix) {
			password = strings.TrimSpace(strings.TrimPrefix(line, passwordPrefix))
		}
	}
	return password, nil
}

// SetRadio turns the Wi-Fi radio on or off.
func (m *Manager) SetRadio(ctx context.Context, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}
	_, err := m.runner.Run(ctx, "Wi-Fi Turn "+strings.ToUpper(state), "radio", "wifi", state)
	return err
}
