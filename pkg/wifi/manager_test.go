// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/u-root/wifimgr/pkg/nmcli"
	"github.com/u-root/wifimgr/pkg/tlog"
)

var scanArgs = []string{"-t", "-f", scanFields, "dev", "wifi", "list"}

const scanOutput = `6:90:130 Mbit/s:WPA2:HomeNet:AA\:BB\:CC\:DD\:EE\:FF:5180 MHz
1:95:54 Mbit/s::Cafe:11\:22\:33\:44\:55\:66:2412 MHz
11:88:65 Mbit/s:WPA1 WPA2:Office:11\:22\:33\:44\:55\:77:2462 MHz
36:99:866 Mbit/s:WPA3:Fast:22\:22\:22\:22\:22\:22:5500 MHz
`

func newTestManager(t *testing.T, r nmcli.Runner, p Prompter, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithLogger(tlog.New(t)), WithPrivileged(true)}, opts...)
	return NewManager(r, p, opts...)
}

func scanned(t *testing.T, r *nmcli.StubRunner, p Prompter, opts ...Option) *Manager {
	t.Helper()
	r.On(scanOutput, scanArgs...)
	m := newTestManager(t, r, p, opts...)
	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return m
}

func TestScan(t *testing.T) {
	r := nmcli.NewStubRunner()
	m := scanned(t, r, nil)

	inv := m.Inventory()
	if got := len(inv.Band(Band2G)); got != 2 {
		t.Errorf("2G has %d networks, want 2", got)
	}
	if got := len(inv.Band(Band5G)); got != 2 {
		t.Errorf("5G has %d networks, want 2", got)
	}

	// A second scan replaces the first.
	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := inv.Len(); got != 4 {
		t.Errorf("after rescan Len() = %d, want 4", got)
	}
}

func TestScanAccumulate(t *testing.T) {
	r := nmcli.NewStubRunner()
	m := scanned(t, r, nil, WithAccumulate(true))
	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := m.Inventory().Len(); got != 8 {
		t.Errorf("Len() = %d, want 8", got)
	}
}

func TestScanArgs(t *testing.T) {
	r := nmcli.NewStubRunner()
	args := append(append([]string{}, scanArgs...), "ifname", "wlan1", "--rescan", "yes")
	r.On(scanOutput, args...)
	m := newTestManager(t, r, nil, WithInterface("wlan1"), WithRescan(true))
	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !r.Called(args...) {
		t.Errorf("Scan() ran %v, want %v", r.Calls, args)
	}
}

func TestScanFailureKeepsInventory(t *testing.T) {
	r := nmcli.NewStubRunner()
	m := scanned(t, r, nil)
	r.Fail(nmcli.ErrTimeout, scanArgs...)

	inv, err := m.Scan(context.Background())
	if !errors.Is(err, nmcli.ErrTimeout) {
		t.Errorf("Scan() error = %v, want ErrTimeout", err)
	}
	if inv != m.Inventory() || inv.Len() != 4 {
		t.Errorf("Scan() inventory changed on failure: %d entries", inv.Len())
	}
}

func TestManagerSelectBest(t *testing.T) {
	m := scanned(t, nmcli.NewStubRunner(), nil)

	got, err := m.SelectBest(Band2G, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Office", "Cafe"}, ssids(got)); diff != "" {
		t.Errorf("SelectBest(2G) mismatch (-want +got):\n%s", diff)
	}

	got, err = m.SelectBest(Band5G, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Fast"}, ssids(got)); diff != "" {
		t.Errorf("SelectBest(5G, 1) mismatch (-want +got):\n%s", diff)
	}

	empty := newTestManager(t, nmcli.NewStubRunner(), nil)
	if _, err := empty.SelectBest(Band5G, 3); !errors.Is(err, ErrEmptyInventory) {
		t.Errorf("SelectBest() on empty inventory error = %v", err)
	}
}

func TestConnect(t *testing.T) {
	for _, tt := range []struct {
		name       string
		bssid      string
		privileged bool
		prompter   *StubPrompter
		iface      string
		wantArgs   []string
		wantErr    error
		wantAsked  int
	}{
		{
			name:       "wpa2_password",
			bssid:      "AA:BB:CC:DD:EE:FF",
			privileged: true,
			prompter:   NewStubPrompter(false, "hunter2"),
			wantArgs:   []string{"d", "wifi", "connect", "AA:BB:CC:DD:EE:FF", "password", "hunter2"},
			wantAsked:  1,
		},
		{
			name:       "wpa_empty_password",
			bssid:      "11:22:33:44:55:77",
			privileged: true,
			prompter:   NewStubPrompter(false, ""),
			wantArgs:   []string{"d", "wifi", "connect", "11:22:33:44:55:77"},
			wantAsked:  1,
		},
		{
			name:       "open_confirmed",
			bssid:      "11:22:33:44:55:66",
			privileged: true,
			prompter:   NewStubPrompter(true, ""),
			wantArgs:   []string{"d", "wifi", "connect", "11:22:33:44:55:66"},
			wantAsked:  1,
		},
		{
			name:       "open_declined",
			bssid:      "11:22:33:44:55:66",
			privileged: true,
			prompter:   NewStubPrompter(false, ""),
			wantErr:    ErrCancelled,
			wantAsked:  1,
		},
		{
			name:       "wpa3_on_interface",
			bssid:      "22:22:22:22:22:22",
			privileged: true,
			prompter:   NewStubPrompter(false, "s3cret"),
			iface:      "wlan0",
			wantArgs:   []string{"d", "wifi", "connect", "22:22:22:22:22:22", "password", "s3cret", "ifname", "wlan0"},
			wantAsked:  1,
		},
		{
			name:       "not_found",
			bssid:      "FF:FF:FF:FF:FF:FF",
			privileged: true,
			prompter:   NewStubPrompter(true, "x"),
			wantErr:    ErrNotFound,
		},
		{
			name:     "unprivileged",
			bssid:    "AA:BB:CC:DD:EE:FF",
			prompter: NewStubPrompter(true, "x"),
			wantErr:  ErrNoPrivilege,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := nmcli.NewStubRunner()
			opts := []Option{WithPrivileged(tt.privileged)}
			scan := append([]string{}, scanArgs...)
			if tt.iface != "" {
				opts = append(opts, WithInterface(tt.iface))
				scan = append(scan, "ifname", tt.iface)
			}
			r.On(scanOutput, scan...)
			if tt.wantArgs != nil {
				r.On("Device 'wlan0' successfully activated\n", tt.wantArgs...)
			}
			m := newTestManager(t, r, tt.prompter, opts...)
			if _, err := m.Scan(context.Background()); err != nil {
				t.Fatal(err)
			}
			before := len(r.Calls)

			err := m.Connect(context.Background(), tt.bssid)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Connect() error = %v, want %v", err, tt.wantErr)
			}
			if got := len(tt.prompter.Asked); got != tt.wantAsked {
				t.Errorf("prompted %d times (%q), want %d", got, tt.prompter.Asked, tt.wantAsked)
			}
			if tt.wantArgs == nil {
				if len(r.Calls) != before {
					t.Errorf("Connect() ran %v, want no command", r.Calls[before:])
				}
				return
			}
			if !r.Called(tt.wantArgs...) {
				t.Errorf("Connect() ran %v, want %v", r.Calls[before:], tt.wantArgs)
			}
		})
	}
}

func TestConnectPrompterError(t *testing.T) {
	p := NewStubPrompter(true, "")
	p.Err = errors.New("EOF")
	m := scanned(t, nmcli.NewStubRunner(), p)
	if err := m.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"); err != p.Err {
		t.Errorf("Connect() error = %v, want %v", err, p.Err)
	}
}

func TestConnectNoPrompter(t *testing.T) {
	m := scanned(t, nmcli.NewStubRunner(), nil)
	if err := m.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"); !errors.Is(err, ErrNoPrompter) {
		t.Errorf("Connect() error = %v, want ErrNoPrompter", err)
	}
}

var statusArgs = []string{"-t", "-f", "state,connection", "d", "status"}

func TestDisconnect(t *testing.T) {
	for _, tt := range []struct {
		name     string
		status   string
		downArgs []string
		downOut  string
		wantErr  error
	}{
		{
			name:   "nothing_connected",
			status: "disconnected:\nunavailable:\nunmanaged:\n",
		},
		{
			name:     "connected",
			status:   "connected:HomeNet\ndisconnected:\n",
			downArgs: []string{"con", "down", "id", "HomeNet"},
			downOut:  "Connection 'HomeNet' successfully deactivated (D-Bus active path: /org/freedesktop/NetworkManager/ActiveConnection/3)\n",
		},
		{
			name:     "escaped_name",
			status:   "disconnected:\nconnected:My\\:Net\n",
			downArgs: []string{"con", "down", "id", "My:Net"},
			downOut:  "Connection 'My:Net' successfully deactivated\n",
		},
		{
			name:     "unexpected_answer",
			status:   "connected:HomeNet\n",
			downArgs: []string{"con", "down", "id", "HomeNet"},
			downOut:  "something else happened\n",
			wantErr:  ErrUnexpectedOutput,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := nmcli.NewStubRunner().On(tt.status, statusArgs...)
			if tt.downArgs != nil {
				r.On(tt.downOut, tt.downArgs...)
			}
			m := newTestManager(t, r, nil)

			err := m.Disconnect(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Disconnect() error = %v, want %v", err, tt.wantErr)
			}
			if tt.downArgs == nil {
				if len(r.Calls) != 1 {
					t.Errorf("Disconnect() ran %v, want only the status query", r.Calls)
				}
				return
			}
			if !r.Called(tt.downArgs...) {
				t.Errorf("Disconnect() ran %v, want %v", r.Calls, tt.downArgs)
			}
		})
	}
}

func TestDisconnectStatusFailure(t *testing.T) {
	r := nmcli.NewStubRunner().Fail(nmcli.ErrTimeout, statusArgs...)
	m := newTestManager(t, r, nil)
	if err := m.Disconnect(context.Background()); !errors.Is(err, nmcli.ErrTimeout) {
		t.Errorf("Disconnect() error = %v, want ErrTimeout", err)
	}
}

func TestStatus(t *testing.T) {
	out := strings.Join([]string{
		"wlan0:wifi:connected:HomeNet",
		"eth0:ethernet:connected:",
		"wlan1:wifi:disconnected:",
		"p2p-dev-wlan0:wifi-p2p:disconnected:",
		"lo:loopback",
		"wlan2:wifi:connected:Cafe\\:Guest",
		"",
	}, "\n")
	r := nmcli.NewStubRunner().On(out, "-t", "d", "status")
	m := newTestManager(t, r, nil)

	got, err := m.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Device{
		{Device: "wlan0", State: "connected", Network: "HomeNet"},
		{Device: "wlan1", State: "disconnected"},
		{Device: "wlan2", State: "connected", Network: "Cafe:Guest"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Status() mismatch (-want +got):\n%s", diff)
	}
}

func TestRevealPassword(t *testing.T) {
	for _, tt := range []struct {
		name    string
		out     string
		fail    bool
		want    string
		wantErr bool
	}{
		{
			name: "found",
			out:  "SSID: HomeNet\nSecurity: WPA\nPassword: hunter2\n\n",
			want: "hunter2",
		},
		{
			name: "missing",
			out:  "SSID: Cafe\nSecurity: --\n",
			want: "",
		},
		{
			name:    "failure",
			fail:    true,
			wantErr: true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := nmcli.NewStubRunner()
			if tt.fail {
				r.Fail(&nmcli.CommandError{Task: "show", Output: []byte("Error: No Wi-Fi device found.")}, "dev", "wifi", "show-password")
			} else {
				r.On(tt.out, "dev", "wifi", "show-password")
			}
			m := newTestManager(t, r, nil)
			got, err := m.RevealPassword(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("RevealPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RevealPassword() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetRadio(t *testing.T) {
	r := nmcli.NewStubRunner().On("", "radio", "wifi", "on").Fail(nmcli.ErrTimeout, "radio", "wifi", "off")
	m := newTestManager(t, r, nil)

	if err := m.SetRadio(context.Background(), true); err != nil {
		t.Errorf("SetRadio(true) error = %v", err)
	}
	if err := m.SetRadio(context.Background(), false); !errors.Is(err, nmcli.ErrTimeout) {
		t.Errorf("SetRadio(false) error = %v, want ErrTimeout", err)
	}
}

func TestAccessPointSecurity(t *testing.T) {
	for _, tt := range []struct {
		security  []string
		open      bool
		encrypted bool
	}{
		{security: nil, open: true},
		{security: []string{"WPA2"}, encrypted: true},
		{security: []string{"WPA1", "WPA2"}, encrypted: true},
		{security: []string{"WEP"}},
		{security: []string{"WPA2", "802.1X"}, encrypted: true},
	} {
		a := AccessPoint{Security: tt.security}
		if a.Open() != tt.open || a.Encrypted() != tt.encrypted {
			t.Errorf("%v: Open() = %v, Encrypted() = %v, want %v, %v", tt.security, a.Open(), a.Encrypted(), tt.open, tt.encrypted)
		}
	}
}

func TestPrivilegeProbe(t *testing.T) {
	writable := t.TempDir() + "/probe"
	for _, tt := range []struct {
		name      string
		opts      []Option
		want      bool
		wantPaths []string
	}{
		{
			name:      "writable_path",
			opts:      []Option{WithProbePath(writable)},
			want:      true,
			wantPaths: []string{writable},
		},
		{
			name:      "missing_path",
			opts:      []Option{WithProbePath(writable + ".missing")},
			want:      false,
			wantPaths: []string{writable + ".missing"},
		},
		{
			name:      "default_path",
			wantPaths: []string{DefaultProbePath},
		},
		{
			name: "override",
			opts: []Option{WithProbePath(writable), WithPrivileged(false)},
			want: false,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(writable, nil, 0o600); err != nil {
				t.Fatal(err)
			}
			var probed []string
			defer func(f func(string) bool) { canWrite = f }(canWrite)
			canWrite = func(path string) bool {
				probed = append(probed, path)
				return CanWrite(path)
			}

			m := NewManager(nmcli.NewStubRunner(), nil, append([]Option{WithLogger(tlog.New(t))}, tt.opts...)...)
			if diff := cmp.Diff(tt.wantPaths, probed); diff != "" {
				t.Errorf("probed paths mismatch (-want +got):\n%s", diff)
			}
			if tt.name != "default_path" && m.Privileged() != tt.want {
				t.Errorf("Privileged() = %v, want %v", m.Privileged(), tt.want)
			}
		})
	}
}
