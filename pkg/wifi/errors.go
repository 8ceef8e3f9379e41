// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import "errors"

var (
	ErrEmptyInventory   = errors.New("networks list is empty")
	ErrUnknownBand      = errors.New("wrong network type, supported: 2G or 5G")
	ErrNotFound         = errors.New("network not found, check BSSID")
	ErrNoPrivilege      = errors.New("no rights to connect to Wi-Fi")
	ErrCancelled        = errors.New("user cancelled")
	ErrUnexpectedOutput = errors.New("unexpected answer")
	ErrNoPrompter       = errors.New("no prompter configured")

	errShortRecord = errors.New("short record")
)
