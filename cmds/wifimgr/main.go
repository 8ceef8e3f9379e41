// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wifimgr scans for Wi-Fi networks, picks the best ones and manages
// connections through nmcli.
package main

import "github.com/u-root/wifimgr/cmds/wifimgr/cmd"

func main() {
	cmd.Execute()
}
