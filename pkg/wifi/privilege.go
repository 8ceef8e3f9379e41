// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import "golang.org/x/sys/unix"

// DefaultProbePath is only writable by root.
const DefaultProbePath = "/etc/shadow"

var canWrite = CanWrite

// CanWrite reports whether the calling process may write path.
func CanWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
