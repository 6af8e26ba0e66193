// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build unix

package execvp

import (
	"golang.org/x/sys/unix"
)

func execute(path string, argv, env []string) error {
	return unix.Exec(path, argv, env)
}
