// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package execvp replaces the current process with another command,
// following the PATH lookup semantics of execvp(3).
package execvp

import (
	"errors"
	"os/exec"
)

// Exec runs the command named by argv[0] with the given arguments and
// environment, replacing the current process where the platform allows
// it. argv[0] is looked up in PATH when it contains no path separator.
// Exec returns only on failure.
func Exec(argv, env []string) error {
	if len(argv) == 0 {
		return errors.New("execvp: empty argument vector")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	return execute(path, argv, env)
}
