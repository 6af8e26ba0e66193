// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package execvp

import (
	"errors"
	"os"
	"os/exec"
)

// There is no exec(2) on Windows: run the command with inherited stdio
// and exit with its exit code.
func execute(path string, argv, env []string) error {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var eerr *exec.ExitError
	if errors.As(err, &eerr) {
		os.Exit(eerr.ExitCode())
	}
	if err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
