// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build unix

package compdb

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func (s *Store) lock() error {
	for {
		err := unix.Flock(int(s.f.Fd()), unix.LOCK_EX)
		if err == nil {
			return nil
		}
		// flock(2) waits can be interrupted by the runtime's signals.
		if !errors.Is(err, unix.EINTR) {
			return os.NewSyscallError("flock", err)
		}
	}
}

func (s *Store) unlock() error {
	err := unix.Flock(int(s.f.Fd()), unix.LOCK_UN)
	if err != nil {
		return os.NewSyscallError("flock", err)
	}
	return nil
}
