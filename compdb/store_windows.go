// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package compdb

import (
	"os"

	"golang.org/x/sys/windows"
)

// Whole-file locks via LockFileEx; the byte range covers every possible
// offset. I/O goes through the same handle that owns the lock.

func (s *Store) lock() error {
	ol := new(windows.Overlapped)
	err := windows.LockFileEx(windows.Handle(s.f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, ^uint32(0), ^uint32(0), ol)
	if err != nil {
		return os.NewSyscallError("LockFileEx", err)
	}
	return nil
}

func (s *Store) unlock() error {
	ol := new(windows.Overlapped)
	err := windows.UnlockFileEx(windows.Handle(s.f.Fd()), 0, ^uint32(0), ^uint32(0), ol)
	if err != nil {
		return os.NewSyscallError("UnlockFileEx", err)
	}
	return nil
}
