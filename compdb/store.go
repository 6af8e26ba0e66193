// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Store is an open compilation database file. An update runs Open,
// Lock, Load (or ReadAll), Rewrite, then Close; Close drops the lock
// with the descriptor.
type Store struct {
	f *os.File
}

// Open opens the database file, creating it if needed.
func Open(fname string) (*Store, error) {
	f, err := os.OpenFile(fname, os.O_RDWR|os.O_CREATE, 0664)
	if err != nil {
		return nil, err
	}
	return &Store{f: f}, nil
}

// Name returns the file name of the store.
func (s *Store) Name() string {
	return s.f.Name()
}

// Lock acquires an exclusive advisory lock on the database, blocking
// until the lock becomes available. It holds off other updaters, not
// plain readers.
func (s *Store) Lock() error {
	return s.lock()
}

// Unlock releases the lock.
func (s *Store) Unlock() error {
	return s.unlock()
}

// Close closes the database file, releasing the lock if held.
func (s *Store) Close() error {
	return s.f.Close()
}

// ReadAll returns the raw content of the database file.
func (s *Store) ReadAll() ([]byte, error) {
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(s.f)
}

// Load reads and decodes the database. Content that does not decode is
// treated as an empty database so that a damaged file heals on the next
// rewrite. Read errors are returned.
func (s *Store) Load() ([]Entry, error) {
	data, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	entries, err := Decode(data)
	if err != nil {
		log.Debugf("discard unparsable %s: %v", s.f.Name(), err)
		return nil, nil
	}
	return entries, nil
}

// Entries reads and strictly decodes the database. An empty file is an
// empty database; content that does not decode is an error, unlike
// Load, which absorbs it.
func (s *Store) Entries() ([]Entry, error) {
	data, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt compilation database %s: %w", s.f.Name(), err)
	}
	return entries, nil
}

// Rewrite replaces the database content with the serialization of
// entries.
func (s *Store) Rewrite(entries []Entry) error {
	data, err := Encode(entries)
	if err != nil {
		return err
	}
	if err := s.f.Truncate(0); err != nil {
		return err
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = s.f.Write(data)
	return err
}
