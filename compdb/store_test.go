// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "compile_commands.json")
	s, err := Open(fname)
	if err != nil {
		t.Fatalf("Open(%q)=%v, %v; want nil err", fname, s, err)
	}
	defer s.Close()
	if err := s.Lock(); err != nil {
		t.Fatalf("Lock()=%v; want nil err", err)
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load()=%v, %v; want nil err", entries, err)
	}
	if len(entries) != 0 {
		t.Errorf("Load()=%v; want empty", entries)
	}
	entries = []Entry{
		{Directory: sp(dir), Arguments: ap("clang++", "-c", "a.cc"), File: sp("a.cc")},
	}
	if err := s.Rewrite(entries); err != nil {
		t.Fatalf("Rewrite(%v)=%v; want nil err", entries, err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load()=%v, %v; want nil err", got, err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("Load(): diff -want +got:\n%s", diff)
	}
	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock()=%v; want nil err", err)
	}
}

// A database that does not parse reads as empty and heals on the next
// rewrite.
func TestStoreRecovery(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "compile_commands.json")
	err := os.WriteFile(fname, []byte("{{{ not json"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Open(fname)
	if err != nil {
		t.Fatalf("Open(%q)=%v, %v; want nil err", fname, s, err)
	}
	defer s.Close()
	if err := s.Lock(); err != nil {
		t.Fatalf("Lock()=%v; want nil err", err)
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load()=%v, %v; want nil err", entries, err)
	}
	if len(entries) != 0 {
		t.Errorf("Load()=%v; want empty", entries)
	}
	want := []Entry{
		{Directory: sp(dir), Arguments: ap("clang++", "-c", "a.cc"), File: sp("a.cc")},
	}
	if err := s.Rewrite(want); err != nil {
		t.Fatalf("Rewrite(%v)=%v; want nil err", want, err)
	}
	data, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll()=%v; want nil err", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(%q)=%v, %v; want nil err", data, got, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode(): diff -want +got:\n%s", diff)
	}
}

func TestStoreEntries(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "compile_commands.json")
	s, err := Open(fname)
	if err != nil {
		t.Fatalf("Open(%q)=%v, %v; want nil err", fname, s, err)
	}
	defer s.Close()
	entries, err := s.Entries()
	if err != nil || len(entries) != 0 {
		t.Errorf("Entries()=%v, %v; want empty, nil err", entries, err)
	}
	want := []Entry{{File: sp("a.cc")}}
	if err := s.Rewrite(want); err != nil {
		t.Fatalf("Rewrite(%v)=%v; want nil err", want, err)
	}
	entries, err = s.Entries()
	if err != nil {
		t.Fatalf("Entries()=%v, %v; want nil err", entries, err)
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Entries(): diff -want +got:\n%s", diff)
	}
	// Corrupt content is an error here, not an empty database.
	err = os.WriteFile(fname, []byte("{{{"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	entries, err = s.Entries()
	if err == nil {
		t.Errorf("Entries()=%v, nil err; want err", entries)
	}
}

// Rewriting with fewer entries must not leave stale bytes behind.
func TestStoreRewriteTruncates(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "compile_commands.json")
	s, err := Open(fname)
	if err != nil {
		t.Fatalf("Open(%q)=%v, %v; want nil err", fname, s, err)
	}
	defer s.Close()
	if err := s.Lock(); err != nil {
		t.Fatalf("Lock()=%v; want nil err", err)
	}
	long := []Entry{
		{Directory: sp(dir), Arguments: ap("clang++", "-O2", "-g", "-c", "a.cc"), File: sp("a.cc")},
		{Directory: sp(dir), Arguments: ap("clang++", "-O2", "-g", "-c", "b.cc"), File: sp("b.cc")},
		{Directory: sp(dir), Arguments: ap("clang++", "-O2", "-g", "-c", "c.cc"), File: sp("c.cc")},
	}
	if err := s.Rewrite(long); err != nil {
		t.Fatalf("Rewrite(%v)=%v; want nil err", long, err)
	}
	short := []Entry{{File: sp("a.cc")}}
	if err := s.Rewrite(short); err != nil {
		t.Fatalf("Rewrite(%v)=%v; want nil err", short, err)
	}
	data, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll()=%v; want nil err", err)
	}
	want, err := Encode(short)
	if err != nil {
		t.Fatalf("Encode(%v)=%v; want nil err", short, err)
	}
	if diff := cmp.Diff(string(want), string(data)); diff != "" {
		t.Errorf("ReadAll(): diff -want +got:\n%s", diff)
	}
}

// Updaters on distinct descriptors must serialize on the lock; without
// it, concurrent read-modify-write cycles lose entries.
func TestStoreConcurrentUpdates(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "compile_commands.json")
	const n = 8
	var eg errgroup.Group
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			file := "src/" + strconv.Itoa(i) + ".cc"
			args := []string{"clang++", "-c", file}
			s, err := Open(fname)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Lock(); err != nil {
				return err
			}
			entries, err := s.Load()
			if err != nil {
				return err
			}
			entries = Merge(entries, NewSourceSet(dir, []string{file}), args, dir)
			return s.Rewrite(entries)
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("concurrent updates: %v", err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(%q)=%v, %v; want nil err", data, entries, err)
	}
	if len(entries) != n {
		t.Errorf("len(entries)=%d; want=%d", len(entries), n)
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.File == nil || e.Arguments == nil || e.Directory == nil {
			t.Errorf("incomplete entry: %+v", e)
			continue
		}
		seen[*e.File] = true
	}
	if len(seen) != n {
		t.Errorf("distinct files=%d; want=%d", len(seen), n)
	}
}
