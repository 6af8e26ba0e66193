// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"path/filepath"
	"sort"
)

// JoinPath resolves name against base. An absolute name stands on its
// own; otherwise the two are joined lexically. The result is cleaned so
// that different spellings of the same location compare equal.
func JoinPath(base, name string) string {
	if base == "" || filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

// SourceFile is a source file operand of a compiler invocation.
type SourceFile struct {
	// Path is the operand as written on the command line.
	Path string
	// Abs is the resolved path, the identity used to match database
	// entries.
	Abs string
}

// SourceSet holds the source files of one invocation, keyed by resolved
// path. The first occurrence of a path wins.
type SourceSet struct {
	files map[string]SourceFile
}

// NewSourceSet resolves paths against baseDir and collects them.
func NewSourceSet(baseDir string, paths []string) *SourceSet {
	s := &SourceSet{files: make(map[string]SourceFile)}
	for _, p := range paths {
		abs := JoinPath(baseDir, p)
		if _, ok := s.files[abs]; ok {
			continue
		}
		s.files[abs] = SourceFile{Path: p, Abs: abs}
	}
	return s
}

// Len returns the number of files left in the set.
func (s *SourceSet) Len() int {
	return len(s.files)
}

// Remove removes the file identified by abs and reports whether it was
// in the set.
func (s *SourceSet) Remove(abs string) bool {
	_, ok := s.files[abs]
	if ok {
		delete(s.files, abs)
	}
	return ok
}

// Files returns the remaining files in ascending resolved-path order.
func (s *SourceSet) Files() []SourceFile {
	files := make([]SourceFile, 0, len(s.files))
	for _, sf := range s.files {
		files = append(files, sf)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Abs < files[j].Abs
	})
	return files
}
