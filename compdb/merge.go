// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"encoding/json"

	"github.com/charmbracelet/log"
)

// Merge folds one compiler invocation into entries: every entry whose
// resolved file is in srcs has its arguments replaced with args, and the
// files left in srcs are appended as new entries with baseDir as their
// directory. An entry without a file field cannot be matched; it is
// reported and left as it is. Merge never removes an entry.
func Merge(entries []Entry, srcs *SourceSet, args []string, baseDir string) []Entry {
	for i := range entries {
		e := &entries[i]
		if e.File == nil {
			b, _ := json.Marshal(e)
			log.Warnf("invalid entry in compilation database: %s", b)
			continue
		}
		base := baseDir
		if e.Directory != nil {
			base = *e.Directory
		}
		if srcs.Remove(JoinPath(base, *e.File)) {
			arguments := append([]string(nil), args...)
			e.Arguments = &arguments
		}
	}
	for _, sf := range srcs.Files() {
		directory := baseDir
		file := sf.Path
		arguments := append([]string(nil), args...)
		entries = append(entries, Entry{
			Directory: &directory,
			Arguments: &arguments,
			File:      &file,
		})
	}
	return entries
}
