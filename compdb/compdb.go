// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package compdb provides the Clang JSON compilation database model and
// a file store guarded by an exclusive advisory lock.
//
// https://clang.llvm.org/docs/JSONCompilationDatabase.html
package compdb

import (
	"encoding/json"
)

// Entry is one record of a compilation database.
// Every field is optional at decode time so that records written by
// other tools survive a load/rewrite cycle; absent fields stay absent.
type Entry struct {
	// Directory is the working directory of the compilation. Relative
	// source paths are resolved against it.
	Directory *string `json:"directory,omitempty"`
	// Arguments is the compile command as an argument vector.
	Arguments *[]string `json:"arguments,omitempty"`
	// File is the main translation unit source, as written on the
	// command line.
	File *string `json:"file,omitempty"`
}

// Decode parses data as a compilation database.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	err := json.Unmarshal(data, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Encode serializes entries as a pretty-printed compilation database
// followed by a newline. An empty database serializes as "[]".
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
