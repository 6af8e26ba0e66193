// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ccutil provides helpers for C/C++ compiler command lines.
package ccutil

import (
	"strings"
)

// Flags that consume the following argument. Only these are skipped
// together with their value when scanning for source operands.
var flagsWithArg = map[string]bool{
	"-MF":      true,
	"-include": true,
	"-iquote":  true,
	"-isystem": true,
	"-o":       true,
	"-target":  true,
}

// SourceArgs returns the operands of args that look like source files:
// anything that is not a flag and not the value of a flag in
// flagsWithArg. args[0] is the command name and is never an operand.
// The scan is permissive: a positional argument that is not a source
// file is still collected.
func SourceArgs(args []string) []string {
	var files []string
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case flagsWithArg[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			files = append(files, arg)
		}
	}
	return files
}

// EffectiveArgs returns argv with argument zero replaced by compiler.
func EffectiveArgs(compiler string, argv []string) []string {
	if len(argv) == 0 {
		return []string{compiler}
	}
	return append([]string{compiler}, argv[1:]...)
}
