// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ccutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSourceArgs(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "compile",
			args: []string{
				"clang++",
				"-MMD",
				"-MF", "obj/base/base64.o.d",
				"-DDCHECK_ALWAYS_ON=1",
				"-I../..",
				"-isystem", "../../buildtools/libc++/include",
				"-iquote", "include",
				"-include", "pch.h",
				"-c",
				"../../base/base64.cc",
				"-o", "obj/base/base64.o",
				"-target", "x86_64-linux-gnu",
			},
			want: []string{"../../base/base64.cc"},
		},
		{
			name: "multiple sources",
			args: []string{"clang++", "-c", "a.cc", "b.cc", "c.cc"},
			want: []string{"a.cc", "b.cc", "c.cc"},
		},
		{
			name: "joined flag values are not consumed",
			args: []string{"clang++", "-MFdeps.d", "-isystem../include", "-c", "a.cc"},
			want: []string{"a.cc"},
		},
		{
			name: "flag without value at end of line",
			args: []string{"clang++", "a.cc", "-o"},
			want: []string{"a.cc"},
		},
		{
			name: "no sources",
			args: []string{"clang++", "--version"},
			want: nil,
		},
		{
			name: "command name only",
			args: []string{"clang++"},
			want: nil,
		},
		{
			name: "positional operands are collected even when not sources",
			args: []string{"clang++", "a.o", "b.o", "-o", "prog"},
			want: []string{"a.o", "b.o"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := SourceArgs(tc.args)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SourceArgs(%q): diff -want +got:\n%s", tc.args, diff)
			}
		})
	}
}

func TestEffectiveArgs(t *testing.T) {
	for _, tc := range []struct {
		name     string
		compiler string
		argv     []string
		want     []string
	}{
		{
			name:     "replace argv0",
			compiler: "clang++",
			argv:     []string{"/usr/local/bin/cc-hook", "-c", "a.cc"},
			want:     []string{"clang++", "-c", "a.cc"},
		},
		{
			name:     "argv0 only",
			compiler: "clang++",
			argv:     []string{"cc-hook"},
			want:     []string{"clang++"},
		},
		{
			name:     "empty argv",
			compiler: "clang++",
			want:     []string{"clang++"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveArgs(tc.compiler, tc.argv)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("EffectiveArgs(%q, %q): diff -want +got:\n%s", tc.compiler, tc.argv, diff)
			}
		})
	}
}
