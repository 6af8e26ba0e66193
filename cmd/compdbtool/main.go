// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Command compdbtool inspects and maintains the compilation databases
// written by compdbhook.
package main

import (
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/compdbhook/subcmd/check"
	"go.chromium.org/infra/build/compdbhook/subcmd/printdb"
	"go.chromium.org/infra/build/compdbhook/subcmd/prune"
	"go.chromium.org/infra/build/compdbhook/subcmd/version"
)

const compdbtoolVersion = "0.1"

func main() {
	os.Exit(compdbtoolMain())
}

func compdbtoolMain() int {
	app := &subcommands.DefaultApplication{
		Name:  "compdbtool",
		Title: "tool to inspect and maintain compilation databases",
		Commands: []*subcommands.Command{
			printdb.Cmd(),
			check.Cmd(),
			prune.Cmd(),
			version.Cmd(compdbtoolVersion),
			subcommands.CmdHelp,
		},
	}
	return subcommands.Run(app, nil)
}
