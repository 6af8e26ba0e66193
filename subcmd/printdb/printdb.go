// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package printdb implements print subcommand.
package printdb

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/compdbhook/compdb"
)

const usage = `print entries of the compilation database.

 $ compdbtool print [-C <dir>] [-db <file>] [-format <format>]

prints the entries of the compilation database in <dir>/<file>.

format:
 json:     the entries as they are stored.
 files:    one source file per line.
 commands: one command line per line.
`

// Cmd returns the Command for `print` subcommand.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "print <args>...",
		ShortDesc: "print entries of the compilation database",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{w: os.Stdout}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	w io.Writer

	dir    string
	dbPath string
	format string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", os.Getenv("COMP_DB_HOOK_WORKSPACE_DIR"), "change to directory. can be set by $COMP_DB_HOOK_WORKSPACE_DIR")
	c.Flags.StringVar(&c.dbPath, "db", os.Getenv("COMP_DB_HOOK_DB_FILE"), "compilation database filename. can be set by $COMP_DB_HOOK_DB_FILE")
	c.Flags.StringVar(&c.format, "format", "json", `output format. "json", "files" or "commands"`)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(a.GetErr(), "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(a.GetErr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context) error {
	if c.dir != "" {
		err := os.Chdir(c.dir)
		if err != nil {
			return err
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	dbPath := c.dbPath
	if dbPath == "" {
		dbPath = "compile_commands.json"
	}
	dbPath = compdb.JoinPath(wd, dbPath)
	// Unlike the hook, print must not create the database.
	_, err = os.Stat(dbPath)
	if err != nil {
		return err
	}
	store, err := compdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	err = store.Lock()
	if err != nil {
		return err
	}
	entries, err := store.Entries()
	if err != nil {
		return err
	}
	switch c.format {
	case "json":
		buf, err := compdb.Encode(entries)
		if err != nil {
			return err
		}
		_, err = c.w.Write(buf)
		return err
	case "files":
		for _, e := range entries {
			if e.File == nil {
				continue
			}
			fmt.Fprintln(c.w, *e.File)
		}
		return nil
	case "commands":
		for _, e := range entries {
			if e.Arguments == nil {
				continue
			}
			fmt.Fprintln(c.w, strings.Join(*e.Arguments, " "))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: %w", c.format, flag.ErrHelp)
	}
}
