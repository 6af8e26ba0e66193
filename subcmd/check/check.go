// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package check implements check subcommand.
package check

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/compdbhook/compdb"
	"go.chromium.org/infra/build/compdbhook/ui"
)

const usage = `check entries of the compilation database.

 $ compdbtool check [-C <dir>] [-db <file>]

checks that every entry has a directory, arguments and a file, and
that no two entries resolve to the same source file.
exits non-zero when the database is unreadable or has problems.
`

// Cmd returns the Command for `check` subcommand.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "check <args>...",
		ShortDesc: "check entries of the compilation database",
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
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", os.Getenv("COMP_DB_HOOK_WORKSPACE_DIR"), "change to directory. can be set by $COMP_DB_HOOK_WORKSPACE_DIR")
	c.Flags.StringVar(&c.dbPath, "db", os.Getenv("COMP_DB_HOOK_DB_FILE"), "compilation database filename. can be set by $COMP_DB_HOOK_DB_FILE")
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
	started := time.Now()
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
	var problems []string
	seen := make(map[string]int)
	for i, e := range entries {
		if e.Directory == nil {
			problems = append(problems, fmt.Sprintf("entry %d: missing directory", i))
		}
		switch {
		case e.Arguments == nil:
			problems = append(problems, fmt.Sprintf("entry %d: missing arguments", i))
		case len(*e.Arguments) == 0:
			problems = append(problems, fmt.Sprintf("entry %d: empty arguments", i))
		}
		if e.File == nil {
			problems = append(problems, fmt.Sprintf("entry %d: missing file", i))
			continue
		}
		base := wd
		if e.Directory != nil {
			base = *e.Directory
		}
		abs := compdb.JoinPath(base, *e.File)
		if j, ok := seen[abs]; ok {
			problems = append(problems, fmt.Sprintf("entry %d: duplicate of entry %d: %s", i, j, abs))
			continue
		}
		seen[abs] = i
	}
	for _, p := range problems {
		fmt.Fprintln(c.w, p)
	}
	d := ui.FormatDuration(time.Since(started))
	if len(problems) > 0 {
		fmt.Fprintf(c.w, "%s: checked %d entries in %s\n", ui.MaybeSGR(ui.Red, fmt.Sprintf("%d problems", len(problems))), len(entries), d)
		return fmt.Errorf("%d problems in %s", len(problems), dbPath)
	}
	fmt.Fprintf(c.w, "%s: checked %d entries in %s\n", ui.MaybeSGR(ui.Green, "ok"), len(entries), d)
	return nil
}
