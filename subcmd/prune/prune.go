// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package prune implements prune subcommand.
package prune

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/infra/build/compdbhook/compdb"
	"go.chromium.org/infra/build/compdbhook/ui"
)

const usage = `remove entries whose source file no longer exists.

 $ compdbtool prune [-C <dir>] [-db <file>] [-n]

stats the source file of every entry and rewrites the compilation
database without the entries whose file is gone. entries that have
no file, or whose file cannot be checked, are kept.
`

// Cmd returns the Command for `prune` subcommand.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "prune <args>...",
		ShortDesc: "remove entries whose source file no longer exists",
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
	dryRun bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", os.Getenv("COMP_DB_HOOK_WORKSPACE_DIR"), "change to directory. can be set by $COMP_DB_HOOK_WORKSPACE_DIR")
	c.Flags.StringVar(&c.dbPath, "db", os.Getenv("COMP_DB_HOOK_DB_FILE"), "compilation database filename. can be set by $COMP_DB_HOOK_DB_FILE")
	c.Flags.BoolVar(&c.dryRun, "n", false, "report entries that would be removed without rewriting")
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
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

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
	keep := make([]bool, len(entries))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, e := range entries {
		if e.File == nil {
			// Entries without a file cannot be checked. keep them.
			keep[i] = true
			continue
		}
		base := wd
		if e.Directory != nil {
			base = *e.Directory
		}
		abs := compdb.JoinPath(base, *e.File)
		i, abs := i, abs
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return context.Cause(gctx)
			default:
			}
			_, err := os.Lstat(abs)
			switch {
			case err == nil:
				keep[i] = true
			case errors.Is(err, fs.ErrNotExist):
			default:
				log.Warnf("failed to stat %s: %v", abs, err)
				keep[i] = true
			}
			return nil
		})
	}
	err = eg.Wait()
	if err != nil {
		return err
	}
	kept := make([]compdb.Entry, 0, len(entries))
	removed := 0
	for i, e := range entries {
		if keep[i] {
			kept = append(kept, e)
			continue
		}
		removed++
		fmt.Fprintf(c.w, "prune %s\n", *e.File)
	}
	d := ui.FormatDuration(time.Since(started))
	switch {
	case removed == 0:
		fmt.Fprintf(c.w, "nothing to prune (%d entries) in %s\n", len(entries), d)
		return nil
	case c.dryRun:
		fmt.Fprintf(c.w, "would remove %d of %d entries in %s\n", removed, len(entries), d)
		return nil
	}
	err = store.Rewrite(kept)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.w, "removed %d of %d entries in %s\n", removed, len(entries), d)
	return nil
}
