// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package hook implements the compiler hook pipeline: it records a
// compiler invocation in the compilation database and prepares the
// argument vector for the real compiler.
package hook

import (
	"os"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/compdbhook/compdb"
	"go.chromium.org/infra/build/compdbhook/toolsupport/ccutil"
)

// Environment variables that configure the hook. The hook's own argv
// belongs to the compiler, so there are no flags.
const (
	compilerEnv  = "COMP_DB_HOOK_COMPILER"
	workspaceEnv = "COMP_DB_HOOK_WORKSPACE_DIR"
	dbFileEnv    = "COMP_DB_HOOK_DB_FILE"
	verboseEnv   = "COMP_DB_HOOK_VERBOSE"
)

// Config carries the resolved hook configuration. Components receive it
// explicitly; nothing below this package reads the environment.
type Config struct {
	// Compiler is the command to run after recording,
	// $COMP_DB_HOOK_COMPILER, default "clang++".
	Compiler string
	// WorkspaceDir is the base directory for relative source paths and
	// the directory of new database entries,
	// $COMP_DB_HOOK_WORKSPACE_DIR, default the working directory.
	WorkspaceDir string
	// DBPath is the compilation database location,
	// $COMP_DB_HOOK_DB_FILE resolved against WorkspaceDir, default
	// "compile_commands.json".
	DBPath string
}

// DefaultConfig resolves the hook configuration from the environment.
// Variables that are unset or empty fall back to their defaults.
func DefaultConfig() (Config, error) {
	cfg := Config{
		Compiler:     os.Getenv(compilerEnv),
		WorkspaceDir: os.Getenv(workspaceEnv),
	}
	if cfg.Compiler == "" {
		cfg.Compiler = "clang++"
	}
	if cfg.WorkspaceDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, err
		}
		cfg.WorkspaceDir = wd
	}
	dbPath := os.Getenv(dbFileEnv)
	if dbPath == "" {
		dbPath = "compile_commands.json"
	}
	cfg.DBPath = compdb.JoinPath(cfg.WorkspaceDir, dbPath)
	return cfg, nil
}

// Verbose reports whether $COMP_DB_HOOK_VERBOSE asks for debug logging.
func Verbose() bool {
	v := os.Getenv(verboseEnv)
	return v != "" && v != "0"
}

// Update records the invocation argv in the database and returns the
// effective argument vector for the compiler: argv with argument zero
// replaced by the configured compiler. The whole read-merge-rewrite
// cycle runs under the database's exclusive lock; the lock is released
// when the store closes.
func Update(cfg Config, argv []string) ([]string, error) {
	args := ccutil.EffectiveArgs(cfg.Compiler, argv)
	store, err := compdb.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.Lock(); err != nil {
		return nil, err
	}
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	srcs := compdb.NewSourceSet(cfg.WorkspaceDir, ccutil.SourceArgs(args))
	entries = compdb.Merge(entries, srcs, args, cfg.WorkspaceDir)
	if err := store.Rewrite(entries); err != nil {
		return nil, err
	}
	log.Debugf("updated %s: %d entries", store.Name(), len(entries))
	return args, nil
}
