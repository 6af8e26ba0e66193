// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/compdbhook/execvp"
	"go.chromium.org/infra/build/compdbhook/hook"
)

// compdbhook is a transparent compiler hook. Installed in place of a
// compiler, it records the invocation in a Clang JSON compilation
// database and then hands the process over to the real compiler, so a
// stock build produces an up-to-date compile_commands.json as a side
// effect.
//
// The hook is configured entirely through the environment
// (COMP_DB_HOOK_COMPILER, COMP_DB_HOOK_WORKSPACE_DIR,
// COMP_DB_HOOK_DB_FILE); its own command line belongs to the compiler.

func main() {
	os.Exit(hookMain(os.Args))
}

func hookMain(argv []string) int {
	if hook.Verbose() {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := hook.DefaultConfig()
	if err != nil {
		log.Errorf("failed to resolve configuration: %v", err)
		return 1
	}
	args, err := hook.Update(cfg, argv)
	if err != nil {
		log.Errorf("failed to update %s: %v", cfg.DBPath, err)
		return 1
	}
	err = execvp.Exec(args, os.Environ())
	// Exec returns only on failure.
	log.Errorf("failed to exec %s: %v", cfg.Compiler, err)
	return 1
}
