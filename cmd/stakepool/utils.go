// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/lvldb"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fatal(fmt.Sprintf(format, args...))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stakepool")
}

func initLogger(cfg *config) {
	level, ok := log.LevelFromString(cfg.Verbosity)
	if !ok {
		fatalf("invalid verbosity '%v'", cfg.Verbosity)
	}

	var handler slog.Handler
	if cfg.JSONLogs {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandler(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func parseGenesis(cfg *config) (*genesis.Config, []byte) {
	if cfg.Genesis == "" {
		fatalf("no genesis spec, use -%s to provide one", genesisFlag.Name)
	}
	raw, err := os.ReadFile(cfg.Genesis)
	if err != nil {
		fatalf("read genesis spec at '%v': %v", cfg.Genesis, err)
	}
	config, err := genesis.Parse(bytes.NewReader(raw))
	if err != nil {
		fatal(err)
	}
	return config, raw
}

func openMainDB(cfg *config) *lvldb.LevelDB {
	if cfg.Mem {
		db, err := lvldb.NewMem()
		if err != nil {
			fatalf("open in-memory database: %v", err)
		}
		return db
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatalf("create data dir at '%v': %v", dataDir, err)
	}

	dir := filepath.Join(dataDir, "pool.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		fatalf("open pool database at '%v': %v", dir, err)
	}
	return db
}

func handleExitSignal() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
