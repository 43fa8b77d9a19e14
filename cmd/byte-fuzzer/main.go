// Copyright 2025 The ByteFuzz Authors
// This file is part of the ByteFuzz library.
//
// The ByteFuzz library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ByteFuzz library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ByteFuzz library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"ByteFuzz/config"
	"ByteFuzz/fuzzer"
	"ByteFuzz/utils"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to the YAML configuration file",
		Value: "config.yaml",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "override the random seed (0 keeps the configured one)",
	}
	iterationsFlag = &cli.IntFlag{
		Name:  "iterations",
		Usage: "override the iteration count (0 keeps the configured one)",
	}
	printableFlag = &cli.BoolFlag{
		Name:  "printable",
		Usage: "restrict every mutated byte to printable ASCII",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "terminal log verbosity (slog level)",
		Value: int(slog.LevelInfo),
	}
	app = initApp()
)

func initApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "Coverage-guided byte-level fuzzer"
	app.Flags = []cli.Flag{configFlag, seedFlag, iterationsFlag, printableFlag, verbosityFlag}
	app.Action = startFuzzer
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startFuzzer(ctx *cli.Context) error {
	loglevel := slog.Level(ctx.Int(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, loglevel, true)))

	cfg, err := config.LoadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	if ctx.Int64(seedFlag.Name) != 0 {
		cfg.Fuzzing.Seed = ctx.Int64(seedFlag.Name)
	}
	if ctx.Int(iterationsFlag.Name) != 0 {
		cfg.Fuzzing.MaxIterations = ctx.Int(iterationsFlag.Name)
	}
	if ctx.Bool(printableFlag.Name) {
		cfg.Fuzzing.OnlyPrintable = true
	}

	logger, err := utils.NewLogger(cfg.GetLogPath())
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.SetLevel(cfg.Log.Level)

	logger.Info("Starting byte-fuzzer (seed=%d, printable=%v)",
		cfg.Fuzzing.Seed, cfg.Fuzzing.OnlyPrintable)

	f, err := fuzzer.New(cfg, newSmokeTarget(), logger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
	}()

	err = f.Loop(runCtx, cfg.Fuzzing.MaxIterations)
	iterations, newCov, failures := f.Stats()
	logger.Info("Done: iterations=%d corpus=%d new_coverage=%d failures=%d",
		iterations, f.Corpus().Len(), newCov, failures)
	if err == context.Canceled {
		return nil
	}
	return err
}

// smokeTarget is the built-in self-test target: it treats every previously
// unseen 2-byte input prefix as new coverage. Good for exercising the whole
// harness without an instrumented binary.
type smokeTarget struct {
	seen map[uint16]struct{}
}

func newSmokeTarget() *smokeTarget {
	return &smokeTarget{seen: make(map[uint16]struct{})}
}

func (t *smokeTarget) Run(data []byte) (bool, error) {
	if len(data) < 2 {
		return false, nil
	}
	key := uint16(data[0])<<8 | uint16(data[1])
	if _, ok := t.seen[key]; ok {
		return false, nil
	}
	t.seen[key] = struct{}{}
	return true, nil
}
