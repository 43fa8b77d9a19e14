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

// Package fuzzer wires the corpus, the mutation engine and a target into the
// main fuzzing loop.
package fuzzer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/mclock"

	"ByteFuzz/config"
	"ByteFuzz/corpus"
	"ByteFuzz/feedback"
	"ByteFuzz/mangle"
	"ByteFuzz/utils"
)

// statsInterval is how many iterations pass between progress log lines.
const statsInterval = 100000

// Target consumes one mutated input per iteration. Run reports whether the
// input produced new coverage; executing the target process itself is the
// implementer's concern.
type Target interface {
	Run(data []byte) (newCoverage bool, err error)
}

// TargetFunc adapts a plain function to the Target interface.
type TargetFunc func(data []byte) (bool, error)

// Run implements Target.
func (f TargetFunc) Run(data []byte) (bool, error) {
	return f(data)
}

// Fuzzer owns one working buffer and drives the
// pick → mangle → execute → record cycle.
type Fuzzer struct {
	cfg     *config.Config
	log     *utils.Logger
	rnd     *mangle.Rand
	corpus  *corpus.Corpus
	cmpMap  *feedback.CmpMap
	mangler *mangle.Mangler
	target  Target
	clock   mclock.Clock

	input         *mangle.Input
	lastCovUpdate atomic.Int64
	slow          uint8

	iterations uint64
	newCov     uint64
	failures   uint64
}

// New builds a fuzzer from the configuration: seeds the corpus from the
// input directory, loads the dictionary and wires all engine collaborators.
func New(cfg *config.Config, target Target, logger *utils.Logger) (*Fuzzer, error) {
	if target == nil {
		return nil, fmt.Errorf("fuzzer: no target")
	}

	seed := cfg.Fuzzing.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := mangle.NewRand(seed)

	f := &Fuzzer{
		cfg:    cfg,
		log:    logger,
		rnd:    rnd,
		corpus: corpus.New(cfg.Fuzzing.MaxInputSize, cfg.PersistDir()),
		cmpMap: &feedback.CmpMap{},
		target: target,
		clock:  mclock.System{},
		input:  mangle.NewInput(cfg.Fuzzing.MaxInputSize),
	}

	f.mangler = mangle.NewMangler(mangle.Config{
		MaxInputSize:    cfg.Fuzzing.MaxInputSize,
		MutationsPerRun: cfg.Fuzzing.MutationsPerRun,
		OnlyPrintable:   cfg.Fuzzing.OnlyPrintable,
	}, rnd)
	f.mangler.SetCorpus(f.corpus)
	f.mangler.SetCmpFeedback(f.cmpMap, cfg.Fuzzing.CmpFeedback)
	f.mangler.SetClock(f.clock, &f.lastCovUpdate)
	f.lastCovUpdate.Store(f.nowMillis())

	if cfg.Corpus.InputDir != "" {
		n, err := f.corpus.LoadDir(cfg.Corpus.InputDir)
		if err != nil {
			logger.Warn("Could not seed corpus from %s: %v", cfg.Corpus.InputDir, err)
		} else {
			logger.Info("Seeded corpus with %d inputs from %s", n, cfg.Corpus.InputDir)
		}
	}

	if cfg.HasDictionary() {
		dict, err := corpus.LoadDictionary(cfg.Dictionary.Path)
		if err != nil {
			return nil, err
		}
		f.mangler.SetDictionary(dict)
		logger.Info("Loaded %d dictionary entries from %s", len(dict), cfg.Dictionary.Path)
	}

	return f, nil
}

// CmpMap exposes the comparison-feedback dictionary so instrumentation can
// publish constants into it.
func (f *Fuzzer) CmpMap() *feedback.CmpMap {
	return f.cmpMap
}

// Corpus returns the live corpus.
func (f *Fuzzer) Corpus() *corpus.Corpus {
	return f.corpus
}

// Stats returns iteration, new-coverage and failure counters.
func (f *Fuzzer) Stats() (iterations, newCov, failures uint64) {
	return f.iterations, f.newCov, f.failures
}

func (f *Fuzzer) nowMillis() int64 {
	return int64(f.clock.Now()) / int64(time.Millisecond)
}

// Loop runs up to iterations fuzzing cycles (0 means until the context is
// cancelled).
func (f *Fuzzer) Loop(ctx context.Context, iterations int) error {
	for i := 0; iterations <= 0 || i < iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		f.runOne()

		if f.iterations%statsInterval == 0 {
			f.log.Info("iterations=%d corpus=%d new_coverage=%d failures=%d",
				f.iterations, f.corpus.Len(), f.newCov, f.failures)
		}
	}
	return nil
}

func (f *Fuzzer) runOne() {
	f.input.Reset(f.corpus.PickRandomInput(f.rnd))

	f.mangler.Mangle(f.input, f.slow)

	start := f.clock.Now()
	newCov, err := f.target.Run(f.input.Data())
	elapsed := time.Duration(f.clock.Now() - start)
	f.slow = slowFactor(elapsed)

	f.iterations++
	if err != nil {
		f.failures++
		f.log.Warn("Target failed after %v: %v (input head %s)",
			elapsed, err, hexutil.Encode(head(f.input.Data(), 16)))
	}
	if newCov {
		f.newCov++
		f.lastCovUpdate.Store(f.nowMillis())
		if added, err := f.corpus.Add(f.input.Data()); err != nil {
			f.log.Error("Failed to store corpus entry: %v", err)
		} else if added {
			f.log.Debug("New corpus entry, %d bytes", f.input.Size())
		}
	}
}

// slowFactor buckets the previous execution time into the shake-up factor
// consumed by the engine: the slower the target, the more mutations each
// iteration applies.
func slowFactor(d time.Duration) uint8 {
	ms := d.Milliseconds()
	switch {
	case ms <= 10:
		return 0
	case ms <= 50:
		return 3
	case ms <= 250:
		return 5
	default:
		return 10
	}
}

func head(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}
