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

// Package corpus keeps the set of interesting inputs discovered so far and
// hands out entries for splicing.
package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"golang.org/x/crypto/sha3"

	"ByteFuzz/mangle"
	"ByteFuzz/utils"
)

// Corpus is an append-only, deduplicated set of inputs. Entries are never
// mutated after insertion, so PickRandomInput can hand out borrowed slices
// under a read lock.
type Corpus struct {
	mu           sync.RWMutex
	entries      [][]byte
	seen         map[[32]byte]struct{}
	maxInputSize int
	dir          string
}

// New returns an empty corpus. When dir is non-empty, every added entry is
// also persisted there under its content hash.
func New(maxInputSize int, dir string) *Corpus {
	if maxInputSize < 1 || maxInputSize > mangle.InputMaxSize {
		maxInputSize = mangle.InputMaxSize
	}
	return &Corpus{
		seen:         make(map[[32]byte]struct{}),
		maxInputSize: maxInputSize,
		dir:          dir,
	}
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Add copies data into the corpus unless an identical entry exists. Inputs
// longer than the configured maximum are truncated. Returns whether the
// entry was new.
func (c *Corpus) Add(data []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(data, c.dir != "")
}

func (c *Corpus) add(data []byte, persist bool) (bool, error) {
	if len(data) == 0 {
		return false, nil
	}
	if len(data) > c.maxInputSize {
		data = data[:c.maxInputSize]
	}

	sum := sha3.Sum256(data)
	if _, ok := c.seen[sum]; ok {
		return false, nil
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	c.seen[sum] = struct{}{}
	c.entries = append(c.entries, cp)

	if persist {
		if err := utils.EnsureDir(c.dir); err != nil {
			return true, err
		}
		name := filepath.Join(c.dir, fmt.Sprintf("%x.cov", sum))
		if err := atomic.WriteFile(name, bytes.NewReader(cp)); err != nil {
			return true, fmt.Errorf("failed to persist corpus entry: %w", err)
		}
	}
	return true, nil
}

// LoadDir seeds the corpus with every regular file in dir. Entries loaded
// from disk are not persisted again. Returns the number of new entries.
func (c *Corpus) LoadDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return loaded, fmt.Errorf("failed to read corpus file %s: %w", f.Name(), err)
		}
		added, err := c.add(data, false)
		if err != nil {
			return loaded, err
		}
		if added {
			loaded++
		}
	}
	return loaded, nil
}

// PickRandomInput returns a uniformly chosen entry, or nil when the corpus
// is empty. The slice is borrowed: valid to read only, for the duration of
// the caller's current operation.
func (c *Corpus) PickRandomInput(rnd *mangle.Rand) []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[rnd.Intn(0, len(c.entries)-1)]
}
