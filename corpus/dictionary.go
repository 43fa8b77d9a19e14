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

package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadDictionary reads a dictionary in the AFL/libFuzzer format: one entry
// per line, optionally prefixed with `keyword=`, the value double-quoted
// with C-style escapes (`\\`, `\"`, `\xNN`). Blank lines and `#` comments
// are skipped.
func LoadDictionary(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	var dict [][]byte
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		entry, err := parseDictionaryLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("dictionary %s line %d: %w", path, lineNo, err)
		}
		if entry != nil {
			dict = append(dict, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return dict, nil
}

func parseDictionaryLine(line string) ([]byte, error) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return nil, nil
	}

	start := strings.IndexByte(s, '"')
	if start < 0 {
		return nil, fmt.Errorf("no quoted value in %q", s)
	}
	end := strings.LastIndexByte(s, '"')
	if end <= start {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}

	val, err := strconv.Unquote(s[start : end+1])
	if err != nil {
		return nil, fmt.Errorf("bad escape in %q: %w", s, err)
	}
	if val == "" {
		return nil, fmt.Errorf("empty value in %q", s)
	}
	return []byte(val), nil
}
