// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SweepResult summarizes a recursive JSON syntax sweep.
type SweepResult struct {
	Total   int      // files scanned
	Invalid []string // per-file findings
	Skipped []string // directories that do not exist
}

// OK reports whether every scanned file parsed.
func (r *SweepResult) OK() bool { return len(r.Invalid) == 0 }

// SweepJSON parses every .json file under the given directories,
// recursively, and records syntax errors with line and column. Missing
// directories are skipped, not failed.
func SweepJSON(dirs ...string) *SweepResult {
	var res SweepResult

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			res.Skipped = append(res.Skipped, dir)
			continue
		}

		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				res.Invalid = append(res.Invalid, fmt.Sprintf("%s: %v", path, err))
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
				return nil
			}

			res.Total++
			if finding := checkSyntax(path); finding != "" {
				res.Invalid = append(res.Invalid, finding)
			}
			return nil
		})
	}
	return &res
}

// checkSyntax parses one file and describes the first syntax error, with
// the line and column derived from the error offset.
func checkSyntax(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("%s: %v", path, err)
	}

	var doc any
	err = json.Unmarshal(raw, &doc)
	if err == nil {
		return ""
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineCol(raw, syntaxErr.Offset)
		return fmt.Sprintf("%s: line %d, column %d: %v", path, line, col, err)
	}
	return fmt.Sprintf("%s: %v", path, err)
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(data []byte, offset int64) (int, int) {
	line, col := 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
