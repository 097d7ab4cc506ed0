// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// lastUpdatedPattern matches the date fragment the static pages render,
// e.g. "Last Updated:</span> 07 Mar 2026".
var lastUpdatedPattern = regexp.MustCompile(`Last Updated:</span> \d{1,2} \w{3} \d{4}`)

const stampLayout = "02 Jan 2006"

// StampLastUpdated rewrites the "Last Updated" date in the site's HTML
// entry points to the given day. Both the working directory and the
// content root are checked for an index.html; files without the marker
// and missing files are skipped. Returns the files carrying the marker
// that were written. Write failures are logged, never fatal.
func StampLastUpdated(contentRoot string, now time.Time) []string {
	stamp := "Last Updated:</span> " + now.Format(stampLayout)

	candidates := []string{
		"index.html",
		filepath.Join(contentRoot, "index.html"),
	}

	var stamped []string
	seen := make(map[string]bool)
	for _, name := range candidates {
		name = filepath.Clean(name)
		if seen[name] {
			continue
		}
		seen[name] = true

		raw, err := os.ReadFile(name)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("timestamp read failed", "file", name, "error", err)
			}
			continue
		}
		content := string(raw)
		if !strings.Contains(content, "Last Updated:</span>") {
			continue
		}

		updated := lastUpdatedPattern.ReplaceAllString(content, stamp)
		if err := os.WriteFile(name, []byte(updated), 0o644); err != nil {
			slog.Warn("timestamp write failed", "file", name, "error", err)
			continue
		}
		stamped = append(stamped, name)
	}
	return stamped
}
