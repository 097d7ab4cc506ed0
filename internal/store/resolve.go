// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "folio/internal/models"

// findItem resolves an identifier to an index in the sequence.
//
// Items are matched by exact id first, scanning the whole sequence, and
// only then by title in the default language (older records predate the id
// field and were addressed by their English title). The two passes are
// deliberate: an id match anywhere in the list beats a title match earlier
// in it. Within a pass the first match wins; ambiguity is not signalled.
func findItem(items []models.Item, identifier, defaultLang string) (int, bool) {
	for i, item := range items {
		if id := item.ID(); id != "" && id == identifier {
			return i, true
		}
	}
	for i, item := range items {
		if item.DisplayTitle(defaultLang) == identifier {
			return i, true
		}
	}
	return -1, false
}
