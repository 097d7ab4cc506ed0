// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "errors"

// Sentinel errors for content operations. Callers match with errors.Is to
// map them onto HTTP status codes or CLI exit messages; the wrapped form
// carries the category and identifier context.
var (
	// ErrNotFound means no item matched the identifier. A missing or reset
	// data file resolves like an empty category.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidIndex means a gallery index was negative or past the end.
	ErrInvalidIndex = errors.New("invalid gallery index")

	// ErrInvalidCategory means the category has no configured data file
	// mapping, so mutations cannot be routed.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrMalformedData means a data file exists but does not parse. Only
	// pure read paths surface it; mutation paths treat unparseable files
	// as "no data yet".
	ErrMalformedData = errors.New("malformed data file")

	// ErrSameItem means a pile operation resolved source and target to the
	// same item, which would absorb an item into itself.
	ErrSameItem = errors.New("source and target are the same item")
)
