// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package builder edits form definitions.

Builder keeps the ordered question list and supports add, update, remove,
reorder and option editing. Every mutation is local; an optional observer
gets a copy of the list afterwards.

Draft wraps a Builder with the form's title and description and tracks
whether anything changed since the last save:

	d := builder.NewDraft()
	d.SetTitle("Team lunch")
	d.Builder().Add(models.TypeRadio)
	res, err := d.Commit(ctx, client.Forms())

A failed Commit leaves the draft dirty so it can be retried.
*/
package builder
