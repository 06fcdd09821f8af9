/*
Package draft implements the durable draft store for in-progress briefs.

# Behavior

Save schedules a debounced write (default 2s quiet period); rapid saves for
the same key coalesce into a single last-write-wins row. Load is synchronous
and treats missing or corrupt data as absence. Clear removes the row and
cancels any pending write.

All persistence failures are logged and swallowed - the form stays fully
usable in memory even if the store is broken.

# Restore Gate

Restorable implements the recovery UX rule: a saved draft only triggers the
restore/discard prompt when at least one of clientName, projectName or
companyName is non-empty. Auto-restoring silently is disallowed.
*/
package draft
