// Package reconcile diffs the desired settings tree against a dconf snapshot
// and turns the difference into an ordered, minimal action plan.
//
// # Planning
//
// BuildPlan walks the desired tree depth-first, children in sorted order, and
// emits per directory: the directory reset (if one applies), standalone key
// resets, then writes. This guarantees the ordering invariant that every
// reset under a directory precedes every write under it, so a reset can never
// clobber a value written in the same run.
//
// Resets are strictly opt-in. A directory with no explicit reset flag is left
// alone, and a directory reset does not cascade into child directories: each
// child acts on its own flag. Keys with an explicit reset=false, and keys the
// run writes a value for, are excluded from a directory reset; whatever else
// the snapshot holds directly under the directory is cleared. Keys present in
// the database but never mentioned in any profile are never touched outside
// an active directory reset.
//
// Plans are minimal: a write is only planned when the snapshot value differs,
// and a reset only when the snapshot actually holds something to clear.
// Planning the same desired state twice against the resulting database yields
// an empty plan.
//
// # Applying
//
// Apply executes the plan in order against a dconf.Client, fail-fast: the
// first store error stops the run and the count of operations that did
// succeed is reported alongside the error. There is no rollback; partial
// application is visible, not hidden. Dry-run performs no store calls at all.
package reconcile
