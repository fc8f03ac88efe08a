// Package settings models the desired state of the dconf database as authored
// in profile documents.
//
// A profile document is an INI-like text file, usually templated
// (*.ini.jinja), describing directories and keys:
//
//	[org/gnome/desktop/interface]
//	/reset=true
//	clock-show-seconds=true
//	color-scheme='prefer-dark'
//	cursor-size/reset=false
//
// The dialect extends plain INI in two ways. An option suffix attached to a
// name configures behavior instead of assigning a value: "/reset=BOOL" on its
// own applies to the section's directory, "KEY/reset=BOOL" to a single key
// (dconf forbids "/" inside names, so the suffix can never collide with a
// real key). And a value may continue over following indented lines, which
// are trimmed and joined with single spaces so structured GVariant values can
// be written readably.
//
// # Pipeline
//
// Render expands template directives against an explicit environment map,
// Parse turns one rendered document into an ordered entry list, and Dir.Apply
// folds entries into the desired-state tree. Load drives all three over a
// profile directory in lexicographic file order; later files win on conflict.
//
// Reset flags are tri-state (*bool): explicitly true, explicitly false, or
// unset. Unset never means "reset"; the reconciler treats resets as strictly
// opt-in. Values are opaque GVariant text and are never validated here.
package settings
