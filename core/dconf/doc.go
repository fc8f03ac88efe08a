// Package dconf is the adapter between the reconciler and the dconf database.
//
// The database is reached through the dconf command-line binary, the same
// interface `dconf load` and `dconf reset` scripts use. Three primitives are
// exposed behind the Client interface:
//
//   - Dump: a single full snapshot of the database (`dconf dump /`), parsed
//     into a Snapshot tree of directory paths to key/value maps.
//   - Write: set one key to a GVariant text value (`dconf write`).
//   - Reset: remove one key or everything under a directory prefix
//     (`dconf reset -f`).
//
// Values are opaque strings throughout; this package never interprets
// GVariant syntax. Each invocation is independently fallible and failures
// carry the executed argv and captured stderr (see CommandError).
//
// The mocks subpackage provides a testify mock of Client for tests.
package dconf
