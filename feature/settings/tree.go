package settings

import (
	"fmt"
	"strings"
)

// Key is the desired state of one dconf key.
type Key struct {
	// Reset states whether the key should be reset to its default, or nil to
	// inherit the enclosing directory's decision. Ignored when Value is set.
	Reset *bool

	// Value is the GVariant text to write, or nil when only options were
	// given for the key.
	Value *string
}

// Dir is the desired state of one dconf directory.
type Dir struct {
	// Reset states whether keys directly under this directory should be
	// reset, or nil for no reset. Individual keys may override this.
	Reset *bool

	// Subdirs holds child directories by segment name.
	Subdirs map[string]*Dir

	// Keys holds explicitly mentioned keys by name.
	Keys map[string]*Key
}

// NewDir returns an empty directory node.
func NewDir() *Dir {
	return &Dir{
		Subdirs: make(map[string]*Dir),
		Keys:    make(map[string]*Key),
	}
}

// Subdir returns the directory at the given relative path, materializing
// every missing node along the way.
func (d *Dir) Subdir(path []string) *Dir {
	node := d
	for _, segment := range path {
		child, ok := node.Subdirs[segment]
		if !ok {
			child = NewDir()
			node.Subdirs[segment] = child
		}
		node = child
	}
	return node
}

// key returns the key node by name, materializing it if missing.
func (d *Dir) key(name string) *Key {
	k, ok := d.Keys[name]
	if !ok {
		k = &Key{}
		d.Keys[name] = k
	}
	return k
}

// Apply folds one document's entries into the tree. Later entries for the
// same directory or key overwrite earlier ones, so calling Apply once per
// document in discovery order yields global last-wins semantics.
func (d *Dir) Apply(entries []Entry) error {
	for _, e := range entries {
		for _, segment := range e.Dir {
			if segment == "" || segment == "/" || strings.Contains(segment, "/") {
				return &ConfigError{Reason: fmt.Sprintf("invalid path segment %q", segment)}
			}
		}
		dir := d.Subdir(e.Dir)

		switch e.Kind {
		case EntryDirectoryHeader:
			// Materializing the directory is all a bare header does.

		case EntryDirectoryOption:
			reset := e.Reset
			dir.Reset = &reset

		case EntryKeyAssignment:
			if err := validKeyName(e.Key); err != nil {
				return err
			}
			value := e.Value
			dir.key(e.Key).Value = &value

		case EntryKeyOption:
			if err := validKeyName(e.Key); err != nil {
				return err
			}
			reset := e.Reset
			dir.key(e.Key).Reset = &reset

		default:
			return &ConfigError{Reason: fmt.Sprintf("unknown entry kind %q", e.Kind)}
		}
	}
	return nil
}

func validKeyName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return &ConfigError{Reason: fmt.Sprintf("invalid key name %q", name)}
	}
	return nil
}
