package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load builds the desired-state tree from every profile document in dir.
//
// Files are selected by the ext suffix and processed in lexicographic name
// order, each rendered then parsed then folded into the tree, so a later
// file's assignments overwrite an earlier file's for the same path. Other
// files in the directory are ignored. An empty directory yields an empty tree.
func Load(dir, ext string, renderer *Renderer) (*Dir, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading profile directory: %w", err)
	}

	names := make([]string, 0, len(listing))
	for _, de := range listing {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ext) {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	root := NewDir()
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		rendered, err := renderer.Render(name, string(raw))
		if err != nil {
			return nil, err
		}

		entries, err := Parse(name, rendered)
		if err != nil {
			return nil, err
		}

		if err := root.Apply(entries); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return root, nil
}
