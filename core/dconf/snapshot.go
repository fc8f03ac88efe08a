package dconf

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
)

// Root is the path of the top-level directory.
const Root = "/"

// Snapshot is a point-in-time view of the database: for every directory that
// holds at least one key, the map from key name to value text.
//
// Directory paths are absolute and end with a slash ("/" for the root);
// key paths are absolute without a trailing slash. Values are opaque GVariant
// text, never interpreted here.
type Snapshot struct {
	dirs map[string]map[string]string
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{dirs: make(map[string]map[string]string)}
}

// Set records the value of key under the given directory path.
func (s *Snapshot) Set(dir, key, value string) {
	keys, ok := s.dirs[dir]
	if !ok {
		keys = make(map[string]string)
		s.dirs[dir] = keys
	}
	keys[key] = value
}

// Keys returns the key/value map directly under dir, or nil if the directory
// holds no keys. The returned map is shared; callers must not mutate it.
func (s *Snapshot) Keys(dir string) map[string]string {
	return s.dirs[dir]
}

// Lookup returns the value of key under dir and whether the key exists.
func (s *Snapshot) Lookup(dir, key string) (string, bool) {
	value, ok := s.dirs[dir][key]
	return value, ok
}

// Dirs returns the paths of all directories holding keys, sorted.
func (s *Snapshot) Dirs() []string {
	dirs := make([]string, 0, len(s.dirs))
	for dir := range s.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// KeyPath joins a directory path and a key name into an absolute key path.
func KeyPath(dir, key string) string {
	return dir + key
}

// ChildDir joins a directory path and a child directory name.
func ChildDir(dir, name string) string {
	return dir + name + "/"
}

// ParseDump parses the keyfile-style output of `dconf dump /` into a
// Snapshot. Sections name directories relative to the dumped root ("/" for
// the root itself), entries are key=value lines with single-line GVariant
// text values.
func ParseDump(text string) (*Snapshot, error) {
	snap := NewSnapshot()

	var dir string
	haveDir := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.TrimSpace(line[1 : len(line)-1])
			parsed, err := dumpSectionDir(section)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			dir = parsed
			haveDir = true
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: not a key=value entry: %q", lineNo, line)
		}
		if !haveDir {
			return nil, fmt.Errorf("line %d: entry before any section header", lineNo)
		}

		key := strings.TrimSpace(name)
		if key == "" || strings.Contains(key, "/") {
			return nil, fmt.Errorf("line %d: invalid key name %q", lineNo, key)
		}

		snap.Set(dir, key, strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// dumpSectionDir converts a dump section name into an absolute directory path.
func dumpSectionDir(section string) (string, error) {
	if section == "/" {
		return Root, nil
	}
	if section == "" {
		return "", fmt.Errorf("empty section header")
	}

	dir := Root
	for _, segment := range strings.Split(section, "/") {
		if segment == "" {
			return "", fmt.Errorf("empty path segment in section %q", section)
		}
		dir = ChildDir(dir, segment)
	}
	return dir, nil
}
