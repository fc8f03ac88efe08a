package reconcile_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"dconf-apply/core/dconf"

	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory dconf database recording every mutation, used to
// verify call ordering and end state without a real dconf.
type fakeStore struct {
	dirs     map[string]map[string]string
	calls    []string
	failPath string
}

func newFakeStore(t *testing.T, dump string) *fakeStore {
	t.Helper()
	snap, err := dconf.ParseDump(dump)
	require.NoError(t, err)

	s := &fakeStore{dirs: make(map[string]map[string]string)}
	for _, dir := range snap.Dirs() {
		keys := make(map[string]string)
		for key, value := range snap.Keys(dir) {
			keys[key] = value
		}
		s.dirs[dir] = keys
	}
	return s
}

func splitKeyPath(path string) (dir, key string) {
	i := strings.LastIndex(path, "/")
	return path[:i+1], path[i+1:]
}

func (s *fakeStore) Dump(ctx context.Context) (*dconf.Snapshot, error) {
	snap := dconf.NewSnapshot()
	for dir, keys := range s.dirs {
		for key, value := range keys {
			snap.Set(dir, key, value)
		}
	}
	return snap, nil
}

func (s *fakeStore) Write(ctx context.Context, path, value string) error {
	if path == s.failPath {
		return fmt.Errorf("store rejected %s", path)
	}
	s.calls = append(s.calls, "write "+path)

	dir, key := splitKeyPath(path)
	if s.dirs[dir] == nil {
		s.dirs[dir] = make(map[string]string)
	}
	s.dirs[dir][key] = value
	return nil
}

func (s *fakeStore) Reset(ctx context.Context, path string) error {
	if path == s.failPath {
		return fmt.Errorf("store rejected %s", path)
	}
	s.calls = append(s.calls, "reset "+path)

	dir, key := splitKeyPath(path)
	if keys, ok := s.dirs[dir]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.dirs, dir)
		}
	}
	return nil
}

func (s *fakeStore) value(path string) (string, bool) {
	dir, key := splitKeyPath(path)
	value, ok := s.dirs[dir][key]
	return value, ok
}
