package reconcile_test

import (
	"context"
	"testing"

	"dconf-apply/core/dconf"
	"dconf-apply/feature/settings"
	"dconf-apply/feature/settings/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// desiredFrom builds a tree from profile documents applied in order.
func desiredFrom(t *testing.T, docs ...string) *settings.Dir {
	t.Helper()
	root := settings.NewDir()
	for i, doc := range docs {
		entries, err := settings.Parse("doc", doc)
		require.NoError(t, err, "doc %d", i)
		require.NoError(t, root.Apply(entries))
	}
	return root
}

func snapFrom(t *testing.T, dump string) *dconf.Snapshot {
	t.Helper()
	snap, err := dconf.ParseDump(dump)
	require.NoError(t, err)
	return snap
}

func TestBuildPlan_NoOpMinimality(t *testing.T) {
	desired := desiredFrom(t, `[a]
same='1'
changed='new'
added='2'
`)
	snap := snapFrom(t, `[a]
same='1'
changed='old'
untouched='x'
`)

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, reconcile.ActionWrite, plan.Actions[0].Type)
	assert.Equal(t, "/a/added", plan.Actions[0].Path)
	assert.Equal(t, "new key", plan.Actions[0].Reason)
	assert.Equal(t, "/a/changed", plan.Actions[1].Path)
	assert.Equal(t, "value changed", plan.Actions[1].Reason)

	assert.Equal(t, 2, plan.Summary.Writes)
	assert.Equal(t, 1, plan.Summary.UpToDate)
	assert.Equal(t, 0, plan.Summary.DirResets)
}

func TestBuildPlan_UnmentionedKeysSurvive(t *testing.T) {
	desired := desiredFrom(t, "[a]\nwanted='1'\n")
	snap := snapFrom(t, `[a]
wanted='1'
stale='from an old generation'

[b]
other='2'
`)

	plan := reconcile.BuildPlan(desired, snap)
	assert.True(t, plan.InSync())
}

func TestBuildPlan_ResetPrecedence(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true
b/reset=false
`)
	snap := snapFrom(t, `[a]
b='precious'
c='doomed'
`)

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 1)
	action := plan.Actions[0]
	assert.Equal(t, reconcile.ActionResetDir, action.Type)
	assert.Equal(t, "/a/", action.Path)
	assert.Equal(t, []string{"b"}, action.Keep)
	assert.Equal(t, []string{"/a/c"}, action.Clears)

	for _, a := range plan.Actions {
		assert.NotEqual(t, "/a/b", a.Path)
		assert.NotContains(t, a.Clears, "/a/b")
	}

	// The protected key survives apply untouched.
	store := newFakeStore(t, "[a]\nb='precious'\nc='doomed'\n")
	_, err := reconcile.Apply(context.Background(), store, plan, reconcile.Options{})
	require.NoError(t, err)

	v, ok := store.value("/a/b")
	assert.True(t, ok)
	assert.Equal(t, "'precious'", v)
	_, ok = store.value("/a/c")
	assert.False(t, ok)
}

func TestBuildPlan_ResetThenWriteOrdering(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true
b='x'
`)
	snap := snapFrom(t, `[a]
b='old'
junk='1'
`)

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, reconcile.ActionResetDir, plan.Actions[0].Type)
	assert.Equal(t, "/a/", plan.Actions[0].Path)
	// The written key is excluded from the reset, not cleared and re-set.
	assert.Equal(t, []string{"/a/junk"}, plan.Actions[0].Clears)
	assert.Equal(t, reconcile.ActionWrite, plan.Actions[1].Type)
	assert.Equal(t, "/a/b", plan.Actions[1].Path)
	assert.Equal(t, "'x'", plan.Actions[1].Value)
}

func TestBuildPlan_ResetDoesNotCascade(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true

[a/flagged]
/reset=true

[a/unflagged]
keep-me='1'

[a/protected]
/reset=false
`)
	snap := snapFrom(t, `[a]
direct='1'

[a/flagged]
x='1'

[a/unflagged]
keep-me='1'
extra='2'

[a/protected]
y='3'
`)

	plan := reconcile.BuildPlan(desired, snap)

	var resetPaths []string
	for _, a := range plan.Actions {
		require.Equal(t, reconcile.ActionResetDir, a.Type)
		resetPaths = append(resetPaths, a.Path)
	}
	// Only directories with their own reset=true flag are cleared; the
	// parent's flag reaches neither the unflagged nor the protected child.
	assert.Equal(t, []string{"/a/", "/a/flagged/"}, resetPaths)
	assert.Equal(t, 2, plan.Summary.DirResets)
}

func TestBuildPlan_KeyReset(t *testing.T) {
	desired := desiredFrom(t, `[a]
gone/reset=true
absent/reset=true
`)
	snap := snapFrom(t, "[a]\ngone='1'\n")

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, reconcile.ActionResetKey, plan.Actions[0].Type)
	assert.Equal(t, "/a/gone", plan.Actions[0].Path)
	assert.Equal(t, 1, plan.Summary.KeyResets)
}

func TestBuildPlan_KeyResetSubsumedByDirReset(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true
gone/reset=true
`)
	snap := snapFrom(t, "[a]\ngone='1'\nother='2'\n")

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, reconcile.ActionResetDir, plan.Actions[0].Type)
	assert.ElementsMatch(t, []string{"/a/gone", "/a/other"}, plan.Actions[0].Clears)
	assert.Equal(t, 0, plan.Summary.KeyResets)
}

func TestBuildPlan_DirResetOmittedWhenNothingToClear(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true
b/reset=false
c='1'
`)
	snap := snapFrom(t, "[a]\nb='1'\nc='1'\n")

	plan := reconcile.BuildPlan(desired, snap)
	assert.True(t, plan.InSync(), "actions: %v", plan.Actions)
}

func TestBuildPlan_ValueWinsOverResetFlag(t *testing.T) {
	desired := desiredFrom(t, "[a]\nfoo=1\nfoo/reset=true\n")

	plan := reconcile.BuildPlan(desired, snapFrom(t, "[a]\nfoo=2\n"))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, reconcile.ActionWrite, plan.Actions[0].Type)

	plan = reconcile.BuildPlan(desired, snapFrom(t, "[a]\nfoo=1\n"))
	assert.True(t, plan.InSync())
}

func TestBuildPlan_LastDocumentWins(t *testing.T) {
	desired := desiredFrom(t,
		"[a]\nb='first'\n",
		"[a]\nb='second'\n",
	)
	snap := dconf.NewSnapshot()

	plan := reconcile.BuildPlan(desired, snap)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "'second'", plan.Actions[0].Value)
}

func TestBuildPlan_Idempotence(t *testing.T) {
	desired := desiredFrom(t, `[a]
/reset=true
b='x'
c/reset=false
gone/reset=true

[a/sub]
d=42

[e]
f='y'
`)

	store := newFakeStore(t, `[a]
b='old'
c='keep'
gone='1'
junk='2'

[e]
f='y'
stale='z'
`)

	ctx := context.Background()
	snap, err := store.Dump(ctx)
	require.NoError(t, err)

	plan := reconcile.BuildPlan(desired, snap)
	require.False(t, plan.InSync())

	_, err = reconcile.Apply(ctx, store, plan, reconcile.Options{})
	require.NoError(t, err)

	// Second pass against the mutated database plans nothing.
	snap, err = store.Dump(ctx)
	require.NoError(t, err)

	second := reconcile.BuildPlan(desired, snap)
	assert.True(t, second.InSync(), "second pass planned: %v", second.Actions)
}

func TestBuildPlan_EmptyDesiredTree(t *testing.T) {
	plan := reconcile.BuildPlan(settings.NewDir(), snapFrom(t, "[a]\nb='1'\n"))
	assert.True(t, plan.InSync())
	assert.Equal(t, 1, plan.Summary.Directories)
}
