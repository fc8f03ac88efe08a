package reconcile

import (
	"sort"

	"dconf-apply/core/dconf"
	"dconf-apply/feature/settings"
)

// BuildPlan diffs the desired tree against a database snapshot and returns
// the ordered action plan. Diffing is total: it cannot fail, only produce an
// empty plan. The snapshot must be the one taken before this run; the plan is
// only valid against that exact state.
func BuildPlan(root *settings.Dir, snap *dconf.Snapshot) *Plan {
	plan := &Plan{}
	planDir(plan, dconf.Root, root, snap)
	return plan
}

// planDir emits the actions for one directory, resets before writes, then
// recurses into child directories in sorted order.
func planDir(plan *Plan, dirPath string, dir *settings.Dir, snap *dconf.Snapshot) {
	plan.Summary.Directories++
	actual := snap.Keys(dirPath)

	// Keys a directory reset must leave alone: explicit reset=false, or a
	// value this run manages (resetting those would only churn the store and
	// break idempotence).
	excluded := make(map[string]bool, len(dir.Keys))
	for name, key := range dir.Keys {
		if key.Value != nil || (key.Reset != nil && !*key.Reset) {
			excluded[name] = true
		}
	}

	// covered marks live keys the directory reset already clears, so
	// standalone key resets are not duplicated.
	covered := make(map[string]bool)

	if dir.Reset != nil && *dir.Reset {
		var targets []string
		for name := range actual {
			if !excluded[name] {
				targets = append(targets, name)
			}
		}
		if len(targets) > 0 {
			sort.Strings(targets)

			clears := make([]string, len(targets))
			for i, name := range targets {
				clears[i] = dconf.KeyPath(dirPath, name)
				covered[name] = true
			}

			var keep []string
			for name := range excluded {
				if _, ok := actual[name]; ok {
					keep = append(keep, name)
				}
			}
			sort.Strings(keep)

			plan.add(Action{
				Type:   ActionResetDir,
				Path:   dirPath,
				Keep:   keep,
				Clears: clears,
				Reason: "directory reset",
			})
			plan.Summary.DirResets++
		}
	}

	names := make([]string, 0, len(dir.Keys))
	for name := range dir.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	// Standalone key resets. A key with a value never resets (the value
	// wins); a key missing from the snapshot has nothing to clear.
	for _, name := range names {
		key := dir.Keys[name]
		if key.Value != nil || key.Reset == nil || !*key.Reset {
			continue
		}
		if covered[name] {
			continue
		}
		if _, ok := actual[name]; !ok {
			continue
		}
		plan.add(Action{
			Type:   ActionResetKey,
			Path:   dconf.KeyPath(dirPath, name),
			Reason: "key reset",
		})
		plan.Summary.KeyResets++
	}

	// Writes, skipping keys whose live value already matches. Excluded keys
	// keep their live value through any directory reset, so the comparison
	// is always against a value the reset cannot invalidate.
	for _, name := range names {
		key := dir.Keys[name]
		if key.Value == nil {
			continue
		}

		current, ok := actual[name]
		if ok && current == *key.Value {
			plan.Summary.UpToDate++
			continue
		}

		reason := "new key"
		if ok {
			reason = "value changed"
		}
		plan.add(Action{
			Type:   ActionWrite,
			Path:   dconf.KeyPath(dirPath, name),
			Value:  *key.Value,
			Reason: reason,
		})
		plan.Summary.Writes++
	}

	subdirs := make([]string, 0, len(dir.Subdirs))
	for name := range dir.Subdirs {
		subdirs = append(subdirs, name)
	}
	sort.Strings(subdirs)

	for _, name := range subdirs {
		planDir(plan, dconf.ChildDir(dirPath, name), dir.Subdirs[name], snap)
	}
}
