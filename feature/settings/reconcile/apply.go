package reconcile

import (
	"context"
	"fmt"

	"dconf-apply/core/dconf"
)

// Apply executes the plan's actions in order against the store.
//
// Returns the number of store operations that succeeded and any error
// encountered. On error the run stops immediately; operations after the
// failing one are never attempted and nothing is rolled back. With
// opts.DryRun set, no store call is made and (0, nil) is returned.
func Apply(ctx context.Context, client dconf.Client, plan *Plan, opts Options) (executed int, err error) {
	if opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionResetDir:
			for _, path := range action.Clears {
				if err := client.Reset(ctx, path); err != nil {
					return executed, fmt.Errorf("resetting %s (directory reset of %s): %w", path, action.Path, err)
				}
				executed++
			}

		case ActionResetKey:
			if err := client.Reset(ctx, action.Path); err != nil {
				return executed, fmt.Errorf("resetting %s: %w", action.Path, err)
			}
			executed++

		case ActionWrite:
			if err := client.Write(ctx, action.Path, action.Value); err != nil {
				return executed, fmt.Errorf("writing %s: %w", action.Path, err)
			}
			executed++

		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
	}

	return executed, nil
}
