package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionResetDir clears the non-excluded keys directly under a directory.
	ActionResetDir ActionType = "reset_dir"
	// ActionResetKey resets a single key to its default.
	ActionResetKey ActionType = "reset_key"
	// ActionWrite sets a single key to a value.
	ActionWrite ActionType = "write"
)

// Action represents one planned mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Path is the key path for writes and key resets, or the directory path
	// (trailing slash) for directory resets.
	Path string `json:"path"`

	// Value is the GVariant text to write. Only populated for ActionWrite.
	Value string `json:"value,omitempty"`

	// Keep lists key names excluded from a directory reset, for reporting.
	Keep []string `json:"keep,omitempty"`

	// Clears holds the resolved key paths a directory reset removes. The
	// emitter issues one reset per entry rather than a recursive prefix
	// reset, which would ignore Keep and descend into child directories.
	Clears []string `json:"-"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Summary aggregates plan statistics for reporting.
type Summary struct {
	// Directories is the number of desired-tree directories visited.
	Directories int `json:"directories"`

	// DirResets is the number of directory-level resets planned.
	DirResets int `json:"dir_resets"`

	// KeyResets is the number of standalone key resets planned.
	KeyResets int `json:"key_resets"`

	// Writes is the number of key writes planned.
	Writes int `json:"writes"`

	// UpToDate is the number of desired keys whose live value already matches.
	UpToDate int `json:"up_to_date"`
}

// Plan is the ordered list of actions turning the database into the desired
// state, plus summary statistics.
type Plan struct {
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// InSync reports whether the database already matches the desired state.
func (p *Plan) InSync() bool {
	return len(p.Actions) == 0
}

func (p *Plan) add(a Action) {
	p.Actions = append(p.Actions, a)
}

// Options controls plan application.
type Options struct {
	// DryRun prevents any store mutation; Apply becomes a no-op.
	DryRun bool
}
