package settings

import "fmt"

// ParseError reports a malformed line in a profile document.
type ParseError struct {
	// File is the document name the line came from.
	File string
	// Line is the 1-based physical line number.
	Line int
	// Reason describes what was wrong with the line.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// ConfigError reports a structurally inconsistent desired-state tree.
// Correct parsing cannot produce one; this is a defensive check for entries
// constructed by hand.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid desired state: " + e.Reason
}
