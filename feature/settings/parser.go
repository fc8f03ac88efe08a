package settings

import (
	"fmt"
	"strings"
)

// EntryKind identifies what a parsed line means.
type EntryKind string

const (
	// EntryDirectoryHeader opens a directory context ("[path]").
	EntryDirectoryHeader EntryKind = "directory_header"
	// EntryDirectoryOption sets an option on the context directory ("/reset=true").
	EntryDirectoryOption EntryKind = "directory_option"
	// EntryKeyAssignment assigns a value to a key ("key=value").
	EntryKeyAssignment EntryKind = "key_assignment"
	// EntryKeyOption sets an option on one key ("key/reset=false").
	EntryKeyOption EntryKind = "key_option"
)

// Entry is one parsed line of a profile document. Entries keep document
// order; order only matters for resolving the directory context and for
// last-wins overwriting during tree building.
type Entry struct {
	Kind EntryKind

	// Dir is the directory path as segments; nil means the root.
	Dir []string

	// Key is the key name for key assignments and key options.
	Key string

	// Option is the option name for option entries (currently only "reset").
	Option string

	// Value is the assigned value text for key assignments.
	Value string

	// Reset is the parsed boolean for reset options.
	Reset bool

	// Line is the 1-based line the entry started on.
	Line int
}

// optionReset is the only option the dialect defines.
const optionReset = "reset"

// Parse converts one rendered profile document into its ordered entry list.
// The name is used in error messages only. Parsing is a single pass; the only
// lookahead is the indentation check deciding whether a line continues the
// previous value.
func Parse(name, text string) ([]Entry, error) {
	var entries []Entry

	var dir []string
	haveDir := false

	// Index into entries of the assignment open for continuation, -1 if none.
	cont := -1
	contIndent := 0

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		indent := indentWidth(raw)

		if trimmed == "" {
			// A blank line ends a continuation run.
			cont = -1
			continue
		}

		if cont >= 0 && indent > contIndent {
			// Continuation lines are trimmed and joined with single spaces.
			entries[cont].Value += " " + trimmed
			continue
		}
		cont = -1

		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indent > 0 {
			return nil, &ParseError{File: name, Line: lineNo, Reason: "unexpected indentation"}
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, &ParseError{File: name, Line: lineNo, Reason: "malformed section header"}
			}
			section := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			path, err := sectionPath(section)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Reason: err.Error()}
			}
			dir = path
			haveDir = true
			entries = append(entries, Entry{Kind: EntryDirectoryHeader, Dir: dir, Line: lineNo})
			continue
		}

		lhs, rhs, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, &ParseError{File: name, Line: lineNo, Reason: fmt.Sprintf("not a key=value line: %q", trimmed)}
		}
		if !haveDir {
			return nil, &ParseError{File: name, Line: lineNo, Reason: "assignment before any [path] section"}
		}

		lhs = strings.TrimSpace(lhs)
		value := strings.TrimSpace(rhs)
		if lhs == "" {
			return nil, &ParseError{File: name, Line: lineNo, Reason: "empty name before '='"}
		}

		keyName, option, isOption := strings.Cut(lhs, "/")
		if !isOption {
			entries = append(entries, Entry{
				Kind:  EntryKeyAssignment,
				Dir:   dir,
				Key:   keyName,
				Value: value,
				Line:  lineNo,
			})
			cont = len(entries) - 1
			contIndent = indent
			continue
		}

		if option != optionReset {
			return nil, &ParseError{File: name, Line: lineNo, Reason: fmt.Sprintf("unsupported option %q", option)}
		}
		reset, err := parseBool(value)
		if err != nil {
			return nil, &ParseError{File: name, Line: lineNo, Reason: err.Error()}
		}

		if keyName == "" {
			entries = append(entries, Entry{
				Kind:   EntryDirectoryOption,
				Dir:    dir,
				Option: option,
				Reset:  reset,
				Line:   lineNo,
			})
		} else {
			entries = append(entries, Entry{
				Kind:   EntryKeyOption,
				Dir:    dir,
				Key:    keyName,
				Option: option,
				Reset:  reset,
				Line:   lineNo,
			})
		}
	}

	return entries, nil
}

// sectionPath parses a "[...]" header body into path segments. The literal
// "/" denotes the root; anything else is relative segments without leading or
// trailing slashes.
func sectionPath(section string) ([]string, error) {
	if section == "/" {
		return nil, nil
	}
	if section == "" {
		return nil, fmt.Errorf("empty section header")
	}

	segments := strings.Split(section, "/")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("empty path segment in %q", section)
		}
	}
	return segments, nil
}

// parseBool accepts the GVariant boolean literals, case-insensitively.
func parseBool(value string) (bool, error) {
	switch {
	case strings.EqualFold(value, "true"):
		return true, nil
	case strings.EqualFold(value, "false"):
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", value)
	}
}

// indentWidth counts leading whitespace characters of a physical line.
func indentWidth(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}
