package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PriorityDefault is the lowest-urgency priority, used whenever a native
// value is missing or unparseable.
const PriorityDefault Priority = 4

// Priority is a task urgency on the 1..4 integer scale (1 = most urgent).
type Priority int

// Valid reports whether p is within the 1..4 scale.
func (p Priority) Valid() bool {
	return p >= 1 && p <= 4
}

// Normalize clamps out-of-range values to [PriorityDefault].
func (p Priority) Normalize() Priority {
	if !p.Valid() {
		return PriorityDefault
	}
	return p
}

// Label returns the "p1".."p4" select label for p. Out-of-range values
// render as the default label so the round trip through Notion never
// produces an invalid priority.
func (p Priority) Label() string {
	return fmt.Sprintf("p%d", int(p.Normalize()))
}

// PriorityFromLabel parses a "p1".."p4" select label, returning
// [PriorityDefault] for anything unparseable (including the empty string).
func PriorityFromLabel(label string) Priority {
	trimmed := strings.TrimPrefix(strings.TrimSpace(label), "p")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return PriorityDefault
	}
	return Priority(n).Normalize()
}

// Task is the canonical in-memory task record.
//
// Optional fields are explicit pointers: nil means the value is unset on the
// origin service, never "key missing". DueTime is only meaningful when
// DueDate is set and must never be written without it.
type Task struct {
	Title       string
	Description string
	Priority    Priority
	Project     *string // nil ⇒ unset; written as the default project on create
	DueDate     *string // ISO calendar date, e.g. "2024-03-01"
	DueTime     *string // 24h wall clock, e.g. "14:30"
	Completed   bool
	ForeignID   string // id of the mirror record on the other service; "" ⇒ not yet mirrored
}

// Validate checks the invariants the sync engine relies on.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if t.DueTime != nil && t.DueDate == nil {
		return fmt.Errorf("due time %q without a due date", *t.DueTime)
	}
	return nil
}

// Mirrored reports whether the task already references a record on the
// other service.
func (t Task) Mirrored() bool {
	return t.ForeignID != ""
}
