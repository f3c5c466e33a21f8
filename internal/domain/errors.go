package domain

import "fmt"

// ValidationError reports a malformed insert or patch shape. It is raised
// before any storage mutation occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferentialIntegrityError reports a write that references a parent record
// which does not exist.
type ReferentialIntegrityError struct {
	Entity string // the referenced entity type, e.g. "experiment"
	ID     int64  // the missing parent ID
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}
