package openapi

import (
	"errors"
	"fmt"
)

// ErrSchemaConflict matches routes that declare the same method and path with
// different response shapes.
var ErrSchemaConflict = errors.New("conflicting response schemas")

// ErrDuplicateOperationID matches distinct routes sharing an operation id.
var ErrDuplicateOperationID = errors.New("duplicate operation id")

// SchemaConflictError reports two registrations of one route that disagree
// on their responses.
type SchemaConflictError struct {
	Method      string
	Path        string
	Existing    string
	Conflicting string
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("openapi: %s %s: %s: %s vs %s", e.Method, e.Path, ErrSchemaConflict, e.Existing, e.Conflicting)
}

func (e *SchemaConflictError) Is(target error) bool {
	return target == ErrSchemaConflict
}

// DuplicateOperationIDError reports an operation id claimed by two routes.
type DuplicateOperationIDError struct {
	OperationID string
	Existing    string
	Conflicting string
}

func (e *DuplicateOperationIDError) Error() string {
	return fmt.Sprintf("openapi: %s %q: used by %s and %s", ErrDuplicateOperationID, e.OperationID, e.Existing, e.Conflicting)
}

func (e *DuplicateOperationIDError) Is(target error) bool {
	return target == ErrDuplicateOperationID
}
