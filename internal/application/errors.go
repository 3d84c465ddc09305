package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrConnection       = errors.New("connection failed")
	ErrStatementFailed  = errors.New("statement failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCanceled         = errors.New("operation canceled")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// InputError represents an unreadable or malformed input file
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConnectionReason classifies why a database connection failed
type ConnectionReason string

const (
	ReasonAuth            ConnectionReason = "auth"
	ReasonMissingDatabase ConnectionReason = "missing_database"
	ReasonUnreachable     ConnectionReason = "unreachable"
)

// ConnectionError represents a failure to open the taxon database
type ConnectionError struct {
	Database string
	Reason   ConnectionReason
	Err      error
}

func (e *ConnectionError) Error() string {
	switch e.Reason {
	case ReasonAuth:
		return "Invalid username or password"
	case ReasonMissingDatabase:
		return fmt.Sprintf("Database %s does not exist", e.Database)
	default:
		return fmt.Sprintf("cannot connect to database %s: %v", e.Database, e.Err)
	}
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// StatementKind names the mutation a statement performs
type StatementKind string

const (
	StatementMarkAccepted StatementKind = "mark_accepted"
	StatementSynonymize   StatementKind = "synonymize"
)

// StatementError represents a failed mutating statement during apply
type StatementError struct {
	Kind    StatementKind
	TaxonID int64
	Err     error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s taxon %d: %v", e.Kind, e.TaxonID, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func (e *StatementError) Is(target error) bool {
	return target == ErrStatementFailed
}
