package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"bridge-generator/internal/common"
)

// Code identifies a class of schema or tree failure.
type Code string

const (
	CodeUnresolvedReference Code = "unresolved_reference"
	CodeEmptyStruct         Code = "empty_struct"
	CodeCycle               Code = "cycle"
	CodeMultipleRoots       Code = "multiple_roots"
	CodeOrphanField         Code = "orphan_field"
	CodeSharedNode          Code = "shared_node"

	// Schema loading codes.
	CodeInvalidType    Code = "invalid_type"
	CodeDuplicateField Code = "duplicate_field"
	CodeDuplicateType  Code = "duplicate_type"
	CodeMissingRoot    Code = "missing_root"
)

// Sentinel errors matched by errors.Is against any *SchemaError of the
// corresponding code.
var (
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrEmptyStruct         = errors.New("empty struct")
	ErrCycle               = errors.New("ownership cycle")
	ErrMultipleRoots       = errors.New("multiple roots")
	ErrOrphanField         = errors.New("orphan field")
	ErrSharedNode          = fmt.Errorf("shared node: %w", ErrOrphanField)
	ErrInvalidSchema       = errors.New("invalid schema")
)

// Sentinel returns the sentinel error matched by errors of this code.
func (c Code) Sentinel() error {
	switch c {
	case CodeUnresolvedReference:
		return ErrUnresolvedReference
	case CodeEmptyStruct:
		return ErrEmptyStruct
	case CodeCycle:
		return ErrCycle
	case CodeMultipleRoots:
		return ErrMultipleRoots
	case CodeOrphanField:
		return ErrOrphanField
	case CodeSharedNode:
		return ErrSharedNode
	case CodeInvalidType, CodeDuplicateField, CodeDuplicateType, CodeMissingRoot:
		return ErrInvalidSchema
	default:
		return nil
	}
}

// SchemaError is a single located failure.
type SchemaError struct {
	// Code is a unique identifier for this type of failure.
	Code Code
	// TypeName is the origin struct or enum the failure relates to (if any).
	TypeName string
	// FieldPath identifies the field the failure relates to (if any).
	FieldPath string
	// Message is the human-readable description.
	Message string
}

// Newf creates a SchemaError with a formatted message.
func Newf(code Code, typeName, fieldPath, format string, args ...any) *SchemaError {
	return &SchemaError{
		Code:      code,
		TypeName:  typeName,
		FieldPath: fieldPath,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Error returns a formatted diagnostic string.
func (e *SchemaError) Error() string {
	var prefix []string
	if e.TypeName != "" {
		prefix = append(prefix, "["+e.TypeName+"]")
	}

	if e.FieldPath != "" {
		prefix = append(prefix, e.FieldPath)
	}

	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Is reports whether target is the sentinel of this error's code, or a
// sentinel it wraps. Shared nodes also match ErrOrphanField.
func (e *SchemaError) Is(target error) bool {
	s := e.Code.Sentinel()
	return s != nil && errors.Is(s, target)
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic is a SchemaError with a severity.
type Diagnostic struct {
	Severity Severity
	*SchemaError
}

// Diagnostics holds every diagnostic collected by one pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, typeName, fieldPath, format string, args ...any) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    SeverityError,
		SchemaError: Newf(code, typeName, fieldPath, format, args...),
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, typeName, fieldPath, format string, args ...any) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		SchemaError: Newf(code, typeName, fieldPath, format, args...),
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil if
// there are none. The result matches every contained code with errors.Is.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.SchemaError)
	}

	return &joinedError{errs: errs}
}

type joinedError struct {
	errs []error
}

func (j *joinedError) Error() string {
	parts := make([]string, 0, len(j.errs))
	for _, e := range j.errs {
		parts = append(parts, e.Error())
	}

	return strings.Join(parts, "; ")
}

func (j *joinedError) Unwrap() []error {
	return j.errs
}
