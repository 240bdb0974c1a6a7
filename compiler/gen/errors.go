package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a malformed or incomplete schema AST.
	ErrInvalidSchema = errors.New("chainsdk: invalid schema")
	// ErrUnresolvedModelReference indicates a reference to a type, field or
	// model that is absent from the plugin context.
	ErrUnresolvedModelReference = errors.New("chainsdk: unresolved model reference")
	// ErrChainNameConflict indicates that sibling call names could not be
	// disambiguated.
	ErrChainNameConflict = errors.New("chainsdk: chain name conflict")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("chainsdk: missing configuration")
	// ErrGenerationFailed indicates a printing or writing failure.
	ErrGenerationFailed = errors.New("chainsdk: code generation failed")
	// ErrValidationFailed indicates an invalid document set.
	ErrValidationFailed = errors.New("chainsdk: validation failed")
)

// SchemaError represents a malformed schema AST.
type SchemaError struct {
	Type    string // Type name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("chainsdk: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Message: message,
		Cause:   cause,
	}
}

// UnresolvedModelReferenceError is returned when an operation, model or
// chain node points to a type or field that the context does not know.
type UnresolvedModelReferenceError struct {
	Operation string // Operation or fragment that holds the reference
	Type      string // Parent type name (if applicable)
	Field     string // Field name (if applicable)
	Message   string
}

// Error implements the error interface.
func (e *UnresolvedModelReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("chainsdk: unresolved model reference")
	if e.Operation != "" {
		b.WriteString(" in ")
		b.WriteString(e.Operation)
	}
	switch {
	case e.Type != "" && e.Field != "":
		fmt.Fprintf(&b, " (%s.%s)", e.Type, e.Field)
	case e.Type != "":
		fmt.Fprintf(&b, " (%s)", e.Type)
	case e.Field != "":
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnresolvedModelReferenceError.
func (e *UnresolvedModelReferenceError) Is(target error) bool {
	return target == ErrUnresolvedModelReference
}

// NewUnresolvedModelReferenceError creates a new UnresolvedModelReferenceError.
func NewUnresolvedModelReferenceError(operation, typeName, fieldName, message string) *UnresolvedModelReferenceError {
	return &UnresolvedModelReferenceError{
		Operation: operation,
		Type:      typeName,
		Field:     fieldName,
		Message:   message,
	}
}

// ChainNameConflictError is returned when two sibling operations resolve to
// the same call name and no disambiguated name is available.
type ChainNameConflictError struct {
	Parent     string   // Parent call path, empty for roots
	Name       string   // The conflicting call name
	Operations []string // Conflicting operations, in document order
	Message    string
}

// Error implements the error interface.
func (e *ChainNameConflictError) Error() string {
	var b strings.Builder
	b.WriteString("chainsdk: chain name conflict")
	if e.Name != "" {
		fmt.Fprintf(&b, " on %q", e.Name)
	}
	if e.Parent != "" {
		b.WriteString(" under ")
		b.WriteString(e.Parent)
	}
	if len(e.Operations) > 0 {
		fmt.Fprintf(&b, " (operations: %s)", strings.Join(e.Operations, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ChainNameConflictError.
func (e *ChainNameConflictError) Is(target error) bool {
	return target == ErrChainNameConflict
}

// NewChainNameConflictError creates a new ChainNameConflictError.
func NewChainNameConflictError(parent, name, message string, operations ...string) *ChainNameConflictError {
	return &ChainNameConflictError{
		Parent:     parent,
		Name:       name,
		Operations: operations,
		Message:    message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("chainsdk: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("chainsdk: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a printing or writing error.
type GenerationError struct {
	Phase   string // "print", "write", "ir"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("chainsdk: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents an invalid operation or fragment document.
type ValidationError struct {
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("chainsdk: validation error")
	if e.Operation != "" {
		b.WriteString(" in ")
		b.WriteString(e.Operation)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(operation, message string) *ValidationError {
	return &ValidationError{
		Operation: operation,
		Message:   message,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsUnresolvedModelReference reports whether the error is an UnresolvedModelReferenceError.
func IsUnresolvedModelReference(err error) bool {
	var refErr *UnresolvedModelReferenceError
	return errors.As(err, &refErr)
}

// IsChainNameConflict reports whether the error is a ChainNameConflictError.
func IsChainNameConflict(err error) bool {
	var nameErr *ChainNameConflictError
	return errors.As(err, &nameErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
