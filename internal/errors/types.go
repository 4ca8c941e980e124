// Package errors defines the structured error taxonomy used by the generation
// pass: configuration errors raised before traversal starts, filesystem
// errors that abort a pass, and assembly errors raised while rendering.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeFilesystem ErrorType = "filesystem"
	ErrorTypeAssembly   ErrorType = "assembly"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidGlob      = "ERR_INVALID_GLOB"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeReadDir          = "ERR_READ_DIR"
	ErrCodeIdentCollision   = "ERR_IDENT_COLLISION"
	ErrCodeEmbedPath        = "ERR_EMBED_PATH"
	ErrCodeWriteOutput      = "ERR_WRITE_OUTPUT"
	ErrCodeRender           = "ERR_RENDER"
	ErrCodeValidationFailed = "ERR_VALIDATION_FAILED"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// AssetError is a structured error type with context.
type AssetError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
	// Module is the module identifier being generated, if known.
	Module string
	// Path is the offending filesystem path, if any.
	Path string
	// Pattern is the offending glob source text, if any.
	Pattern string
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Module != "" {
		parts = append(parts, "module:"+e.Module)
	}

	if e.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern:%q", e.Pattern))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *AssetError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *AssetError) Is(target error) bool {
	var t *AssetError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *AssetError) WithContext(key string, value interface{}) *AssetError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the filesystem path the error refers to.
func (e *AssetError) WithPath(path string) *AssetError {
	e.Path = path

	return e
}

// WithModule records the module being generated.
func (e *AssetError) WithModule(module string) *AssetError {
	e.Module = module

	return e
}

// Error creation functions

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *AssetError {
	return &AssetError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewFilesystemError creates a filesystem error for path.
func NewFilesystemError(code, message, path string, cause error) *AssetError {
	return &AssetError{
		Type:    ErrorTypeFilesystem,
		Code:    code,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

// NewAssemblyError creates an assembly error.
func NewAssemblyError(code, message string) *AssetError {
	return &AssetError{
		Type:    ErrorTypeAssembly,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *AssetError {
	return &AssetError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *AssetError {
	return &AssetError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors

// ErrInvalidGlob creates a configuration error for a glob that fails to compile.
func ErrInvalidGlob(pattern string, cause error) *AssetError {
	err := NewConfigError(ErrCodeInvalidGlob, "invalid glob pattern")
	err.Pattern = pattern
	err.Cause = cause

	return err
}

// ErrReadDir creates a filesystem error for a directory that cannot be listed.
func ErrReadDir(path string, cause error) *AssetError {
	return NewFilesystemError(ErrCodeReadDir, "cannot read directory", path, cause)
}

// ErrIdentCollision creates an assembly error for two entries that render to
// the same identifier inside one namespace.
func ErrIdentCollision(name, first, second string) *AssetError {
	return NewAssemblyError(
		ErrCodeIdentCollision,
		fmt.Sprintf("identifier %q is produced by both %q and %q", name, first, second),
	).WithContext("first", first).WithContext("second", second)
}

// ErrEmbedPath creates an assembly error for a source path that cannot be embedded.
func ErrEmbedPath(path, reason string) *AssetError {
	return NewAssemblyError(ErrCodeEmbedPath, "cannot embed file: "+reason).WithPath(path)
}

// Error classification helpers

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	return hasType(err, ErrorTypeConfig)
}

// IsFilesystemError checks if an error is a filesystem error.
func IsFilesystemError(err error) bool {
	return hasType(err, ErrorTypeFilesystem)
}

// IsAssemblyError checks if an error is an assembly error.
func IsAssemblyError(err error) bool {
	return hasType(err, ErrorTypeAssembly)
}

func hasType(err error, errType ErrorType) bool {
	var ae *AssetError
	if errors.As(err, &ae) {
		return ae.Type == errType
	}

	return false
}

// CodeOf returns the error code of the first AssetError in err's chain.
func CodeOf(err error) string {
	var ae *AssetError
	if errors.As(err, &ae) {
		return ae.Code
	}

	return ""
}

// ErrorHandler provides centralized error reporting for the CLI.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err with fields describing its category.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ae *AssetError
	if !errors.As(err, &ae) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	fields := []interface{}{"type", ae.Type, "code", ae.Code}
	if ae.Module != "" {
		fields = append(fields, "module", ae.Module)
	}
	if ae.Path != "" {
		fields = append(fields, "path", ae.Path)
	}
	if ae.Pattern != "" {
		fields = append(fields, "pattern", ae.Pattern)
	}

	switch ae.Type {
	case ErrorTypeConfig:
		h.logger.Error(ctx, err, "Configuration error", fields...)
	case ErrorTypeFilesystem:
		h.logger.Error(ctx, err, "Filesystem error during generation", fields...)
	case ErrorTypeAssembly:
		h.logger.Error(ctx, err, "Assembly error", fields...)
	default:
		h.logger.Error(ctx, err, "Error occurred", fields...)
	}
}

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// Add adds a validation error to the collection.
func (vec *ValidationErrorCollection) Add(err ValidationError) {
	vec.Errors = append(vec.Errors, err)
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) {
	vec.Add(NewFieldValidationError(field, value, message, suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToAssetError converts the validation collection to a configuration error.
func (vec *ValidationErrorCollection) ToAssetError() *AssetError {
	if !vec.HasErrors() {
		return nil
	}

	var messages []string
	context := make(map[string]interface{})

	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	return &AssetError{
		Type:    ErrorTypeConfig,
		Code:    ErrCodeValidationFailed,
		Message: strings.Join(messages, "; "),
		Context: context,
	}
}
