package axon

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode identifies the kind of configuration defect a ConfigError reports
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	ReservedTypeCode
	DuplicateTypeCode
	UnknownTypeCode
	UnboundParameterCode
	InvalidBindingCode
	TypeMismatchCode
	UnknownHandlerCode
	InvalidHandlerSignatureCode
	InvalidRoutePathCode
	NotAControllerCode
	InvalidDeclarationCode
)

// String returns the string representation of the error code
func (c ErrorCode) String() string {
	switch c {
	case ReservedTypeCode:
		return "ReservedTypeError"
	case DuplicateTypeCode:
		return "DuplicateTypeError"
	case UnknownTypeCode:
		return "UnknownTypeError"
	case UnboundParameterCode:
		return "UnboundParameterError"
	case InvalidBindingCode:
		return "InvalidBindingError"
	case TypeMismatchCode:
		return "TypeMismatchError"
	case UnknownHandlerCode:
		return "UnknownHandlerError"
	case InvalidHandlerSignatureCode:
		return "InvalidHandlerSignatureError"
	case InvalidRoutePathCode:
		return "InvalidRoutePathError"
	case NotAControllerCode:
		return "NotAControllerError"
	case InvalidDeclarationCode:
		return "InvalidDeclarationError"
	default:
		return "UnknownError"
	}
}

// ConfigError is a configuration defect detected while registering parsers,
// controllers or bootstrapping an application. It is never produced while
// serving a request.
type ConfigError struct {
	Code        ErrorCode
	Message     string
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.ContextData) > 0 {
		keys := make([]string, 0, len(e.ContextData))
		for k := range e.ContextData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.ContextData[k]))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ConfigError with the same code. This lets the
// Err* sentinels below be used with errors.Is.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Context returns the error context data
func (e *ConfigError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *ConfigError) Suggestions() []string {
	return e.Hints
}

// WithContext adds context data to the error
func (e *ConfigError) WithContext(key string, value interface{}) *ConfigError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithHint adds a helpful suggestion for fixing the error
func (e *ConfigError) WithHint(hint string) *ConfigError {
	e.Hints = append(e.Hints, hint)
	return e
}

// WithCause adds an underlying error cause
func (e *ConfigError) WithCause(cause error) *ConfigError {
	e.Cause = cause
	return e
}

// newConfigError creates a ConfigError with a formatted message
func newConfigError(code ErrorCode, format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrReservedType            = &ConfigError{Code: ReservedTypeCode}
	ErrDuplicateType           = &ConfigError{Code: DuplicateTypeCode}
	ErrUnknownType             = &ConfigError{Code: UnknownTypeCode}
	ErrUnboundParameter        = &ConfigError{Code: UnboundParameterCode}
	ErrInvalidBinding          = &ConfigError{Code: InvalidBindingCode}
	ErrTypeMismatch            = &ConfigError{Code: TypeMismatchCode}
	ErrUnknownHandler          = &ConfigError{Code: UnknownHandlerCode}
	ErrInvalidHandlerSignature = &ConfigError{Code: InvalidHandlerSignatureCode}
	ErrInvalidRoutePath        = &ConfigError{Code: InvalidRoutePathCode}
	ErrNotAController          = &ConfigError{Code: NotAControllerCode}
	ErrInvalidDeclaration      = &ConfigError{Code: InvalidDeclarationCode}
)
