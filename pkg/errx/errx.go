package errx

import (
	"fmt"
	"net/http"
)

// ============================================================================
// Error Types
// ============================================================================

// Type clasifica los errores por su naturaleza
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeRateLimit      Type = "RATE_LIMIT"
	TypeBusiness       Type = "BUSINESS"
	TypeInternal       Type = "INTERNAL"
)

// ============================================================================
// Error Entity
// ============================================================================

// Error es el error estructurado que viaja desde el dominio hasta el
// error handler global del transporte
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"status"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

// Error implementa la interfaz error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap expone el error subyacente
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail agrega un detalle al error (fluent)
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithMessage reemplaza el mensaje manteniendo código y tipo
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// WithCause adjunta el error subyacente
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Is permite comparar errores por código con errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ============================================================================
// Registry
// ============================================================================

type errorTemplate struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry mantiene los errores registrados por un módulo, con un prefijo
// común en el código (ej: "CANDIDATE_NOT_FOUND")
type Registry struct {
	prefix    string
	templates map[string]errorTemplate
}

// NewRegistry crea un registro de errores para un módulo
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:    prefix,
		templates: make(map[string]errorTemplate),
	}
}

// Register registra un error y retorna su código completo
func (r *Registry) Register(code string, t Type, httpStatus int, message string) string {
	full := r.prefix + "_" + code
	r.templates[full] = errorTemplate{
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New instancia un error a partir de un código registrado
func (r *Registry) New(code string) *Error {
	tmpl, ok := r.templates[code]
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       code,
		Type:       tmpl.errType,
		Message:    tmpl.message,
		HTTPStatus: tmpl.httpStatus,
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Wrap envuelve un error arbitrario en un *Error
func Wrap(err error, message string, t Type) *Error {
	return &Error{
		Code:       string(t) + "_ERROR",
		Type:       t,
		Message:    message,
		HTTPStatus: statusForType(t),
		Err:        err,
	}
}

// AsError extrae un *Error si err lo es
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
