package validx

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/remora-hq/staffdesk/pkg/errx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var ErrRegistry = errx.NewRegistry("VALIDX")

var CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")

// Struct valida un DTO contra sus tags `validate` y retorna un error con el
// detalle por campo bajo details.fields
func Struct(s any) *errx.Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errx.Wrap(err, "validation failed", errx.TypeValidation)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = ruleMessage(fe)
	}

	return ErrRegistry.New(CodeValidationFailed).WithDetail("fields", fields)
}

func fieldName(fe validator.FieldError) string {
	// "CreateCandidateRequest.FirstName" -> "FirstName"
	parts := strings.Split(fe.Namespace(), ".")
	return parts[len(parts)-1]
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed rule: " + fe.Tag()
	}
}
