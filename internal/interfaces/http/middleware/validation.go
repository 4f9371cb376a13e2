package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom validation tags
const (
	TagCPFCNPJ = "cpfcnpj"
	TagUF      = "uf"
)

var setupOnce sync.Once

// SetupValidator makes field errors use json names and registers the
// cpfcnpj and uf tags on gin's validator. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation(TagCPFCNPJ, validateCPFCNPJ)
		_ = v.RegisterValidation(TagUF, validateUF)
	})
}

func validateCPFCNPJ(fl validator.FieldLevel) bool {
	return producer.ValidateDocument(fl.Field().String())
}

func validateUF(fl validator.FieldLevel) bool {
	return producer.IsFederativeUnit(fl.Field().String())
}

// FormatValidationErrors turns validator field errors into response details
func FormatValidationErrors(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// HandleValidationError answers a binding failure. A rejected CPF/CNPJ is
// reported as ERR_INVALID_DOCUMENT (422), anything else as ERR_VALIDATION (400).
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidJSON, "Malformed request body", requestID))
		return
	}

	resp := dto.NewValidationErrorResponse("Request validation failed", requestID, FormatValidationErrors(err))
	status := http.StatusBadRequest
	for _, fe := range validationErrors {
		if fe.Tag() == TagCPFCNPJ {
			resp.Error.Code = dto.ErrCodeInvalidDocument
			resp.Error.Message = "Document is not a valid CPF or CNPJ"
			status = http.StatusUnprocessableEntity
			break
		}
	}
	c.JSON(status, resp)
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "dive":
		return "Invalid list item"
	case TagCPFCNPJ:
		return "Must be a valid CPF or CNPJ"
	case TagUF:
		return "Must be a Brazilian state code (UF)"
	default:
		return "Invalid value"
	}
}
