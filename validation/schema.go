package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

var schemaValidator = newSchemaValidator() //nolint: gochecknoglobals // single validator instance shared across requests

func newSchemaValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(getTagName)
	return v
}

// ValidateSchema validates a request struct against its `validate` tags using
// the go-playground/validator package. Field names in the resulting error come
// from json/query/params tags so they match the wire representation.
func ValidateSchema(schema any) error {
	err := schemaValidator.Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M)
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldErrDescription(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		fmt.Sprintf("Unknown validation error: %s", err.Error()),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

// getTagName returns the wire name of a struct field based on its tags,
// checking json, query and params in that order.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func fieldErrDescription(fieldErr validator.FieldError) string {
	param := fieldErr.Param()

	switch tag := fieldErr.Tag(); tag {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		return fmt.Sprintf("Must be at most %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", param)
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed validation: %s", tag)
	}
}
