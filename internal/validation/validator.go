// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cfpredict/internal/logging"
)

// GetValidator returns the process-wide validator, building it on first use.
// Field names in errors come from json tags, then koanf tags.
var GetValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(tagName)

	//nolint:errcheck // registration only fails for empty tags
	v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return logging.ValidLevel(fl.Field().String())
	})
	return v
})

// ValidationError is one failed rule on one field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field is the json or koanf name of the offending field.
func (e *ValidationError) Field() string { return e.field }

// Tag is the rule that failed, such as "gte" or "loglevel".
func (e *ValidationError) Tag() string { return e.tag }

// Param is the rule argument, "3" for max=3.
func (e *ValidationError) Param() string { return e.param }

// Value is the rejected value.
func (e *ValidationError) Value() interface{} { return e.value }

// Error returns a readable message naming the field.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every ValidationError for one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual failures in field order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins all messages with "; ".
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	for i := range ve.errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ve.errors[i].message)
	}
	return b.String()
}

// Details is the "details" body of a VALIDATION_FAILED API error.
func (ve *RequestValidationError) Details() map[string]interface{} {
	fields := make([]map[string]interface{}, 0, len(ve.errors))
	for _, e := range ve.errors {
		fields = append(fields, map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		})
	}
	return map[string]interface{}{"fields": fields}
}

// ValidateStruct runs the struct's validate tags. It returns nil when s is
// valid.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    rw.ValidationError(verr.Error(), verr.Details())
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &RequestValidationError{errors: []ValidationError{
			{field: "unknown", tag: "unknown", message: err.Error()},
		}}
	}

	out := &RequestValidationError{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.errors = append(out.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: describe(fe),
		})
	}
	return out
}

//nolint:gocritic // hugeParam: signature fixed by validator.TagNameFunc
func tagName(fld reflect.StructField) string {
	for _, key := range [...]string{"json", "koanf"} {
		if name, _, _ := strings.Cut(fld.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

var comparisons = map[string]string{
	"gte": "greater than or equal to",
	"lte": "less than or equal to",
	"gt":  "greater than",
	"lt":  "less than",
}

// describe renders fe as "<field> <problem>".
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	if op, ok := comparisons[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be %s %s", field, op, param)
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "loglevel":
		return field + " must be a valid log level (trace, debug, info, warn, error)"
	case "hostname":
		return field + " must be a valid hostname"
	case "ip":
		return field + " must be a valid IP address"
	case "file":
		return field + " must be an existing file"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit(fe.Kind()))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit(fe.Kind()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func unit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}
