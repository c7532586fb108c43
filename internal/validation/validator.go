// Package validation wires the custom binding tags used by request structs
// into gin's go-playground validator and turns validation failures into
// readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Register installs the custom tags on gin's validator. Safe to call more than once.
//
//	personname  letters, spaces, hyphens and apostrophes, starting with a letter
//	gender      "male" or "female", any case
//	slug        lowercase words joined by single hyphens
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin validator engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		for tag, fn := range map[string]validator.Func{
			"personname": func(fl validator.FieldLevel) bool {
				return utils.ValidPersonName(fl.Field().String())
			},
			"gender": func(fl validator.FieldLevel) bool {
				_, ok := models.ParseGender(fl.Field().String())
				return ok
			},
			"slug": func(fl validator.FieldLevel) bool {
				return slugPattern.MatchString(fl.Field().String())
			},
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("validation: register %s: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

// Var validates one value against a tag list with gin's validator.
func Var(value interface{}, tags string) error {
	if err := Register(); err != nil {
		return err
	}
	return binding.Validator.Engine().(*validator.Validate).Var(value, tags)
}

var messageTemplates = map[string]string{
	"required":   "%s is required",
	"email":      "%s must be a valid email address",
	"personname": "%s may only contain letters, spaces, hyphens and apostrophes",
	"gender":     "%s must be male or female",
	"slug":       "%s must be lowercase words separated by hyphens",
	"uuid":       "%s must be a valid id",
	"url":        "%s must be a valid URL",
}

var paramTemplates = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// Message renders a binding error for the {"error": ...} body. Validation
// failures become one sentence per field; anything else (malformed JSON)
// passes through unchanged.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, translate(fe))
	}
	return strings.Join(msgs, "; ")
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tmpl, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramTemplates[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
